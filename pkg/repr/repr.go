// Package repr defines the VISA foreign types that need a resolved
// integer representation and the closed set of representation tokens
// they can resolve to.
package repr

import (
	"fmt"
	"strings"
)

// Representation is a concrete machine-integer descriptor: signedness
// crossed with bit width. Representations compare by equality only.
type Representation string

const (
	I8   Representation = "i8"
	I16  Representation = "i16"
	I32  Representation = "i32"
	I64  Representation = "i64"
	I128 Representation = "i128"
	U8   Representation = "u8"
	U16  Representation = "u16"
	U32  Representation = "u32"
	U64  Representation = "u64"
	U128 Representation = "u128"
)

// all is the closed token set, in width order.
var all = []Representation{I8, I16, I32, I64, I128, U8, U16, U32, U64, U128}

// ParseRepresentation validates a representation token.
func ParseRepresentation(s string) (Representation, error) {
	for _, r := range all {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid representation %q (expected one of %s)", s, tokenList())
}

func tokenList() string {
	parts := make([]string, len(all))
	for i, r := range all {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// Signed reports whether the representation is a signed integer.
func (r Representation) Signed() bool { return strings.HasPrefix(string(r), "i") }

// Bits returns the representation's width in bits.
func (r Representation) Bits() int {
	switch r {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64:
		return 64
	case I128, U128:
		return 128
	default:
		return 0
	}
}

// ForSize returns the representation with the given size in bytes and
// signedness.
func ForSize(bytes int, signed bool) (Representation, error) {
	var signedFor = map[int]Representation{1: I8, 2: I16, 4: I32, 8: I64, 16: I128}
	var unsignedFor = map[int]Representation{1: U8, 2: U16, 4: U32, 8: U64, 16: U128}
	m := unsignedFor
	if signed {
		m = signedFor
	}
	r, ok := m[bytes]
	if !ok {
		return "", fmt.Errorf("no integer representation for size %d bytes", bytes)
	}
	return r, nil
}

// TypeName is the symbolic identifier of a VISA foreign type whose
// representation must be resolved per build. The set is fixed at tool
// version time.
type TypeName string

const (
	ViUInt16      TypeName = "ViUInt16"
	ViInt16       TypeName = "ViInt16"
	ViUInt32      TypeName = "ViUInt32"
	ViInt32       TypeName = "ViInt32"
	ViStatus      TypeName = "ViStatus"
	ViEvent       TypeName = "ViEvent"
	ViEventType   TypeName = "ViEventType"
	ViEventFilter TypeName = "ViEventFilter"
	ViAttr        TypeName = "ViAttr"
)

// required lists every type needing resolution, in declaration order.
// This order is the canonical iteration order for reports and artifacts.
var required = []TypeName{
	ViUInt16,
	ViInt16,
	ViUInt32,
	ViInt32,
	ViStatus,
	ViEvent,
	ViEventType,
	ViEventFilter,
	ViAttr,
}

// Required returns the full set of types needing a resolved
// representation, in canonical order.
func Required() []TypeName {
	out := make([]TypeName, len(required))
	copy(out, required)
	return out
}

// ParseTypeName validates a type name against the required set.
func ParseTypeName(s string) (TypeName, error) {
	for _, t := range required {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown VISA type %q", s)
}

// OverrideVarPrefix prefixes every per-type override variable.
const OverrideVarPrefix = "VISA_REPR_"

// ConfigPathVar names the variable holding an explicit table file path.
// It shares the override prefix but is reserved and never treated as a
// per-type override.
const ConfigPathVar = "VISA_REPR_CONFIG_PATH"

// OverrideVar returns the environment variable carrying this type's
// override, e.g. VISA_REPR_VISTATUS for ViStatus.
func (t TypeName) OverrideVar() string {
	return OverrideVarPrefix + strings.ToUpper(string(t))
}

// Signed reports whether the native VISA type is a signed integer.
func (t TypeName) Signed() bool {
	switch t {
	case ViInt16, ViInt32, ViStatus:
		return true
	default:
		return false
	}
}
