// Package facts models the target-platform attributes consulted during
// representation resolution.
//
// A Table is an immutable snapshot of the attributes of one build target.
// Conditions (pkg/condition) test attribute equality against a Table; the
// set of attribute keys is closed, so a condition referencing an unknown
// key is rejected at parse time rather than silently evaluating false.
package facts

import (
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// Attribute keys understood by conditions.
const (
	KeyOS           = "target_os"
	KeyFamily       = "target_family"
	KeyArch         = "target_arch"
	KeyPointerWidth = "target_pointer_width"
	KeyEndian       = "target_endian"
	KeyEnv          = "target_env"
)

// knownKeys is the closed set of attribute keys, in display order.
var knownKeys = []string{
	KeyOS,
	KeyFamily,
	KeyArch,
	KeyPointerWidth,
	KeyEndian,
	KeyEnv,
}

// KnownKey reports whether key is a recognized target attribute.
func KnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// KnownKeys returns the attribute keys understood by conditions.
func KnownKeys() []string {
	out := make([]string, len(knownKeys))
	copy(out, knownKeys)
	return out
}

// Table is a read-only mapping from attribute key to its value for one
// build target. Construct with New or Host; never mutated afterward.
type Table struct {
	values map[string]string
}

// New builds a Table from the given attribute values.
// Every key must be a known attribute key.
func New(values map[string]string) (*Table, error) {
	m := make(map[string]string, len(values))
	for k, v := range values {
		if !KnownKey(k) {
			return nil, &UnknownKeyError{Key: k}
		}
		m[k] = v
	}
	return &Table{values: m}, nil
}

// Host returns the Table describing the platform the tool itself is
// running on, derived from the Go runtime. Apple targets are reported
// as "macos" to match the vocabulary used in table files.
func Host() *Table {
	goos := runtime.GOOS
	osName := goos
	if goos == "darwin" {
		osName = "macos"
	}
	family := "unix"
	env := "gnu"
	if goos == "windows" {
		family = "windows"
		env = "msvc"
	}
	return &Table{values: map[string]string{
		KeyOS:           osName,
		KeyFamily:       family,
		KeyArch:         runtime.GOARCH,
		KeyPointerWidth: strconv.Itoa(strconv.IntSize),
		KeyEndian:       hostEndian(),
		KeyEnv:          env,
	}}
}

func hostEndian() string {
	switch runtime.GOARCH {
	case "ppc64", "s390x", "mips", "mips64":
		return "big"
	default:
		return "little"
	}
}

// Lookup returns the value for key and whether the table carries it.
func (t *Table) Lookup(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// PointerWidth returns the target pointer width in bits, or 0 if the
// table does not carry one.
func (t *Table) PointerWidth() int {
	v, ok := t.values[KeyPointerWidth]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// With returns a copy of the table with the given attribute set.
// The key must be a known attribute key.
func (t *Table) With(key, value string) (*Table, error) {
	if !KnownKey(key) {
		return nil, &UnknownKeyError{Key: key}
	}
	m := make(map[string]string, len(t.values)+1)
	for k, v := range t.values {
		m[k] = v
	}
	m[key] = value
	return &Table{values: m}, nil
}

// String renders the table as "key=value key=value" in key order,
// for use in diagnostics.
func (t *Table) String() string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+t.values[k])
	}
	return strings.Join(parts, " ")
}

// UnknownKeyError reports a reference to an attribute key outside the
// closed set.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown target attribute %q (known keys: %s)", e.Key, strings.Join(knownKeys, ", "))
}
