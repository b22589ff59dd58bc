// Package override reads per-type representation overrides from the
// environment.
//
// Each required type owns one variable, VISA_REPR_<UPPERNAME>. Its value
// is either a bare representation token:
//
//	VISA_REPR_VISTATUS=i32
//
// or an ordered, comma-separated list of condition:representation
// segments, optionally ending in a bare catch-all:
//
//	VISA_REPR_VISTATUS='target_os = "windows":i32,target_os = "linux":i64'
//	VISA_REPR_VIATTR='all(target_os = "linux", target_pointer_width = "64"):u64,u32'
//
// Commas inside parentheses and commas or colons inside quoted strings
// do not split segments; each segment splits on its first colon outside
// a quoted string.
package override

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/visakit/visarepr/pkg/condition"
	"github.com/visakit/visarepr/pkg/facts"
	"github.com/visakit/visarepr/pkg/repr"
)

// Entry is one (condition, representation) pair of an override. A nil
// condition is the unconditional catch-all.
type Entry struct {
	Cond condition.Condition
	Repr repr.Representation
}

// Override is the parsed override for one type.
type Override struct {
	Type    repr.TypeName
	Var     string // environment variable the value came from
	Raw     string
	Entries []Entry
}

// Match scans the entries in listed order and returns the first whose
// condition holds for the facts. A catch-all entry always matches.
func (o *Override) Match(f *facts.Table) (repr.Representation, bool) {
	for _, e := range o.Entries {
		if e.Cond == nil || e.Cond.Eval(f) {
			return e.Repr, true
		}
	}
	return "", false
}

// Set holds the overrides present in the environment, keyed by type.
type Set map[repr.TypeName]*Override

// Parse parses one override value for the given type.
func Parse(typ repr.TypeName, raw string) (*Override, error) {
	o := &Override{Type: typ, Var: typ.OverrideVar(), Raw: raw}

	segments, err := splitSegments(raw)
	if err != nil {
		return nil, &SyntaxError{Var: o.Var, Type: typ, Segment: raw, Reason: err.Error()}
	}
	for _, seg := range segments {
		entry, err := parseSegment(seg)
		if err != nil {
			return nil, &SyntaxError{Var: o.Var, Type: typ, Segment: seg, Reason: err.Error()}
		}
		o.Entries = append(o.Entries, entry)
	}
	return o, nil
}

// FromEnv collects and parses the override variables for the given
// types. Malformed values do not stop the scan; all parse failures come
// back alongside the overrides that did parse, so one run reports every
// broken variable. VISA_REPR_CONFIG_PATH is reserved and ignored here.
func FromEnv(types []repr.TypeName) (Set, []error) {
	k := koanf.New(".")
	// Keep the type-name part of the variable as the koanf key.
	_ = k.Load(env.Provider(repr.OverrideVarPrefix, ".", func(s string) string {
		return strings.TrimPrefix(s, repr.OverrideVarPrefix)
	}), nil)

	set := make(Set)
	var errs []error
	for _, typ := range types {
		key := strings.ToUpper(string(typ))
		raw := k.String(key)
		if raw == "" {
			continue
		}
		o, err := Parse(typ, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set[typ] = o
	}
	return set, errs
}

// ConfigPathFromEnv returns the explicit table path from
// VISA_REPR_CONFIG_PATH, trimmed, or "" when unset.
func ConfigPathFromEnv() string {
	k := koanf.New(".")
	_ = k.Load(env.Provider(repr.ConfigPathVar, ".", func(s string) string { return s }), nil)
	return strings.TrimSpace(k.String(repr.ConfigPathVar))
}
