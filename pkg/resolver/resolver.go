// Package resolver decides, once per build, which machine-integer
// representation each VISA type gets on the target platform.
//
// The engine merges up to three configuration surfaces under a fixed
// precedence policy selected by the mode:
//
//	Native       host ABI measurement, no conditions consulted
//	Cross        one active platform table, exactly-one-match rule
//	Custom       per-type env overrides first, table as fallback
//	CrossCustom  overrides plus the explicit-path table only
//
// Every required type is resolved independently and every failure is
// collected, so a single run reports the complete remediation list.
// Resolution is deterministic: identical inputs produce an identical
// map.
package resolver

import (
	"github.com/visakit/visarepr/pkg/facts"
	"github.com/visakit/visarepr/pkg/override"
	"github.com/visakit/visarepr/pkg/repr"
	"github.com/visakit/visarepr/pkg/table"
)

// Mode selects the precedence policy for one resolution pass.
type Mode int

const (
	// ModeNative derives representations by measuring the host ABI.
	// Correct only when host and target are identical.
	ModeNative Mode = iota

	// ModeCross resolves from the active platform table; overrides are
	// not consulted.
	ModeCross

	// ModeCustom consults per-type overrides first and falls back to
	// the active platform table.
	ModeCustom

	// ModeCrossCustom is custom precedence with the bundled and
	// project tables removed: only overrides and an explicitly
	// supplied table participate.
	ModeCrossCustom
)

func (m Mode) String() string {
	switch m {
	case ModeNative:
		return "native"
	case ModeCross:
		return "cross-compile"
	case ModeCustom:
		return "custom"
	case ModeCrossCustom:
		return "cross-compile+custom"
	default:
		return "unknown"
	}
}

// ResolvedMap is the sole output of a successful pass: one
// representation per required type. Built once, never mutated.
type ResolvedMap map[repr.TypeName]repr.Representation

// Ordered returns the map's types in canonical declaration order, for
// deterministic serialization.
func (m ResolvedMap) Ordered() []repr.TypeName {
	out := make([]repr.TypeName, 0, len(m))
	for _, t := range repr.Required() {
		if _, ok := m[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Inputs carries everything one resolution pass reads. All fields are
// treated as read-only snapshots for the duration of the pass.
type Inputs struct {
	// Types to resolve; defaults to the full required set.
	Types []repr.TypeName

	// Facts describes the build target. Unused in ModeNative.
	Facts *facts.Table

	Mode Mode

	// Overrides are the parsed per-type environment overrides.
	// Ignored in ModeNative and ModeCross.
	Overrides override.Set

	// Explicit is the table loaded from an explicitly configured path,
	// or nil. Project is the project-local table, or nil; when present
	// it fully replaces the bundled default.
	Explicit *table.Table
	Project  *table.Table

	// LegacyNativeFallback restores the historical custom-mode
	// behavior of silently measuring the host when a type has neither
	// an override nor table coverage. Off by default: the unresolved
	// type is a hard error.
	LegacyNativeFallback bool
}

// Resolve runs one resolution pass. On failure the returned error is an
// Errors value holding every per-type failure; no partial map is
// returned.
func Resolve(in Inputs) (ResolvedMap, error) {
	types := in.Types
	if len(types) == 0 {
		types = repr.Required()
	}

	m := make(ResolvedMap, len(types))
	var errs Errors
	for _, typ := range types {
		r, err := resolveOne(in, typ)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m[typ] = r
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return m, nil
}

func resolveOne(in Inputs, typ repr.TypeName) (repr.Representation, error) {
	switch in.Mode {
	case ModeNative:
		return repr.Native(typ)
	case ModeCross:
		return fromTable(crossTable(in), typ, in.Facts)
	case ModeCustom, ModeCrossCustom:
		return fromOverride(in, typ)
	default:
		return repr.Native(typ)
	}
}

// crossTable picks the active table for cross-compile precedence:
// explicit path, else project-local, else bundled default.
func crossTable(in Inputs) *table.Table {
	if in.Explicit != nil {
		return in.Explicit
	}
	if in.Project != nil {
		return in.Project
	}
	return table.Bundled()
}

// fromTable applies the exactly-one-match rule: scanning the table's
// entries against the facts must select a single entry, and that entry
// must carry the type. First-match-wins is deliberately not offered;
// overlapping conditions are an authoring error the user has to see.
func fromTable(tbl *table.Table, typ repr.TypeName, f *facts.Table) (repr.Representation, error) {
	var matched []string
	var sel *table.Entry
	for i := range tbl.Entries {
		if tbl.Entries[i].Matches(f) {
			matched = append(matched, tbl.Entries[i].When)
			sel = &tbl.Entries[i]
		}
	}
	switch len(matched) {
	case 0:
		return "", &MissingPlatformMatchError{Type: typ, Source: tbl.Source, Facts: f}
	case 1:
		r, ok := sel.Representation(typ)
		if !ok {
			return "", &MissingTypeError{Type: typ, Source: tbl.Source, When: sel.When}
		}
		return r, nil
	default:
		return "", &AmbiguousPlatformMatchError{Type: typ, Source: tbl.Source, Facts: f, Conditions: matched}
	}
}

// fromOverride applies custom precedence for one type: first matching
// override entry wins; without an override the type falls back to the
// mode's fallback table; without either, the unresolved type is a hard
// error naming the variable to set (unless the legacy fallback was
// explicitly requested).
func fromOverride(in Inputs, typ repr.TypeName) (repr.Representation, error) {
	if o, ok := in.Overrides[typ]; ok {
		r, matched := o.Match(in.Facts)
		if !matched {
			return "", &UnmatchedOverrideError{Type: typ, Var: o.Var, Facts: in.Facts}
		}
		return r, nil
	}

	tbl := in.Explicit
	if in.Mode == ModeCustom && tbl == nil {
		// Custom-only mode keeps the ordinary table chain as fallback;
		// cross-compile+custom drops it so resolution never silently
		// leans on shipped defaults.
		if in.Project != nil {
			tbl = in.Project
		} else {
			tbl = table.Bundled()
		}
	}
	if tbl != nil {
		r, err := fromTable(tbl, typ, in.Facts)
		if err == nil {
			return r, nil
		}
		if in.LegacyNativeFallback {
			return repr.Native(typ)
		}
		return "", &MissingOverrideError{Type: typ, Var: typ.OverrideVar(), Cause: err}
	}

	if in.LegacyNativeFallback {
		return repr.Native(typ)
	}
	return "", &MissingOverrideError{Type: typ, Var: typ.OverrideVar()}
}
