// Package table loads and validates platform tables: ordered lists of
// (condition, type → representation) entries sourced from the bundled
// default asset, a project-local file, or an explicitly supplied path.
package table

import (
	"fmt"

	"github.com/visakit/visarepr/pkg/condition"
	"github.com/visakit/visarepr/pkg/facts"
	"github.com/visakit/visarepr/pkg/repr"
)

// Entry pairs a platform condition with a complete mapping from type
// name to representation. An entry that is selected for a build must
// cover every required type; partial coverage is a resolution error,
// never an implicit fallback.
type Entry struct {
	When  string
	Types map[repr.TypeName]repr.Representation

	cond condition.Condition
}

// Condition returns the entry's parsed condition.
func (e *Entry) Condition() condition.Condition { return e.cond }

// Matches reports whether the entry's condition holds for the facts.
func (e *Entry) Matches(f *facts.Table) bool { return e.cond.Eval(f) }

// Representation looks up the entry's representation for a type.
func (e *Entry) Representation(t repr.TypeName) (repr.Representation, bool) {
	r, ok := e.Types[t]
	return r, ok
}

// Table is an ordered platform table from exactly one source.
type Table struct {
	// Source identifies where the table came from for diagnostics:
	// a file path, or "bundled" for the embedded default.
	Source  string
	Entries []Entry
}

// Validate checks every entry for completeness against the required
// type set. Loading already guarantees parseable conditions and valid
// tokens; Validate is the exhaustive pass used by `visarepr check`.
func (t *Table) Validate(required []repr.TypeName) error {
	for i, e := range t.Entries {
		for _, typ := range required {
			if _, ok := e.Types[typ]; !ok {
				return fmt.Errorf("%s: entry %d (%s) is missing required type %s", t.Source, i+1, e.When, typ)
			}
		}
	}
	return nil
}
