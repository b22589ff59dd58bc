// Package condition implements the predicate language used by table files
// and overrides to express which platforms a representation applies to.
//
// # Grammar
//
//	condition → atom | "all(" list ")" | "any(" list ")" | "not(" condition ")"
//	atom      → key "=" quoted-string
//	list      → [condition ("," condition)*]
//
// Whitespace around "=" and "," is insignificant. Keys are drawn from the
// closed attribute set in pkg/facts; an unknown key is a parse error, never
// a predicate that evaluates false.
//
//	c, err := condition.Parse(`all(target_os = "linux", target_pointer_width = "64")`)
//	if err != nil {
//	    // handle error
//	}
//	matched := c.Eval(factTable)
//
// Evaluation is total and side-effect free: every parsed condition evaluates
// to a boolean for every fact table.
package condition

import (
	"strings"

	"github.com/visakit/visarepr/pkg/facts"
)

// Condition is a boolean predicate over a fact table.
type Condition interface {
	// Eval reports whether the condition holds for the given facts.
	Eval(f *facts.Table) bool

	// String renders the condition in the grammar's canonical form, so
	// that Parse(c.String()) reproduces an equivalent condition.
	String() string
}

// Atom tests one target attribute for equality.
type Atom struct {
	Key   string
	Value string
}

// Eval reports whether the fact table's value for the atom's key equals
// the atom's value. An attribute the table does not carry compares
// unequal to everything.
func (a *Atom) Eval(f *facts.Table) bool {
	v, ok := f.Lookup(a.Key)
	return ok && v == a.Value
}

func (a *Atom) String() string {
	return a.Key + ` = "` + a.Value + `"`
}

// All holds when every child holds. With no children it holds vacuously.
type All struct {
	Children []Condition
}

func (c *All) Eval(f *facts.Table) bool {
	for _, ch := range c.Children {
		if !ch.Eval(f) {
			return false
		}
	}
	return true
}

func (c *All) String() string { return renderList("all", c.Children) }

// Any holds when at least one child holds.
//
// The zero-argument form is documented to match every platform, so it is
// treated as a literal true rather than as an empty disjunction (which
// would be false). Table authors rely on `any()` as the catch-all entry.
type Any struct {
	Children []Condition
}

func (c *Any) Eval(f *facts.Table) bool {
	if len(c.Children) == 0 {
		// Literal "matches everything", not the identity of disjunction.
		return true
	}
	for _, ch := range c.Children {
		if ch.Eval(f) {
			return true
		}
	}
	return false
}

func (c *Any) String() string { return renderList("any", c.Children) }

// Not inverts its child.
type Not struct {
	Child Condition
}

func (c *Not) Eval(f *facts.Table) bool { return !c.Child.Eval(f) }

func (c *Not) String() string { return "not(" + c.Child.String() + ")" }

func renderList(name string, children []Condition) string {
	parts := make([]string, len(children))
	for i, ch := range children {
		parts[i] = ch.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
