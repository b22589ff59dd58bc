package resolver

import (
	"fmt"
	"strings"

	"github.com/visakit/visarepr/pkg/facts"
	"github.com/visakit/visarepr/pkg/repr"
)

// Errors aggregates the per-type failures of one resolution pass.
type Errors []error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e Errors) Unwrap() []error { return e }

// MissingPlatformMatchError reports that no table entry's condition
// holds for the target facts.
type MissingPlatformMatchError struct {
	Type   repr.TypeName
	Source string
	Facts  *facts.Table
}

func (e *MissingPlatformMatchError) Error() string {
	return fmt.Sprintf("%s: no entry in %s matches target (%s); add an entry whose condition covers this platform",
		e.Type, e.Source, e.Facts)
}

// AmbiguousPlatformMatchError reports that more than one table entry's
// condition holds for the target facts.
type AmbiguousPlatformMatchError struct {
	Type       repr.TypeName
	Source     string
	Facts      *facts.Table
	Conditions []string
}

func (e *AmbiguousPlatformMatchError) Error() string {
	return fmt.Sprintf("%s: %d entries in %s match target (%s): %s; entry conditions must be mutually exclusive",
		e.Type, len(e.Conditions), e.Source, e.Facts, strings.Join(e.Conditions, " | "))
}

// MissingTypeError reports that the selected table entry does not carry
// a representation for the type.
type MissingTypeError struct {
	Type   repr.TypeName
	Source string
	When   string
}

func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("%s: matched entry (%s) in %s does not map this type; every entry must map all required types",
		e.Type, e.When, e.Source)
}

// MissingOverrideError reports a type that custom-mode resolution could
// not cover: no override variable was set and no supplied table entry
// resolved it.
type MissingOverrideError struct {
	Type  repr.TypeName
	Var   string
	Cause error
}

func (e *MissingOverrideError) Error() string {
	msg := fmt.Sprintf("%s: no representation configured; set %s or supply a table via %s",
		e.Type, e.Var, repr.ConfigPathVar)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (table fallback failed: %v)", e.Cause)
	}
	return msg
}

func (e *MissingOverrideError) Unwrap() error { return e.Cause }

// UnmatchedOverrideError reports an override that is present but has no
// entry matching the target facts and no catch-all.
type UnmatchedOverrideError struct {
	Type  repr.TypeName
	Var   string
	Facts *facts.Table
}

func (e *UnmatchedOverrideError) Error() string {
	return fmt.Sprintf("%s: no segment of %s matches target (%s); add a matching condition or a bare catch-all representation",
		e.Type, e.Var, e.Facts)
}
