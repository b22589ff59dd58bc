package override

import (
	"fmt"

	"github.com/visakit/visarepr/pkg/repr"
)

// SyntaxError reports a malformed override value, naming the variable
// and the offending segment so the user knows exactly what to fix.
type SyntaxError struct {
	Var     string
	Type    repr.TypeName
	Segment string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed override %s for %s: segment %q: %s", e.Var, e.Type, e.Segment, e.Reason)
}
