package condition

import "fmt"

// ParseError reports a malformed condition expression with the byte
// offset of the offending token.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed condition at offset %d: %s", e.Pos, e.Message)
}

// UnknownKeyError reports an atom whose key is outside the closed
// target-attribute set.
type UnknownKeyError struct {
	Key string
	Pos int
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown condition key %q at offset %d", e.Key, e.Pos)
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
