package table

import "fmt"

// PathNotAbsoluteError reports an explicit table path that is not
// absolute.
type PathNotAbsoluteError struct {
	Path string
}

func (e *PathNotAbsoluteError) Error() string {
	return fmt.Sprintf("platform table path must be absolute: %q", e.Path)
}

// NotFoundError reports a table file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("platform table file not found: %s", e.Path)
}

// ParseFileError reports a table file that exists but cannot be parsed
// into a valid table.
type ParseFileError struct {
	Path string
	Err  error
}

func (e *ParseFileError) Error() string {
	return fmt.Sprintf("invalid platform table %s: %v", e.Path, e.Err)
}

func (e *ParseFileError) Unwrap() error { return e.Err }
