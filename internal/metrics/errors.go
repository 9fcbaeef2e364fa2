package metrics

import (
	"errors"
	"fmt"
)

// ErrMalformed marks input that does not have the RawReport shape.
var ErrMalformed = errors.New("malformed analysis")

// FieldError reports an enumerated value outside its defined set.
// Index is the position of the record inside its collection, or -1 for
// top-level fields.
type FieldError struct {
	Field string
	Index int
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q at index %d: %v", e.Field, e.Value, e.Index, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
