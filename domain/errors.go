package domain

import "fmt"

// ErrInvalidFieldPath is returned when a field path breaks a syntax rule
// before any resolution is attempted.
type ErrInvalidFieldPath struct {
	// Path is the rejected field path, verbatim.
	Path string
	// Reason names the syntax rule the path broke.
	Reason string
}

func (e *ErrInvalidFieldPath) Error() string {
	return fmt.Sprintf("invalid field path %q: %s", e.Path, e.Reason)
}

// ErrUnknownField is returned when a path segment matches no member of the
// type it is resolved against.
type ErrUnknownField struct {
	// Segment is the path segment that failed to resolve.
	Segment string
	// Type is the type the segment was resolved against.
	Type string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field %q on type %s", e.Segment, e.Type)
}

// ErrTypeMismatch is returned when a filter operand cannot be used with the
// type of the field it targets.
type ErrTypeMismatch struct {
	// Field is the field path the operand was supplied for.
	Field string
	// Type is the name of the field's type.
	Type string
	// Value is the operand that could not be converted.
	Value any
	// Cause is the conversion error, when one exists.
	Cause error
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("cannot use %v (%T) with field %q of type %s", e.Value, e.Value, e.Field, e.Type)
}

// Unwrap returns the conversion error behind the mismatch, if any.
func (e *ErrTypeMismatch) Unwrap() error { return e.Cause }

// ErrUnsupportedOperation is returned when an operation requires an ordering
// the target type does not have, or names a sort direction that is not
// recognized.
type ErrUnsupportedOperation struct {
	// Op names the rejected operation.
	Op string
	// Field is the field path the operation was requested on.
	Field string
	// Type is the name of the field's type, when one was resolved.
	Type string
}

func (e *ErrUnsupportedOperation) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s is not supported for field %q", e.Op, e.Field)
	}
	return fmt.Sprintf("%s is not supported for field %q of type %s", e.Op, e.Field, e.Type)
}
