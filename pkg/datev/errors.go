package datev

import "fmt"

// StructuralError reports a missing required header or meta-header, or a
// wrong structural marker. It is distinct from a field-pattern failure.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error: %s", e.Msg)
}

// PatternError reports a value that does not match its field's required
// pattern. The offending raw value is part of the message.
type PatternError struct {
	Field   string
	Value   string
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("field %q: value %q does not match pattern %s", e.Field, e.Value, e.Pattern)
}

// UnknownVersionError reports a version token with no registered format
// definition. Callers must handle this explicitly; there is no silent
// default version.
type UnknownVersionError struct {
	Version string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("no format definition registered for version %q", e.Version)
}

// UnknownFieldError reports an assignment to a field label the version's
// definition does not contain.
type UnknownFieldError struct {
	Field   string
	Version int
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not defined in format version %d", e.Field, e.Version)
}
