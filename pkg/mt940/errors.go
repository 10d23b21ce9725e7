package mt940

import "fmt"

// FormatError reports text that does not match the format's required
// grammar. The offending raw string is part of the message.
type FormatError struct {
	Raw    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed MT940 %s: %q", e.Reason, e.Raw)
}

// ConstraintError reports a value exceeding a fixed-format bound, such as
// the 16-character transaction reference. Violations are rejected at
// construction time, never truncated.
type ConstraintError struct {
	Msg string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint violation: %s", e.Msg)
}

// StructuralError reports a statement block with missing or misordered
// tagged lines.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error: %s", e.Msg)
}
