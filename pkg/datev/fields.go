// Package datev implements the DATEV EXTF accounting exchange format: a
// versioned fixed-position meta-header, a field-name header and typed data
// rows, serialized as semicolon-delimited CSV.
package datev

import (
	"fmt"
	"regexp"
)

// ExtfMarker is the mandatory value of the first meta-header field of an
// export file.
const ExtfMarker = "EXTF"

// Delimiter and Enclosure are fixed by the DATEV format.
const (
	Delimiter = ';'
	Enclosure = '"'
)

// FieldDef describes one meta-header field of a format version.
type FieldDef struct {
	// Label is the documented field name, e.g. "Versionsnummer".
	Label string
	// Position is the 1-based position within the meta-header.
	Position int
	// Pattern validates assigned values. Nil means unvalidated.
	Pattern *regexp.Regexp
	// Quoted marks textual fields that are enclosed on output.
	Quoted bool
	// Default produces the seed value for a fresh meta-header. Nil means
	// empty.
	Default func() string
}

// DefaultValue returns the field's seed value.
func (f FieldDef) DefaultValue() string {
	if f.Default == nil {
		return ""
	}
	return f.Default()
}

// Validate checks a value against the field's pattern.
func (f FieldDef) Validate(value string) error {
	if f.Pattern == nil {
		return nil
	}
	if !f.Pattern.MatchString(value) {
		return &PatternError{Field: f.Label, Value: value, Pattern: f.Pattern.String()}
	}
	return nil
}

// Festschreibung is the fixed-write lock flag of a booking batch. DATEV
// encodes it as 0 (open) or 1 (locked).
type Festschreibung int

const (
	FestschreibungOpen   Festschreibung = 0
	FestschreibungLocked Festschreibung = 1
)

// FestschreibungFromInt converts a raw integer into a lock flag.
func FestschreibungFromInt(v int) (Festschreibung, error) {
	switch v {
	case 0:
		return FestschreibungOpen, nil
	case 1:
		return FestschreibungLocked, nil
	}
	return 0, fmt.Errorf("invalid festschreibung flag: %d", v)
}

// IsLocked reports whether the batch is fixed-written.
func (f Festschreibung) IsLocked() bool {
	return f == FestschreibungLocked
}

// String returns the wire form of the flag.
func (f Festschreibung) String() string {
	if f == FestschreibungLocked {
		return "1"
	}
	return "0"
}
