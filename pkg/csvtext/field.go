// Package csvtext provides a delimited-text document model that preserves
// quoting state exactly, so a parsed document can be re-serialized byte for
// byte. It is the foundation for both generic CSV handling and the DATEV
// format support.
package csvtext

import (
	"strconv"
	"strings"
	"time"
)

// FieldType classifies the logical content of a field value.
type FieldType int

const (
	FieldTypeString FieldType = iota
	FieldTypeInt
	FieldTypeFloat
	FieldTypeBool
	FieldTypeDateTime
)

// String returns a readable name for the field type.
func (t FieldType) String() string {
	switch t {
	case FieldTypeInt:
		return "int"
	case FieldTypeFloat:
		return "float"
	case FieldTypeBool:
		return "bool"
	case FieldTypeDateTime:
		return "datetime"
	default:
		return "string"
	}
}

// dateLayouts are tried in order when classifying a value as a datetime.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

// Field is an immutable CSV field. It holds the logically unescaped value,
// whether the source enclosed it, and how many consecutive enclosure
// characters bounded the raw token (1 = conventional quoting, >1 = doubled
// enclosure characters around the value).
type Field struct {
	value           string
	quoted          bool
	enclosureRepeat int
}

// NewField creates an unquoted field with the given value.
func NewField(value string) Field {
	return Field{value: value}
}

// QuotedField creates a field that was (or must be) enclosed in the source.
func QuotedField(value string) Field {
	return Field{value: value, quoted: true, enclosureRepeat: 1}
}

// Value returns the logically unescaped field content.
func (f Field) Value() string {
	return f.value
}

// IsQuoted reports whether the source enclosed the value.
func (f Field) IsQuoted() bool {
	return f.quoted
}

// EnclosureRepeat returns the number of consecutive enclosure characters
// detected at the field boundary. It is 0 for unquoted fields.
func (f Field) EnclosureRepeat() int {
	return f.enclosureRepeat
}

// WithValue returns a copy of the field with a new value.
func (f Field) WithValue(value string) Field {
	f.value = value
	return f
}

// WithQuoted returns a copy of the field with the quoted flag set.
// Enabling quoting on an unquoted field sets the enclosure repeat to 1;
// disabling it resets the repeat to 0.
func (f Field) WithQuoted(quoted bool) Field {
	f.quoted = quoted
	if quoted && f.enclosureRepeat == 0 {
		f.enclosureRepeat = 1
	}
	if !quoted {
		f.enclosureRepeat = 0
	}
	return f
}

// WithEnclosureRepeat returns a copy of the field with the given enclosure
// repeat count. A count greater than zero implies the field is quoted.
func (f Field) WithEnclosureRepeat(repeat int) Field {
	f.enclosureRepeat = repeat
	f.quoted = repeat > 0
	return f
}

// Type classifies the field value as int, float, bool, datetime or string.
// Classification is a pure function of the value; fields are immutable, so
// nothing is cached.
func (f Field) Type() FieldType {
	if f.value == "" {
		return FieldTypeString
	}
	if _, err := strconv.ParseInt(f.value, 10, 64); err == nil {
		return FieldTypeInt
	}
	if _, ok := parseFloatValue(f.value); ok {
		return FieldTypeFloat
	}
	switch strings.ToLower(f.value) {
	case "true", "false":
		return FieldTypeBool
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, f.value); err == nil {
			return FieldTypeDateTime
		}
	}
	return FieldTypeString
}

// Int64 returns the value as an integer, if it is one.
func (f Field) Int64() (int64, bool) {
	n, err := strconv.ParseInt(f.value, 10, 64)
	return n, err == nil
}

// Float64 returns the value as a float. Both dot and comma decimal
// separators are accepted, matching common German bank exports.
func (f Field) Float64() (float64, bool) {
	return parseFloatValue(f.value)
}

// Bool returns the value as a boolean, if it is one.
func (f Field) Bool() (bool, bool) {
	switch strings.ToLower(f.value) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Time returns the value as a timestamp, if it matches a known layout.
func (f Field) Time() (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, f.value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Render serializes the field. Enclosure characters are re-applied only when
// the field was originally quoted, the value contains the delimiter, the
// enclosure or a newline, or forceRepeat is greater than zero. Enclosure
// characters inside the value are doubled.
func (f Field) Render(delimiter, enclosure rune, forceRepeat int) string {
	needsEnclosure := f.quoted || forceRepeat > 0 ||
		strings.ContainsAny(f.value, string(delimiter)+string(enclosure)+"\n\r")
	if !needsEnclosure {
		return f.value
	}

	repeat := f.enclosureRepeat
	if forceRepeat > 0 {
		repeat = forceRepeat
	}
	if repeat < 1 {
		repeat = 1
	}

	encl := string(enclosure)
	bound := strings.Repeat(encl, repeat)
	escaped := strings.ReplaceAll(f.value, encl, encl+encl)
	return bound + escaped + bound
}

// parseFloatValue parses a decimal number with either a dot or a single
// comma as decimal separator. Plain integers are not considered floats.
func parseFloatValue(value string) (float64, bool) {
	normalized := value
	if strings.Count(value, ",") == 1 && !strings.Contains(value, ".") {
		normalized = strings.Replace(value, ",", ".", 1)
	}
	if !strings.Contains(normalized, ".") {
		return 0, false
	}
	v, err := strconv.ParseFloat(normalized, 64)
	return v, err == nil
}
