package datev

import (
	"github.com/steuerbar/fintext/pkg/csvtext"
)

// MetaHeaderLine is an ordered mapping from a version's field definitions
// to values, seeded from the per-field defaults. Assignments are validated
// against the field's pattern before acceptance. The line holds a reference
// to its shared, immutable definition.
type MetaHeaderLine struct {
	def    *Definition
	values []string
}

// NewMetaHeaderLine creates a meta-header against exactly one version's
// definition, seeded with every field's default value.
func NewMetaHeaderLine(def *Definition) *MetaHeaderLine {
	values := make([]string, len(def.Fields))
	for i, f := range def.Fields {
		values[i] = f.DefaultValue()
	}
	return &MetaHeaderLine{def: def, values: values}
}

// ParseMetaHeaderLine builds a meta-header from a raw values array,
// validating every value against its field's pattern.
func ParseMetaHeaderLine(def *Definition, raw []string) (*MetaHeaderLine, error) {
	m := NewMetaHeaderLine(def)
	for i, f := range def.Fields {
		value := ""
		if i < len(raw) {
			value = raw[i]
		}
		if err := f.Validate(value); err != nil {
			return nil, err
		}
		m.values[i] = value
	}
	return m, nil
}

// Definition returns the version definition the line was built against.
func (m *MetaHeaderLine) Definition() *Definition {
	return m.def
}

// Set assigns a value to the field with the given label after validating it
// against the field's pattern.
func (m *MetaHeaderLine) Set(label, value string) error {
	for i, f := range m.def.Fields {
		if f.Label != label {
			continue
		}
		if err := f.Validate(value); err != nil {
			return err
		}
		m.values[i] = value
		return nil
	}
	return &UnknownFieldError{Field: label, Version: m.def.Version}
}

// Get returns the value of the field with the given label.
func (m *MetaHeaderLine) Get(label string) (string, bool) {
	for i, f := range m.def.Fields {
		if f.Label == label {
			return m.values[i], true
		}
	}
	return "", false
}

// Values returns the field values in position order.
func (m *MetaHeaderLine) Values() []string {
	out := make([]string, len(m.values))
	copy(out, m.values)
	return out
}

// Line renders the meta-header as a csvtext line with DATEV delimiter and
// enclosure; textual fields are quoted per their definition.
func (m *MetaHeaderLine) Line() *csvtext.Line {
	fields := make([]csvtext.Field, len(m.values))
	for i, value := range m.values {
		if m.def.Fields[i].Quoted {
			fields[i] = csvtext.QuotedField(value)
		} else {
			fields[i] = csvtext.NewField(value)
		}
	}
	return csvtext.NewLine(Delimiter, Enclosure, fields...)
}

// Render serializes the meta-header line.
func (m *MetaHeaderLine) Render() string {
	return m.Line().Render()
}
