package csvtext

import "strings"

// Line is an ordered sequence of fields together with the delimiter and
// enclosure used to produce it. Field order is significant and stable.
type Line struct {
	fields    []Field
	delimiter rune
	enclosure rune
}

// NewLine creates a line from the given fields.
func NewLine(delimiter, enclosure rune, fields ...Field) *Line {
	return &Line{fields: fields, delimiter: delimiter, enclosure: enclosure}
}

// ParseLine tokenizes one logical record into a line.
func ParseLine(logical string, delimiter, enclosure rune) *Line {
	return NewLine(delimiter, enclosure, SplitFields(logical, delimiter, enclosure)...)
}

// CountFields returns the number of fields on the line.
func (l *Line) CountFields() int {
	return len(l.fields)
}

// Fields returns the fields in order.
func (l *Line) Fields() []Field {
	return l.fields
}

// Field returns the field at the given index.
func (l *Line) Field(i int) (Field, bool) {
	if i < 0 || i >= len(l.fields) {
		return Field{}, false
	}
	return l.fields[i], true
}

// Delimiter returns the delimiter the line was built with.
func (l *Line) Delimiter() rune {
	return l.delimiter
}

// Enclosure returns the enclosure the line was built with.
func (l *Line) Enclosure() rune {
	return l.enclosure
}

// Render serializes the line with its own delimiter and enclosure.
func (l *Line) Render() string {
	return l.render(0, nil, nil)
}

// render serializes the line. forceRepeat overrides each field's enclosure
// repeat, widths truncates rendered values, and names supplies column names
// for width lookup by position.
func (l *Line) render(forceRepeat int, widths *ColumnWidthConfig, names []string) string {
	var sb strings.Builder
	for i, f := range l.fields {
		if i > 0 {
			sb.WriteRune(l.delimiter)
		}
		if widths != nil {
			name := ""
			if i < len(names) {
				name = names[i]
			}
			f = f.WithValue(widths.Apply(f.Value(), name, i))
		}
		sb.WriteString(f.Render(l.delimiter, l.enclosure, forceRepeat))
	}
	return sb.String()
}

// HeaderLine is a line whose fields are column names, with name-to-index
// lookup.
type HeaderLine struct {
	Line
	index map[string]int
}

// NewHeaderLine creates a header line from the given fields.
func NewHeaderLine(delimiter, enclosure rune, fields ...Field) *HeaderLine {
	h := &HeaderLine{
		Line:  Line{fields: fields, delimiter: delimiter, enclosure: enclosure},
		index: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, taken := h.index[f.Value()]; !taken {
			h.index[f.Value()] = i
		}
	}
	return h
}

// ParseHeaderLine tokenizes one logical record into a header line.
func ParseHeaderLine(logical string, delimiter, enclosure rune) *HeaderLine {
	return NewHeaderLine(delimiter, enclosure, SplitFields(logical, delimiter, enclosure)...)
}

// Index returns the column index for a name.
func (h *HeaderLine) Index(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

// Names returns the column names in order.
func (h *HeaderLine) Names() []string {
	names := make([]string, len(h.fields))
	for i, f := range h.fields {
		names[i] = f.Value()
	}
	return names
}

// DataLine is a line of data fields. Once bound to a header it supports
// name-based field access.
type DataLine struct {
	Line
	header *HeaderLine
}

// NewDataLine creates a data line from the given fields.
func NewDataLine(delimiter, enclosure rune, fields ...Field) *DataLine {
	return &DataLine{Line: Line{fields: fields, delimiter: delimiter, enclosure: enclosure}}
}

// ParseDataLine tokenizes one logical record into a data line.
func ParseDataLine(logical string, delimiter, enclosure rune) *DataLine {
	return NewDataLine(delimiter, enclosure, SplitFields(logical, delimiter, enclosure)...)
}

// Bind pairs the data line with a header for name-based access.
func (d *DataLine) Bind(header *HeaderLine) {
	d.header = header
}

// FieldByName returns the field in the column with the given name. It
// returns false when the line is unbound, the name is unknown, or the line
// is shorter than the header.
func (d *DataLine) FieldByName(name string) (Field, bool) {
	if d.header == nil {
		return Field{}, false
	}
	i, ok := d.header.Index(name)
	if !ok {
		return Field{}, false
	}
	return d.Field(i)
}
