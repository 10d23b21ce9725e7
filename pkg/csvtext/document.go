package csvtext

import (
	"fmt"
	"os"
	"strings"
)

// DefaultDelimiter and DefaultEnclosure are the generic CSV defaults.
const (
	DefaultDelimiter = ','
	DefaultEnclosure = '"'
)

// Options configures parsing and construction of a document.
type Options struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune
	// Enclosure quotes fields. Defaults to '"'.
	Enclosure rune
	// HasHeader treats the first logical record as a header line.
	HasHeader bool
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = DefaultDelimiter
	}
	if o.Enclosure == 0 {
		o.Enclosure = DefaultEnclosure
	}
	return o
}

// Document is an optional header line plus an ordered list of data lines.
type Document struct {
	header          *HeaderLine
	rows            []*DataLine
	delimiter       rune
	enclosure       rune
	widths          *ColumnWidthConfig
	enclosureRepeat int
}

// NewDocument creates an empty document.
func NewDocument(opts Options) *Document {
	opts = opts.withDefaults()
	return &Document{delimiter: opts.Delimiter, enclosure: opts.Enclosure}
}

// ParseDocument splits raw text into logical records and assembles a
// document. When opts.HasHeader is set, the first record becomes the header
// and all rows are bound to it.
func ParseDocument(text string, opts Options) *Document {
	opts = opts.withDefaults()
	doc := &Document{delimiter: opts.Delimiter, enclosure: opts.Enclosure}

	scanner := NewLineScanner(text, opts.Enclosure)
	first := true
	for scanner.Scan() {
		logical := scanner.Text()
		if first && opts.HasHeader {
			doc.header = ParseHeaderLine(logical, opts.Delimiter, opts.Enclosure)
			first = false
			continue
		}
		first = false
		row := ParseDataLine(logical, opts.Delimiter, opts.Enclosure)
		if doc.header != nil {
			row.Bind(doc.header)
		}
		doc.rows = append(doc.rows, row)
	}
	return doc
}

// SetHeader attaches a header line and binds all existing rows to it.
func (d *Document) SetHeader(header *HeaderLine) {
	d.header = header
	for _, row := range d.rows {
		row.Bind(header)
	}
}

// Header returns the header line, or nil.
func (d *Document) Header() *HeaderLine {
	return d.header
}

// AddRow appends a data line, binding it to the header when present.
func (d *Document) AddRow(row *DataLine) {
	if d.header != nil {
		row.Bind(d.header)
	}
	d.rows = append(d.rows, row)
}

// Rows returns the data lines in order.
func (d *Document) Rows() []*DataLine {
	return d.rows
}

// SetColumnWidths attaches a width configuration applied at render time.
func (d *Document) SetColumnWidths(widths *ColumnWidthConfig) {
	d.widths = widths
}

// SetEnclosureRepeat forces every field to render with the given enclosure
// repeat, regardless of its recorded quoting state.
func (d *Document) SetEnclosureRepeat(repeat int) {
	d.enclosureRepeat = repeat
}

// IsConsistent reports whether every row's field count equals the reference
// count: the header's, or the first row's when there is no header. An empty
// document is consistent. Offending row indexes are returned rather than an
// error, so callers can decide to reject or proceed.
func (d *Document) IsConsistent() (bool, []int) {
	if len(d.rows) == 0 {
		return true, nil
	}

	reference := d.rows[0].CountFields()
	if d.header != nil {
		reference = d.header.CountFields()
	}

	var offending []int
	for i, row := range d.rows {
		if row.CountFields() != reference {
			offending = append(offending, i)
		}
	}
	return len(offending) == 0, offending
}

// String serializes the document as newline-joined logical lines. Column
// widths, when configured, are applied to the rendered values only; stored
// fields are untouched.
func (d *Document) String() string {
	var names []string
	if d.header != nil {
		names = d.header.Names()
	}

	var lines []string
	if d.header != nil {
		// Header values are never truncated; the column names must stay
		// addressable.
		lines = append(lines, d.header.render(d.enclosureRepeat, nil, nil))
	}
	for _, row := range d.rows {
		lines = append(lines, row.render(d.enclosureRepeat, d.widths, names))
	}
	return strings.Join(lines, "\n")
}

// WriteFile writes the serialized document to a file with a trailing
// newline.
func (d *Document) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(d.String()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
