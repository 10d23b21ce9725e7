package datev

import (
	"fmt"
	"os"
	"strconv"

	"github.com/steuerbar/fintext/pkg/csvtext"
)

// Document is a complete DATEV export: meta-header, field-name header and
// data rows. The underlying rows are a csvtext document with the DATEV
// delimiter and enclosure.
type Document struct {
	meta *MetaHeaderLine
	body *csvtext.Document
}

// NewDocument creates a document with a default-seeded meta-header for the
// given format definition.
func NewDocument(def *Definition) *Document {
	return &Document{
		meta: NewMetaHeaderLine(def),
		body: csvtext.NewDocument(csvtext.Options{Delimiter: Delimiter, Enclosure: Enclosure}),
	}
}

// Parse reads a raw DATEV export. The first logical line is the
// meta-header (version detected via the registry), the second the
// field-name header, subsequent lines are data rows.
func Parse(text string, registry *Registry) (*Document, error) {
	scanner := csvtext.NewLineScanner(text, Enclosure)

	if !scanner.Scan() {
		return nil, &StructuralError{Msg: "input is empty, meta-header line missing"}
	}
	metaFields := csvtext.SplitFields(scanner.Text(), Delimiter, Enclosure)
	raw := make([]string, len(metaFields))
	for i, f := range metaFields {
		raw[i] = f.Value()
	}

	def, ok := registry.Detect(raw)
	if !ok {
		version := ""
		if len(raw) >= 2 {
			version = raw[1]
		}
		return nil, &UnknownVersionError{Version: version}
	}

	meta, err := ParseMetaHeaderLine(def, raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		meta: meta,
		body: csvtext.NewDocument(csvtext.Options{Delimiter: Delimiter, Enclosure: Enclosure}),
	}

	if scanner.Scan() {
		doc.body.SetHeader(csvtext.ParseHeaderLine(scanner.Text(), Delimiter, Enclosure))
	}
	for scanner.Scan() {
		doc.body.AddRow(csvtext.ParseDataLine(scanner.Text(), Delimiter, Enclosure))
	}

	return doc, nil
}

// ParseFile reads a DATEV export from a file.
func ParseFile(path string, registry *Registry) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read DATEV file: %w", err)
	}
	return Parse(string(data), registry)
}

// Meta returns the meta-header line.
func (d *Document) Meta() *MetaHeaderLine {
	return d.meta
}

// Header returns the field-name header line, or nil.
func (d *Document) Header() *csvtext.HeaderLine {
	return d.body.Header()
}

// SetHeader attaches the field-name header line.
func (d *Document) SetHeader(header *csvtext.HeaderLine) {
	d.body.SetHeader(header)
}

// AddRow appends a data row.
func (d *Document) AddRow(row *csvtext.DataLine) {
	d.body.AddRow(row)
}

// Rows returns the data rows in order.
func (d *Document) Rows() []*csvtext.DataLine {
	return d.body.Rows()
}

// SetColumnWidths attaches a render-time column-width configuration for the
// data rows.
func (d *Document) SetColumnWidths(widths *csvtext.ColumnWidthConfig) {
	d.body.SetColumnWidths(widths)
}

// Festschreibung returns the batch lock flag from the meta-header.
func (d *Document) Festschreibung() (Festschreibung, error) {
	value, ok := d.meta.Get(FieldFestschreibung)
	if !ok {
		return 0, &UnknownFieldError{Field: FieldFestschreibung, Version: d.meta.def.Version}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid festschreibung value %q: %w", value, err)
	}
	return FestschreibungFromInt(n)
}

// Validate checks the document's structure: the meta-header and the
// field-name header must be present, and the first meta-header field must
// carry the EXTF marker. Field-pattern failures are reported separately at
// parse/assignment time.
func (d *Document) Validate() error {
	if d.meta == nil {
		return &StructuralError{Msg: "meta-header line missing"}
	}
	if d.body.Header() == nil {
		return &StructuralError{Msg: "field-name header line missing"}
	}
	marker, _ := d.meta.Get(FieldKennzeichen)
	if marker != ExtfMarker {
		return &StructuralError{Msg: fmt.Sprintf("first meta-header field is %q, expected %q", marker, ExtfMarker)}
	}
	return nil
}

// IsConsistent reports whether every data row's field count matches the
// field-name header, with offending row indexes.
func (d *Document) IsConsistent() (bool, []int) {
	return d.body.IsConsistent()
}

// String serializes the document: meta-header, header and data rows as
// newline-joined logical lines.
func (d *Document) String() string {
	return d.meta.Render() + "\n" + d.body.String()
}

// WriteFile writes the serialized document to a file.
func (d *Document) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(d.String()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write DATEV file: %w", err)
	}
	return nil
}
