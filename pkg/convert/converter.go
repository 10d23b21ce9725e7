package convert

import (
	"fmt"
	"strings"

	"github.com/steuerbar/fintext/pkg/csvtext"
	"github.com/steuerbar/fintext/pkg/datev"
	"github.com/steuerbar/fintext/pkg/mt940"
)

// bookingColumns is the field-name header of a generated Buchungsstapel.
var bookingColumns = []string{
	"Umsatz (ohne Soll/Haben-Kz)",
	"Soll/Haben-Kennzeichen",
	"WKZ Umsatz",
	"Konto",
	"Gegenkonto (ohne BU-Schlüssel)",
	"Belegdatum",
	"Belegfeld 1",
	"Buchungstext",
}

// buchungstextWidth is the DATEV limit for the posting text column.
const buchungstextWidth = 60

// Settings carries the meta-header values and rendering options for
// generated exports.
type Settings struct {
	ConsultantID    string
	ClientID        string
	SKR             string
	FiscalYearStart string // yyyymmdd
	AccountLength   string
	// Widths overrides the render-time column widths. Nil applies the
	// default Buchungstext limit.
	Widths *csvtext.ColumnWidthConfig
}

// Converter converts MT940 statements to DATEV booking documents.
type Converter struct {
	mapper   *Mapper
	settings Settings
}

// NewConverter creates a new Converter.
func NewConverter(mapper *Mapper, settings Settings) *Converter {
	return &Converter{mapper: mapper, settings: settings}
}

// ConvertStatement converts one statement into a DATEV document: a
// default-seeded v700 meta-header filled from the settings and the
// statement, the booking header and one row per transaction.
func (c *Converter) ConvertStatement(s *mt940.Statement) (*datev.Document, error) {
	doc := datev.NewDocument(datev.V700())

	meta := map[string]string{
		datev.FieldBerater:          c.settings.ConsultantID,
		datev.FieldMandant:          c.settings.ClientID,
		datev.FieldSKR:              c.settings.SKR,
		datev.FieldWJBeginn:         c.settings.FiscalYearStart,
		datev.FieldSachkontenlaenge: c.settings.AccountLength,
		datev.FieldDatumVon:         s.Opening.Date.Format("20060102"),
		datev.FieldDatumBis:         s.Closing.Date.Format("20060102"),
		datev.FieldWKZ:              s.Opening.Currency,
		datev.FieldBezeichnung:      csvtext.Truncate(s.Reference, 30, csvtext.StrategyTruncate),
	}
	for label, value := range meta {
		if value == "" {
			continue
		}
		if err := doc.Meta().Set(label, value); err != nil {
			return nil, fmt.Errorf("failed to build meta-header: %w", err)
		}
	}

	headerFields := make([]csvtext.Field, len(bookingColumns))
	for i, name := range bookingColumns {
		headerFields[i] = csvtext.QuotedField(name)
	}
	doc.SetHeader(csvtext.NewHeaderLine(datev.Delimiter, datev.Enclosure, headerFields...))

	for _, txn := range s.Transactions {
		doc.AddRow(c.bookingRow(s, txn))
	}

	widths := c.settings.Widths
	if widths == nil {
		widths = &csvtext.ColumnWidthConfig{
			ByName:   map[string]int{"Buchungstext": buchungstextWidth},
			Strategy: csvtext.StrategyTruncate,
		}
	}
	doc.SetColumnWidths(widths)

	return doc, nil
}

// bookingRow builds one data row from a transaction.
func (c *Converter) bookingRow(s *mt940.Statement, txn *mt940.Transaction) *csvtext.DataLine {
	return csvtext.NewDataLine(datev.Delimiter, datev.Enclosure,
		csvtext.NewField(germanAmount(txn)),
		csvtext.QuotedField(sollHaben(txn.CreditDebit)),
		csvtext.QuotedField(s.Opening.Currency),
		csvtext.NewField(c.mapper.BankAccount()),
		csvtext.NewField(c.mapper.ContraAccount(txn)),
		csvtext.NewField(txn.BookingDate.Format("0201")),
		csvtext.QuotedField(txn.Reference),
		csvtext.QuotedField(txn.Purpose),
	)
}

// ExportFileName derives the output file name for a statement.
func ExportFileName(s *mt940.Statement) string {
	number := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(s.Number)
	return fmt.Sprintf("EXTF_%s.csv", number)
}

// germanAmount renders the transaction amount with 2 decimals and a
// decimal comma, as DATEV expects in the Umsatz column.
func germanAmount(txn *mt940.Transaction) string {
	return strings.Replace(txn.Amount.StringFixed(2), ".", ",", 1)
}

// sollHaben maps the SWIFT credit/debit indicator to the DATEV
// Soll/Haben-Kennzeichen of the bank account: inflows debit (S) the bank
// account, outflows credit (H) it; reversals flip the side.
func sollHaben(cd mt940.CreditDebit) string {
	switch cd {
	case mt940.Credit, mt940.ReverseDebit:
		return "S"
	default:
		return "H"
	}
}
