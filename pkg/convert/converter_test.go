package convert

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/steuerbar/fintext/pkg/datev"
	"github.com/steuerbar/fintext/pkg/mt940"
)

func sampleStatement(t *testing.T) *mt940.Statement {
	t.Helper()

	salary, err := mt940.NewTransaction(mt940.TransactionSpec{
		BookingDate: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		CreditDebit: mt940.Credit,
		Amount:      decimal.RequireFromString("1500"),
		Code:        "NMSC",
		Reference:   "SALARY",
		Purpose:     "Gehalt Maerz",
	})
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	rent, err := mt940.NewTransaction(mt940.TransactionSpec{
		BookingDate: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		CreditDebit: mt940.Debit,
		Amount:      decimal.RequireFromString("980.5"),
		Code:        "NTRF",
		Reference:   "RENT",
		Purpose:     "Miete Buero Maerz",
	})
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}

	return &mt940.Statement{
		Reference:    "STARTUMSE",
		Account:      "10020030/1234567",
		Number:       "00001/001",
		Opening:      mt940.NewBalance(mt940.Credit, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "EUR", decimal.RequireFromString("2500")),
		Transactions: []*mt940.Transaction{salary, rent},
		Closing:      mt940.NewBalance(mt940.Credit, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), "EUR", decimal.RequireFromString("3019.5")),
	}
}

func testConverter(t *testing.T) *Converter {
	t.Helper()
	return NewConverter(testMapper(t), Settings{
		ConsultantID:    "29098",
		ClientID:        "55003",
		SKR:             "04",
		FiscalYearStart: "20240101",
		AccountLength:   "4",
	})
}

func TestConvertStatementMetaHeader(t *testing.T) {
	doc, err := testConverter(t).ConvertStatement(sampleStatement(t))
	if err != nil {
		t.Fatalf("ConvertStatement() error = %v", err)
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		label    string
		expected string
	}{
		{datev.FieldBerater, "29098"},
		{datev.FieldMandant, "55003"},
		{datev.FieldSKR, "04"},
		{datev.FieldWJBeginn, "20240101"},
		{datev.FieldDatumVon, "20240301"},
		{datev.FieldDatumBis, "20240331"},
		{datev.FieldWKZ, "EUR"},
		{datev.FieldBezeichnung, "STARTUMSE"},
	}

	for _, tt := range tests {
		value, ok := doc.Meta().Get(tt.label)
		if !ok {
			t.Errorf("Meta().Get(%q) not found", tt.label)
			continue
		}
		if value != tt.expected {
			t.Errorf("Meta().Get(%q) = %q, expected %q", tt.label, value, tt.expected)
		}
	}
}

func TestConvertStatementRows(t *testing.T) {
	s := sampleStatement(t)
	doc, err := testConverter(t).ConvertStatement(s)
	if err != nil {
		t.Fatalf("ConvertStatement() error = %v", err)
	}

	rows := doc.Rows()
	if len(rows) != len(s.Transactions) {
		t.Fatalf("len(Rows()) = %d, expected %d", len(rows), len(s.Transactions))
	}
	if ok, offenders := doc.IsConsistent(); !ok {
		t.Fatalf("IsConsistent() = false, offending rows %v", offenders)
	}

	tests := []struct {
		row      int
		column   string
		expected string
	}{
		{0, "Umsatz (ohne Soll/Haben-Kz)", "1500,00"},
		{0, "Soll/Haben-Kennzeichen", "S"},
		{0, "WKZ Umsatz", "EUR"},
		{0, "Konto", "1200"},
		{0, "Gegenkonto (ohne BU-Schlüssel)", "4120"},
		{0, "Belegdatum", "1803"},
		{0, "Belegfeld 1", "SALARY"},
		{0, "Buchungstext", "Gehalt Maerz"},
		{1, "Umsatz (ohne Soll/Haben-Kz)", "980,50"},
		{1, "Soll/Haben-Kennzeichen", "H"},
		{1, "Gegenkonto (ohne BU-Schlüssel)", "4210"},
		{1, "Belegdatum", "2003"},
	}

	for _, tt := range tests {
		row := rows[tt.row]
		row.Bind(doc.Header())
		field, ok := row.FieldByName(tt.column)
		if !ok {
			t.Errorf("row %d has no column %q", tt.row, tt.column)
			continue
		}
		if field.Value() != tt.expected {
			t.Errorf("row %d column %q = %q, expected %q", tt.row, tt.column, field.Value(), tt.expected)
		}
	}
}

func TestConvertStatementTruncatesBuchungstextOnRender(t *testing.T) {
	s := sampleStatement(t)
	long := strings.Repeat("Dauerauftrag Miete ", 4) // 76 characters
	txn, err := mt940.NewTransaction(mt940.TransactionSpec{
		BookingDate: time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC),
		CreditDebit: mt940.Debit,
		Amount:      decimal.RequireFromString("42"),
		Code:        "NTRF",
		Reference:   "LONG",
		Purpose:     long,
	})
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	s.Transactions = []*mt940.Transaction{txn}

	doc, err := testConverter(t).ConvertStatement(s)
	if err != nil {
		t.Fatalf("ConvertStatement() error = %v", err)
	}

	row := doc.Rows()[0]
	row.Bind(doc.Header())
	field, _ := row.FieldByName("Buchungstext")
	if field.Value() != long {
		t.Errorf("stored Buchungstext = %q, expected the untruncated purpose", field.Value())
	}

	rendered := doc.String()
	if !strings.Contains(rendered, `"`+long[:60]+`"`) {
		t.Errorf("rendered document does not contain the 60-character Buchungstext")
	}
	if strings.Contains(rendered, long) {
		t.Errorf("rendered document contains the untruncated purpose")
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		number   string
		expected string
	}{
		{"00001/001", "EXTF_00001-001.csv"},
		{"1 of 3", "EXTF_1_of_3.csv"},
		{"A\\B", "EXTF_A-B.csv"},
	}

	for _, tt := range tests {
		s := &mt940.Statement{Number: tt.number}
		if result := ExportFileName(s); result != tt.expected {
			t.Errorf("ExportFileName(%q) = %q, expected %q", tt.number, result, tt.expected)
		}
	}
}
