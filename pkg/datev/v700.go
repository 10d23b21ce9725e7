package datev

import (
	"regexp"
	"time"
)

// Definition is the immutable description of one format version: an ordered
// list of meta-header fields plus per-field defaults.
type Definition struct {
	Version int
	Fields  []FieldDef
}

// FieldByLabel returns the field definition with the given label.
func (d *Definition) FieldByLabel(label string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Meta-header field labels shared by callers.
const (
	FieldKennzeichen      = "Kennzeichen"
	FieldVersionsnummer   = "Versionsnummer"
	FieldFormatkategorie  = "Formatkategorie"
	FieldFormatname       = "Formatname"
	FieldFormatversion    = "Formatversion"
	FieldErzeugtAm        = "Erzeugt am"
	FieldHerkunft         = "Herkunft"
	FieldExportiertVon    = "Exportiert von"
	FieldBerater          = "Berater"
	FieldMandant          = "Mandant"
	FieldWJBeginn         = "WJ-Beginn"
	FieldSachkontenlaenge = "Sachkontenlänge"
	FieldDatumVon         = "Datum von"
	FieldDatumBis         = "Datum bis"
	FieldBezeichnung      = "Bezeichnung"
	FieldBuchungstyp      = "Buchungstyp"
	FieldFestschreibung   = "Festschreibung"
	FieldWKZ              = "WKZ"
	FieldSKR              = "SKR"
)

func fixed(value string) func() string {
	return func() string { return value }
}

// timestampNow renders the "Erzeugt am" creation timestamp
// (yyyymmddhhmmssfff).
func timestampNow() string {
	return time.Now().Format("20060102150405") + "000"
}

// V700 builds the definition of format version 700: the standard 31-field
// EXTF meta-header of a Buchungsstapel export.
func V700() *Definition {
	return &Definition{
		Version: 700,
		Fields: []FieldDef{
			{Label: FieldKennzeichen, Position: 1, Pattern: regexp.MustCompile(`^(EXTF|DTVF)$`), Quoted: true, Default: fixed(ExtfMarker)},
			{Label: FieldVersionsnummer, Position: 2, Pattern: regexp.MustCompile(`^\d{3}$`), Default: fixed("700")},
			{Label: FieldFormatkategorie, Position: 3, Pattern: regexp.MustCompile(`^\d{1,2}$`), Default: fixed("21")},
			{Label: FieldFormatname, Position: 4, Pattern: regexp.MustCompile(`^[A-Za-z]+$`), Quoted: true, Default: fixed("Buchungsstapel")},
			{Label: FieldFormatversion, Position: 5, Pattern: regexp.MustCompile(`^\d{1,2}$`), Default: fixed("9")},
			{Label: FieldErzeugtAm, Position: 6, Pattern: regexp.MustCompile(`^\d{17}$`), Default: timestampNow},
			{Label: "Importiert", Position: 7},
			{Label: FieldHerkunft, Position: 8, Pattern: regexp.MustCompile(`^[A-Z]{2}$`), Quoted: true, Default: fixed("RE")},
			{Label: FieldExportiertVon, Position: 9, Quoted: true, Default: fixed("fintext")},
			{Label: "Importiert von", Position: 10, Quoted: true},
			{Label: FieldBerater, Position: 11, Pattern: regexp.MustCompile(`^\d{1,7}$`), Default: fixed("0")},
			{Label: FieldMandant, Position: 12, Pattern: regexp.MustCompile(`^\d{1,5}$`), Default: fixed("0")},
			{Label: FieldWJBeginn, Position: 13, Pattern: regexp.MustCompile(`^\d{8}$`), Default: fixed("20000101")},
			{Label: FieldSachkontenlaenge, Position: 14, Pattern: regexp.MustCompile(`^[4-8]$`), Default: fixed("4")},
			{Label: FieldDatumVon, Position: 15, Pattern: regexp.MustCompile(`^\d{8}$`), Default: fixed("20000101")},
			{Label: FieldDatumBis, Position: 16, Pattern: regexp.MustCompile(`^\d{8}$`), Default: fixed("20001231")},
			{Label: FieldBezeichnung, Position: 17, Pattern: regexp.MustCompile(`^.{0,30}$`), Quoted: true},
			{Label: "Diktatkürzel", Position: 18, Pattern: regexp.MustCompile(`^[A-Z]{0,2}$`), Quoted: true},
			{Label: FieldBuchungstyp, Position: 19, Pattern: regexp.MustCompile(`^[12]$`), Default: fixed("1")},
			{Label: "Rechnungslegungszweck", Position: 20, Pattern: regexp.MustCompile(`^(0|30|40|50|64)?$`), Default: fixed("0")},
			{Label: FieldFestschreibung, Position: 21, Pattern: regexp.MustCompile(`^[01]$`), Default: fixed("0")},
			{Label: FieldWKZ, Position: 22, Pattern: regexp.MustCompile(`^[A-Z]{3}$`), Quoted: true, Default: fixed("EUR")},
			{Label: "Reserviert 23", Position: 23},
			{Label: "Derivatskennzeichen", Position: 24},
			{Label: "Reserviert 25", Position: 25},
			{Label: "Reserviert 26", Position: 26},
			{Label: FieldSKR, Position: 27, Pattern: regexp.MustCompile(`^\d{2}$`), Quoted: true, Default: fixed("03")},
			{Label: "Branchenlösung-Id", Position: 28, Pattern: regexp.MustCompile(`^\d*$`)},
			{Label: "Reserviert 29", Position: 29},
			{Label: "Reserviert 30", Position: 30},
			{Label: "Anwendungsinformation", Position: 31, Pattern: regexp.MustCompile(`^.{0,16}$`), Quoted: true},
		},
	}
}
