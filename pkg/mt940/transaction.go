package mt940

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// maxReferenceLength bounds the combined transaction-code + reference
	// string on a :61: line.
	maxReferenceLength = 16
	// purposeSegmentLength is the fixed width of purpose segments.
	purposeSegmentLength = 27
	// firstSegmentTag and lastSegmentTag bound the ?NN continuation tags.
	firstSegmentTag = 20
	lastSegmentTag  = 29
	// maxPurposeLength is the inline :86: segment plus the ?20..?29
	// continuation segments. Longer purposes are rejected at construction;
	// wrapping past ?29 would corrupt the single-digit-tens tag convention.
	maxPurposeLength = purposeSegmentLength * (1 + lastSegmentTag - firstSegmentTag + 1)
)

var transactionCodePattern = regexp.MustCompile(`^[FNS][A-Z0-9]{3}$`)

// TransactionSpec carries the inputs for constructing a transaction.
type TransactionSpec struct {
	BookingDate time.Time
	// ValutaDate is optional; the zero value means absent.
	ValutaDate  time.Time
	CreditDebit CreditDebit
	Amount      decimal.Decimal
	// Code is the SWIFT transaction type code, e.g. "NTRF".
	Code      string
	Reference string
	Purpose   string
}

// Transaction is one statement transaction: a :61: line plus a segmented
// :86: purpose block. Construct it through NewTransaction; specs violating
// a fixed-format bound are rejected, never truncated.
type Transaction struct {
	BookingDate time.Time
	ValutaDate  time.Time
	HasValuta   bool
	CreditDebit CreditDebit
	Amount      decimal.Decimal
	Code        string
	Reference   string
	Purpose     string
}

// NewTransaction validates a spec and constructs a transaction. The amount
// is rounded to 2 decimal places.
func NewTransaction(spec TransactionSpec) (*Transaction, error) {
	switch spec.CreditDebit {
	case Credit, Debit, ReverseCredit, ReverseDebit:
	default:
		return nil, &FormatError{Raw: string(spec.CreditDebit), Reason: "credit/debit indicator"}
	}
	if !transactionCodePattern.MatchString(spec.Code) {
		return nil, &FormatError{Raw: spec.Code, Reason: "transaction code"}
	}
	if combined := len(spec.Code) + len(spec.Reference); combined > maxReferenceLength {
		return nil, &ConstraintError{Msg: fmt.Sprintf(
			"transaction code plus reference %q is %d characters, at most %d allowed",
			spec.Code+spec.Reference, combined, maxReferenceLength)}
	}
	if count := utf8.RuneCountInString(spec.Purpose); count > maxPurposeLength {
		return nil, &ConstraintError{Msg: fmt.Sprintf(
			"purpose of %d characters exceeds segment tag ?%d, at most %d allowed",
			count, lastSegmentTag, maxPurposeLength)}
	}

	return &Transaction{
		BookingDate: spec.BookingDate,
		ValutaDate:  spec.ValutaDate,
		HasValuta:   !spec.ValutaDate.IsZero(),
		CreditDebit: spec.CreditDebit,
		Amount:      spec.Amount.Round(2),
		Code:        spec.Code,
		Reference:   spec.Reference,
		Purpose:     spec.Purpose,
	}, nil
}

// NewTransactionShortValuta constructs a transaction whose valuta date is
// given in the short mmdd form. The valuta date always takes the booking
// date's calendar year; callers with statements crossing a year boundary
// must pass a full valuta date on the spec instead.
func NewTransactionShortValuta(spec TransactionSpec, valuta string) (*Transaction, error) {
	parsed, err := time.Parse("0102", valuta)
	if err != nil {
		return nil, &FormatError{Raw: valuta, Reason: "valuta date"}
	}
	spec.ValutaDate = time.Date(spec.BookingDate.Year(), parsed.Month(), parsed.Day(),
		0, 0, 0, 0, time.UTC)
	return NewTransaction(spec)
}

// Line61 renders the :61: statement line: booking date, optional valuta
// date in mmdd form, credit/debit code, amount, transaction code and
// reference.
func (t *Transaction) Line61() string {
	valuta := ""
	if t.HasValuta {
		valuta = t.ValutaDate.Format("0102")
	}
	return ":61:" + t.BookingDate.Format(swiftDate) + valuta +
		string(t.CreditDebit) + formatAmount(t.Amount) + t.Code + t.Reference
}

// Lines86 renders the purpose block: the first segment inline after :86:,
// subsequent fixed 27-character segments as ?NN lines counting up from
// ?20.
func (t *Transaction) Lines86() []string {
	segments := splitPurpose(t.Purpose)
	lines := []string{":86:" + segments[0]}
	for i, segment := range segments[1:] {
		lines = append(lines, fmt.Sprintf("?%d%s", firstSegmentTag+i, segment))
	}
	return lines
}

// Lines renders the complete transaction block.
func (t *Transaction) Lines() []string {
	return append([]string{t.Line61()}, t.Lines86()...)
}

// splitPurpose chops the purpose into fixed-width segments. Widths count
// characters, not bytes, so a multi-byte rune never straddles a segment
// boundary. An empty purpose yields a single empty segment.
func splitPurpose(purpose string) []string {
	runes := []rune(purpose)
	if len(runes) == 0 {
		return []string{""}
	}
	var segments []string
	for len(runes) > purposeSegmentLength {
		segments = append(segments, string(runes[:purposeSegmentLength]))
		runes = runes[purposeSegmentLength:]
	}
	return append(segments, string(runes))
}
