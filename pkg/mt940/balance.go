// Package mt940 implements the SWIFT MT940 bank statement format:
// colon-tagged lines with balance and transaction records, fixed-width
// constraints and segmented free text. Parsing and serialization are exact
// inverses for canonical input.
package mt940

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreditDebit marks the direction of a balance or transaction.
type CreditDebit string

const (
	Credit        CreditDebit = "C"
	Debit         CreditDebit = "D"
	ReverseCredit CreditDebit = "RC"
	ReverseDebit  CreditDebit = "RD"
)

// swiftDate is the 6-digit yymmdd date layout used throughout MT940.
const swiftDate = "060102"

var balancePattern = regexp.MustCompile(`^([CD])(\d{6})([A-Z]{3})([0-9,]+)$`)

// Balance is an opening or closing balance: direction, date, currency and
// amount. The amount is rounded to 2 decimal places at construction.
type Balance struct {
	Indicator CreditDebit
	Date      time.Time
	Currency  string
	Amount    decimal.Decimal
}

// NewBalance creates a balance with the amount rounded to 2 decimals.
func NewBalance(indicator CreditDebit, date time.Time, currency string, amount decimal.Decimal) Balance {
	return Balance{
		Indicator: indicator,
		Date:      date,
		Currency:  currency,
		Amount:    amount.Round(2),
	}
}

// ParseBalance parses the raw balance value of a :60F:/:62F: line per the
// grammar ^([CD])(\d{6})([A-Z]{3})([0-9,]+)$. Any deviation is a
// FormatError naming the offending raw string.
func ParseBalance(raw string) (Balance, error) {
	m := balancePattern.FindStringSubmatch(raw)
	if m == nil {
		return Balance{}, &FormatError{Raw: raw, Reason: "balance"}
	}

	date, err := time.Parse(swiftDate, m[2])
	if err != nil {
		return Balance{}, &FormatError{Raw: raw, Reason: "balance date"}
	}

	amount, err := parseAmount(m[4])
	if err != nil {
		return Balance{}, &FormatError{Raw: raw, Reason: "balance amount"}
	}

	return NewBalance(CreditDebit(m[1]), date, m[3], amount), nil
}

// String serializes the balance as the exact inverse of ParseBalance:
// indicator, yymmdd date, currency and the amount with 2 decimals and a
// comma as decimal separator.
func (b Balance) String() string {
	return string(b.Indicator) + b.Date.Format(swiftDate) + b.Currency + formatAmount(b.Amount)
}

// parseAmount reads a comma-decimal amount (no thousands separator).
func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
}

// formatAmount renders an amount with 2 decimals and a decimal comma.
func formatAmount(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}
