package mt940

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var line61Pattern = regexp.MustCompile(`^:61:(\d{6})(\d{4})?(RC|RD|C|D)([0-9,]+)([FNS][A-Z0-9]{3})(.*)$`)

// Statement is one MT940 statement block: reference, account, statement
// number, opening balance, transactions and closing balance, serialized as
// CRLF-joined tagged lines with a trailing "-" sentinel.
type Statement struct {
	Reference    string // :20:
	Account      string // :25:
	Number       string // :28C:
	Opening      Balance
	Transactions []*Transaction
	Closing      Balance
}

// String serializes the statement block. The output is canonical: every
// transaction carries a :86: purpose block, so input parsed without one
// gains a bare :86: line and round-trips exactly from then on.
func (s *Statement) String() string {
	lines := []string{
		":20:" + s.Reference,
		":25:" + s.Account,
		":28C:" + s.Number,
		":60F:" + s.Opening.String(),
	}
	for _, t := range s.Transactions {
		lines = append(lines, t.Lines()...)
	}
	lines = append(lines, ":62F:"+s.Closing.String(), "-")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// WriteFile writes the serialized statement to a file.
func (s *Statement) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(s.String()), 0644); err != nil {
		return fmt.Errorf("failed to write MT940 file: %w", err)
	}
	return nil
}

// ParseStatement parses one MT940 statement block. Tags must appear in the
// sequence :20:, :25:, :28C:, :60F:, zero or more transaction blocks, :62F:
// and the "-" sentinel.
func ParseStatement(text string) (*Statement, error) {
	lines := statementLines(text)
	p := &statementParser{lines: lines}

	s := &Statement{}
	var err error
	if s.Reference, err = p.tagged(":20:"); err != nil {
		return nil, err
	}
	if s.Account, err = p.tagged(":25:"); err != nil {
		return nil, err
	}
	if s.Number, err = p.tagged(":28C:"); err != nil {
		return nil, err
	}

	opening, err := p.tagged(":60F:")
	if err != nil {
		return nil, err
	}
	if s.Opening, err = ParseBalance(opening); err != nil {
		return nil, err
	}

	for p.hasPrefix(":61:") {
		t, err := p.transaction()
		if err != nil {
			return nil, err
		}
		s.Transactions = append(s.Transactions, t)
	}

	closing, err := p.tagged(":62F:")
	if err != nil {
		return nil, err
	}
	if s.Closing, err = ParseBalance(closing); err != nil {
		return nil, err
	}

	if line, ok := p.next(); !ok || line != "-" {
		return nil, &StructuralError{Msg: fmt.Sprintf("expected trailing \"-\" sentinel, got %q", line)}
	}
	return s, nil
}

// ParseFile parses an MT940 statement block from a file.
func ParseFile(path string) (*Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read MT940 file: %w", err)
	}
	return ParseStatement(string(data))
}

// statementLines splits the block into lines, accepting CRLF or bare LF
// terminators and dropping a trailing empty line.
func statementLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// statementParser walks the tagged lines of one statement block.
type statementParser struct {
	lines []string
	pos   int
}

func (p *statementParser) next() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	line := p.lines[p.pos]
	p.pos++
	return line, true
}

func (p *statementParser) hasPrefix(tag string) bool {
	return p.pos < len(p.lines) && strings.HasPrefix(p.lines[p.pos], tag)
}

// tagged consumes the next line, which must start with the given tag, and
// returns its value.
func (p *statementParser) tagged(tag string) (string, error) {
	line, ok := p.next()
	if !ok {
		return "", &StructuralError{Msg: fmt.Sprintf("unexpected end of statement, expected %s line", tag)}
	}
	if !strings.HasPrefix(line, tag) {
		return "", &StructuralError{Msg: fmt.Sprintf("expected %s line, got %q", tag, line)}
	}
	return strings.TrimPrefix(line, tag), nil
}

// transaction consumes one :61: line and its :86: purpose block.
func (p *statementParser) transaction() (*Transaction, error) {
	line, _ := p.next()
	m := line61Pattern.FindStringSubmatch(line)
	if m == nil {
		return nil, &FormatError{Raw: line, Reason: "transaction line"}
	}

	booking, err := time.Parse(swiftDate, m[1])
	if err != nil {
		return nil, &FormatError{Raw: line, Reason: "booking date"}
	}
	amount, err := parseAmount(m[4])
	if err != nil {
		return nil, &FormatError{Raw: line, Reason: "transaction amount"}
	}

	spec := TransactionSpec{
		BookingDate: booking,
		CreditDebit: CreditDebit(m[3]),
		Amount:      amount,
		Code:        m[5],
		Reference:   m[6],
		Purpose:     strings.Join(p.purposeSegments(), ""),
	}
	if m[2] != "" {
		// Short valuta form shares the booking date's calendar year.
		return NewTransactionShortValuta(spec, m[2])
	}
	return NewTransaction(spec)
}

// purposeSegments consumes the :86: line and its ?NN continuation lines.
func (p *statementParser) purposeSegments() []string {
	var segments []string
	if p.hasPrefix(":86:") {
		line, _ := p.next()
		segments = append(segments, strings.TrimPrefix(line, ":86:"))
	}
	tag := firstSegmentTag
	for p.pos < len(p.lines) && tag <= lastSegmentTag {
		line := p.lines[p.pos]
		if !strings.HasPrefix(line, "?"+strconv.Itoa(tag)) {
			break
		}
		p.pos++
		segments = append(segments, strings.TrimPrefix(line, "?"+strconv.Itoa(tag)))
		tag++
	}
	return segments
}
