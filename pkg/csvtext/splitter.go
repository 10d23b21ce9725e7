package csvtext

import "strings"

// LineScanner splits raw CSV text into logical records. A logical record may
// span multiple physical lines when a quoted field contains embedded
// newlines. The scanner is lazy, finite and non-restartable, in the manner
// of bufio.Scanner.
type LineScanner struct {
	text      string
	enclosure rune
	pos       int
	current   string
	done      bool
}

// NewLineScanner creates a scanner over the given text using the given
// enclosure character for quote tracking.
func NewLineScanner(text string, enclosure rune) *LineScanner {
	return &LineScanner{text: text, enclosure: enclosure}
}

// Scan advances to the next logical record. It returns false when the input
// is exhausted.
func (s *LineScanner) Scan() bool {
	if s.done || s.pos >= len(s.text) {
		s.done = true
		return false
	}

	runes := []rune(s.text[s.pos:])
	inQuotes := false
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == s.enclosure:
			if inQuotes && i+1 < len(runes) && runes[i+1] == s.enclosure {
				// Doubled enclosure inside a quoted field is a literal
				// enclosure character and does not toggle state.
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == '\n' && !inQuotes:
			record := string(runes[:i])
			record = strings.TrimSuffix(record, "\r")
			s.current = record
			s.pos += len(string(runes[:i+1]))
			return true
		}
	}

	// Final record without a trailing newline.
	s.current = strings.TrimSuffix(string(runes), "\r")
	s.pos = len(s.text)
	return true
}

// Text returns the logical record produced by the last call to Scan.
func (s *LineScanner) Text() string {
	return s.current
}

// SplitFields tokenizes one logical record into fields using the configured
// delimiter, respecting the same quote-toggle rule as the line scanner.
// Quoting state and enclosure-repeat counts are recorded so the record can
// be rendered back byte-identically.
func SplitFields(logical string, delimiter, enclosure rune) []Field {
	var fields []Field
	runes := []rune(logical)
	start := 0
	inQuotes := false
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == enclosure:
			if inQuotes && i+1 < len(runes) && runes[i+1] == enclosure {
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == delimiter && !inQuotes:
			fields = append(fields, fieldFromRaw(string(runes[start:i]), enclosure))
			start = i + 1
		}
	}
	fields = append(fields, fieldFromRaw(string(runes[start:]), enclosure))
	return fields
}

// fieldFromRaw reconstructs a Field from the exact source substring of one
// token, including any enclosure characters and escaping. Boundary runs are
// read greedily: `""""` is a repeat-2 empty field and `"""a"""` a repeat-3
// field, not conventional quoting around escaped literals. Both readings
// re-render byte-identically, so the round-trip contract holds either way.
func fieldFromRaw(raw string, enclosure rune) Field {
	encl := string(enclosure)
	leading := countRun(raw, enclosure, false)
	trailing := countRun(raw, enclosure, true)
	if leading == 0 || trailing == 0 {
		return NewField(raw)
	}

	repeat := leading
	if trailing < repeat {
		repeat = trailing
	}
	// A token like `""` is an empty conventionally quoted field, not a
	// repeat-2 boundary around nothing.
	if max := len(raw) / (2 * len(encl)); repeat > max {
		repeat = max
	}
	if repeat < 1 {
		return NewField(raw)
	}

	inner := raw[repeat*len(encl) : len(raw)-repeat*len(encl)]
	value := strings.ReplaceAll(inner, encl+encl, encl)
	return NewField(value).WithEnclosureRepeat(repeat)
}

// countRun counts consecutive occurrences of c at the start (or end) of s.
func countRun(s string, c rune, fromEnd bool) int {
	runes := []rune(s)
	count := 0
	if fromEnd {
		for i := len(runes) - 1; i >= 0 && runes[i] == c; i-- {
			count++
		}
		return count
	}
	for i := 0; i < len(runes) && runes[i] == c; i++ {
		count++
	}
	return count
}
