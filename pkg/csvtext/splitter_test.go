package csvtext

import (
	"reflect"
	"testing"
)

func collectRecords(text string) []string {
	var records []string
	scanner := NewLineScanner(text, '"')
	for scanner.Scan() {
		records = append(records, scanner.Text())
	}
	return records
}

func TestLineScanner(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty input", "", nil},
		{"single record", "a,b,c", []string{"a,b,c"}},
		{"trailing newline", "a,b\n", []string{"a,b"}},
		{"two records", "a,b\nc,d", []string{"a,b", "c,d"}},
		{"crlf terminators", "a,b\r\nc,d\r\n", []string{"a,b", "c,d"}},
		{"newline inside quotes", "a,\"b\nc\"\nd", []string{"a,\"b\nc\"", "d"}},
		{"doubled quote does not close", "\"a\"\"\nb\"\nc", []string{"\"a\"\"\nb\"", "c"}},
		{"blank line is a record", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := collectRecords(tt.text)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("records = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestLineScannerNotRestartable(t *testing.T) {
	scanner := NewLineScanner("a\nb", '"')
	for scanner.Scan() {
	}
	if scanner.Scan() {
		t.Errorf("Scan() after exhaustion must return false")
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name     string
		logical  string
		expected []string
	}{
		{"plain fields", "a,b,c", []string{"a", "b", "c"}},
		{"empty fields", "a,,c", []string{"a", "", "c"}},
		{"trailing empty", "a,b,", []string{"a", "b", ""}},
		{"quoted delimiter", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"escaped quote", `"a""b",c`, []string{`a"b`, "c"}},
		{"quoted newline", "\"a\nb\",c", []string{"a\nb", "c"}},
		{"single field", "only", []string{"only"}},
		{"empty record", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := SplitFields(tt.logical, ',', '"')
			values := make([]string, len(fields))
			for i, f := range fields {
				values[i] = f.Value()
			}
			if !reflect.DeepEqual(values, tt.expected) {
				t.Errorf("values = %q, expected %q", values, tt.expected)
			}
		})
	}
}

func TestSplitFieldsQuotingState(t *testing.T) {
	tests := []struct {
		name           string
		logical        string
		index          int
		expectedQuoted bool
		expectedRepeat int
	}{
		{"unquoted", "a,b", 0, false, 0},
		{"conventional quoting", `"a",b`, 0, true, 1},
		{"empty quoted", `"",b`, 0, true, 1},
		{"doubled boundary", `""a"",b`, 0, true, 2},
		{"escaped inner quote", `"a""b",c`, 0, true, 1},
		{"greedy empty boundary run", `"""",b`, 0, true, 2},
		{"greedy tripled boundary", `"""a""",b`, 0, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := SplitFields(tt.logical, ',', '"')
			f := fields[tt.index]
			if f.IsQuoted() != tt.expectedQuoted {
				t.Errorf("IsQuoted() = %v, expected %v", f.IsQuoted(), tt.expectedQuoted)
			}
			if f.EnclosureRepeat() != tt.expectedRepeat {
				t.Errorf("EnclosureRepeat() = %d, expected %d", f.EnclosureRepeat(), tt.expectedRepeat)
			}
		})
	}
}

func TestSplitFieldsRoundTrip(t *testing.T) {
	// Tokenizing and re-rendering must reproduce the source exactly.
	records := []string{
		`a,"b",c`,
		`"a""b",c`,
		`""ab"",c`,
		`"",x,`,
		`"""",x`,
		`"""a""",x`,
		`a;plain;no quoting`,
	}

	for _, record := range records {
		t.Run(record, func(t *testing.T) {
			line := ParseLine(record, ',', '"')
			if result := line.Render(); result != record {
				t.Errorf("Render() = %q, expected %q", result, record)
			}
		})
	}
}
