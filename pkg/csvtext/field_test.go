package csvtext

import "testing"

func TestFieldRender(t *testing.T) {
	tests := []struct {
		name        string
		field       Field
		forceRepeat int
		expected    string
	}{
		{"plain value", NewField("abc"), 0, "abc"},
		{"empty unquoted", NewField(""), 0, ""},
		{"empty quoted", QuotedField(""), 0, `""`},
		{"quoted value", QuotedField("abc"), 0, `"abc"`},
		{"contains delimiter", NewField("a,b"), 0, `"a,b"`},
		{"contains enclosure", NewField(`a"b`), 0, `"a""b"`},
		{"contains newline", NewField("a\nb"), 0, "\"a\nb\""},
		{"repeat two", NewField("ab").WithEnclosureRepeat(2), 0, `""ab""`},
		{"forced quoting", NewField("abc"), 1, `"abc"`},
		{"forced repeat two", QuotedField("abc"), 2, `""abc""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.field.Render(',', '"', tt.forceRepeat)
			if result != tt.expected {
				t.Errorf("Render() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestFieldEmptyVersusAbsent(t *testing.T) {
	// An empty string and an absent value serialize identically unless the
	// caller explicitly forces quoting.
	absent := NewField("")
	empty := NewField("")
	if absent.Render(',', '"', 0) != empty.Render(',', '"', 0) {
		t.Errorf("empty and absent values must render identically")
	}

	forced := QuotedField("")
	if forced.Render(',', '"', 0) != `""` {
		t.Errorf("explicitly quoted empty field must render as %q, got %q", `""`, forced.Render(',', '"', 0))
	}
}

func TestFieldWithSemantics(t *testing.T) {
	original := NewField("a")

	modified := original.WithValue("b")
	if original.Value() != "a" {
		t.Errorf("WithValue mutated the original field: %q", original.Value())
	}
	if modified.Value() != "b" {
		t.Errorf("WithValue() = %q, expected %q", modified.Value(), "b")
	}

	quoted := original.WithQuoted(true)
	if quoted.EnclosureRepeat() != 1 {
		t.Errorf("WithQuoted(true) repeat = %d, expected 1", quoted.EnclosureRepeat())
	}
	if unquoted := quoted.WithQuoted(false); unquoted.EnclosureRepeat() != 0 {
		t.Errorf("WithQuoted(false) repeat = %d, expected 0", unquoted.EnclosureRepeat())
	}
}

func TestFieldType(t *testing.T) {
	tests := []struct {
		value    string
		expected FieldType
	}{
		{"123", FieldTypeInt},
		{"-7", FieldTypeInt},
		{"1.5", FieldTypeFloat},
		{"1,5", FieldTypeFloat},
		{"-1234,56", FieldTypeFloat},
		{"true", FieldTypeBool},
		{"FALSE", FieldTypeBool},
		{"2024-01-31", FieldTypeDateTime},
		{"31.01.2024", FieldTypeDateTime},
		{"2024-01-31 12:30:00", FieldTypeDateTime},
		{"hello", FieldTypeString},
		{"", FieldTypeString},
		{"1,2,3", FieldTypeString},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := NewField(tt.value).Type()
			if result != tt.expected {
				t.Errorf("Type(%q) = %s, expected %s", tt.value, result, tt.expected)
			}
		})
	}
}

func TestFieldTypedAccess(t *testing.T) {
	if n, ok := NewField("42").Int64(); !ok || n != 42 {
		t.Errorf("Int64() = %d, %v, expected 42, true", n, ok)
	}
	if v, ok := NewField("1,25").Float64(); !ok || v != 1.25 {
		t.Errorf("Float64() = %v, %v, expected 1.25, true", v, ok)
	}
	if b, ok := NewField("true").Bool(); !ok || !b {
		t.Errorf("Bool() = %v, %v, expected true, true", b, ok)
	}
	if ts, ok := NewField("2024-06-30").Time(); !ok || ts.Year() != 2024 || ts.Month() != 6 {
		t.Errorf("Time() = %v, %v, expected June 2024", ts, ok)
	}
	if _, ok := NewField("hello").Int64(); ok {
		t.Errorf("Int64 on non-numeric value must fail")
	}
}
