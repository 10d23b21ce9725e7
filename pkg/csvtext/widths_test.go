package csvtext

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		width    int
		strategy TruncateStrategy
		expected string
	}{
		{"hard cut", "Very Long Text", 10, StrategyTruncate, "Very Long "},
		{"ellipsis", "Very Long Text", 10, StrategyEllipsis, "Very Lo..."},
		{"fits exactly", "1234567890", 10, StrategyEllipsis, "1234567890"},
		{"shorter than width", "abc", 10, StrategyEllipsis, "abc"},
		{"width three ellipsis falls back", "abcdef", 3, StrategyEllipsis, "abc"},
		{"width two ellipsis falls back", "abcdef", 2, StrategyEllipsis, "ab"},
		{"width four ellipsis", "abcdef", 4, StrategyEllipsis, "a..."},
		{"zero width is unlimited", "abcdef", 0, StrategyTruncate, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.value, tt.width, tt.strategy)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d, %s) = %q, expected %q",
					tt.value, tt.width, tt.strategy, result, tt.expected)
			}
		})
	}
}

func TestWidthFor(t *testing.T) {
	config := &ColumnWidthConfig{
		ByName:  map[string]int{"Buchungstext": 60},
		ByIndex: map[int]int{2: 12},
		Default: 30,
	}

	tests := []struct {
		name     string
		column   string
		index    int
		expected int
	}{
		{"by name", "Buchungstext", 0, 60},
		{"by index", "", 2, 12},
		{"name wins over index", "Buchungstext", 2, 60},
		{"default", "Unknown", 7, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := config.WidthFor(tt.column, tt.index)
			if result != tt.expected {
				t.Errorf("WidthFor(%q, %d) = %d, expected %d", tt.column, tt.index, result, tt.expected)
			}
		})
	}
}

func TestLoadColumnWidths(t *testing.T) {
	content := `
columns:
  Buchungstext: 60
  Belegfeld 1: 36
default: 0
strategy: ellipsis
`
	path := filepath.Join(t.TempDir(), "widths.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	config, err := LoadColumnWidths(path)
	if err != nil {
		t.Fatalf("LoadColumnWidths() error = %v", err)
	}

	if config.ByName["Buchungstext"] != 60 {
		t.Errorf("Buchungstext width = %d, expected 60", config.ByName["Buchungstext"])
	}
	if config.Strategy != StrategyEllipsis {
		t.Errorf("strategy = %s, expected ellipsis", config.Strategy)
	}
}

func TestLoadColumnWidthsUnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widths.yaml")
	if err := os.WriteFile(path, []byte("strategy: zigzag\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadColumnWidths(path); err == nil {
		t.Errorf("LoadColumnWidths() with unknown strategy must fail")
	}
}
