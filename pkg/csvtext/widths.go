package csvtext

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TruncateStrategy selects how over-long values are shortened.
type TruncateStrategy string

const (
	// StrategyTruncate hard-cuts the value at the configured width.
	StrategyTruncate TruncateStrategy = "truncate"
	// StrategyEllipsis cuts at width-3 and appends "...". When the width
	// leaves no room for the marker (width <= 3) it falls back to a hard
	// cut.
	StrategyEllipsis TruncateStrategy = "ellipsis"
)

// ColumnWidthConfig limits rendered column widths at serialization time.
// Stored field values are never mutated; truncation happens only while
// rendering.
type ColumnWidthConfig struct {
	// ByName maps column names to maximum widths.
	ByName map[string]int `yaml:"columns"`
	// ByIndex maps zero-based column indexes to maximum widths.
	ByIndex map[int]int `yaml:"indexes"`
	// Default applies to columns without a specific width. Zero means
	// unlimited.
	Default int `yaml:"default"`
	// Strategy selects the truncation behavior. Empty means truncate.
	Strategy TruncateStrategy `yaml:"strategy"`
}

// LoadColumnWidths reads a column-width configuration from a YAML file.
func LoadColumnWidths(path string) (*ColumnWidthConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read column width config: %w", err)
	}

	var config ColumnWidthConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.Strategy != "" && config.Strategy != StrategyTruncate && config.Strategy != StrategyEllipsis {
		return nil, fmt.Errorf("unknown truncation strategy: %s", config.Strategy)
	}

	return &config, nil
}

// WidthFor resolves the width for a column: name-specific, else
// index-specific, else the default. Zero means unlimited.
func (c *ColumnWidthConfig) WidthFor(name string, index int) int {
	if name != "" {
		if w, ok := c.ByName[name]; ok {
			return w
		}
	}
	if w, ok := c.ByIndex[index]; ok {
		return w
	}
	return c.Default
}

// Apply truncates a rendered value per the resolved column width.
func (c *ColumnWidthConfig) Apply(value, name string, index int) string {
	width := c.WidthFor(name, index)
	if width <= 0 {
		return value
	}
	return Truncate(value, width, c.Strategy)
}

// Truncate shortens a value to the given width using the given strategy.
func Truncate(value string, width int, strategy TruncateStrategy) string {
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if strategy == StrategyEllipsis && width > 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}
