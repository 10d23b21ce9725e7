// Package config provides configuration management for fintext.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Datev   DatevConfig
	Convert ConvertConfig
	Debug   bool
}

// DatevConfig represents the DATEV meta-header values used for exports.
type DatevConfig struct {
	ConsultantID    string
	ClientID        string
	SKR             string
	FiscalYearStart string
	AccountLength   string
}

// ConvertConfig represents conversion-related configuration.
type ConvertConfig struct {
	MappingPath      string
	ColumnWidthsPath string
	OutputDir        string
	HistoryDBPath    string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	outputDir := getEnvOrDefault("FINTEXT_OUTPUT_DIR", "./datev")

	config := &Config{
		Datev: DatevConfig{
			ConsultantID:    os.Getenv("DATEV_CONSULTANT_ID"),
			ClientID:        os.Getenv("DATEV_CLIENT_ID"),
			SKR:             getEnvOrDefault("DATEV_SKR", "03"),
			FiscalYearStart: os.Getenv("DATEV_FISCAL_YEAR_START"),
			AccountLength:   getEnvOrDefault("DATEV_ACCOUNT_LENGTH", "4"),
		},
		Convert: ConvertConfig{
			MappingPath:      getEnvOrDefault("FINTEXT_MAPPING_PATH", filepath.Join("config", "account-mapping.yaml")),
			ColumnWidthsPath: os.Getenv("FINTEXT_COLUMN_WIDTHS_PATH"),
			OutputDir:        outputDir,
			HistoryDBPath:    getEnvOrDefault("FINTEXT_HISTORY_DB_PATH", filepath.Join(outputDir, ".fintext", "history.db")),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "datev":
			switch path[1] {
			case "consultantId":
				value = c.Datev.ConsultantID
			case "clientId":
				value = c.Datev.ClientID
			case "skr":
				value = c.Datev.SKR
			case "fiscalYearStart":
				value = c.Datev.FiscalYearStart
			case "accountLength":
				value = c.Datev.AccountLength
			}
		case "convert":
			switch path[1] {
			case "mappingPath":
				value = c.Convert.MappingPath
			case "columnWidthsPath":
				value = c.Convert.ColumnWidthsPath
			case "outputDir":
				value = c.Convert.OutputDir
			case "historyDbPath":
				value = c.Convert.HistoryDBPath
			}
		}

		if value == "" {
			missing = append(missing, joinPath(path))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// joinPath joins a path slice into a dot-separated string.
func joinPath(path []string) string {
	result := ""
	for i, p := range path {
		if i > 0 {
			result += "."
		}
		result += p
	}
	return result
}
