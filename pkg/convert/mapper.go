// Package convert provides conversion from MT940 bank statements to DATEV
// booking documents.
package convert

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/steuerbar/fintext/pkg/mt940"
)

// AccountRule maps a purpose keyword to a DATEV contra account.
type AccountRule struct {
	Match       string `yaml:"match"`
	Account     string `yaml:"account"`
	Description string `yaml:"description"`
}

// MappingConfig represents the complete account mapping configuration.
type MappingConfig struct {
	// BankAccount is the DATEV account of the bank itself (the Konto
	// column), e.g. "1200" in SKR03.
	BankAccount string `yaml:"bank_account"`
	// DefaultExpense is the contra account for unmapped outgoing
	// transactions.
	DefaultExpense string `yaml:"default_expense"`
	// DefaultIncome is the contra account for unmapped incoming
	// transactions.
	DefaultIncome string `yaml:"default_income"`
	Rules         []AccountRule `yaml:"rules"`
}

// Mapper maps statement transactions to DATEV accounts.
type Mapper struct {
	config MappingConfig
}

// NewMapper creates a new Mapper from a YAML configuration file.
func NewMapper(configPath string) (*Mapper, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MappingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return NewMapperFromConfig(config)
}

// NewMapperFromConfig creates a Mapper from an in-memory configuration.
func NewMapperFromConfig(config MappingConfig) (*Mapper, error) {
	if config.BankAccount == "" {
		return nil, fmt.Errorf("mapping config is missing bank_account")
	}
	if config.DefaultExpense == "" || config.DefaultIncome == "" {
		return nil, fmt.Errorf("mapping config is missing default_expense or default_income")
	}
	return &Mapper{config: config}, nil
}

// BankAccount returns the DATEV account of the bank.
func (m *Mapper) BankAccount() string {
	return m.config.BankAccount
}

// ContraAccount resolves the contra account for a transaction. Rules are
// matched case-insensitively against the purpose and reference, first
// match wins; unmatched transactions fall back to the direction's default
// account.
func (m *Mapper) ContraAccount(txn *mt940.Transaction) string {
	haystack := strings.ToLower(txn.Purpose + " " + txn.Reference)
	for _, rule := range m.config.Rules {
		if rule.Match == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(rule.Match)) {
			return rule.Account
		}
	}

	switch txn.CreditDebit {
	case mt940.Credit, mt940.ReverseDebit:
		return m.config.DefaultIncome
	default:
		return m.config.DefaultExpense
	}
}

// HasRule checks if any rule matches the given text.
func (m *Mapper) HasRule(text string) bool {
	haystack := strings.ToLower(text)
	for _, rule := range m.config.Rules {
		if rule.Match != "" && strings.Contains(haystack, strings.ToLower(rule.Match)) {
			return true
		}
	}
	return false
}
