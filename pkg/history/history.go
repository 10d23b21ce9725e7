package history

import (
	"database/sql"
	"fmt"
	"time"
)

// ConversionRecord represents one converted statement.
type ConversionRecord struct {
	ID           int64
	StatementRef string
	Account      string
	StatementNo  string
	Transactions int
	OutputFile   string
	ConvertedAt  time.Time
}

// History manages conversion history operations.
type History struct {
	conn *Connection
}

// New creates a new History instance.
func New(conn *Connection) *History {
	return &History{conn: conn}
}

// RecordConversion records a conversion.
// If the record already exists (same statement reference, account and
// statement number), it updates it.
func (h *History) RecordConversion(record ConversionRecord) error {
	query := `
		INSERT INTO conversions (statement_ref, account, statement_no, transactions, output_file)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(statement_ref, account, statement_no) DO UPDATE SET
			transactions = excluded.transactions,
			output_file = excluded.output_file,
			converted_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query,
		record.StatementRef,
		record.Account,
		record.StatementNo,
		record.Transactions,
		record.OutputFile,
	)

	if err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}

	return nil
}

// IsConverted checks if a statement has been converted.
func (h *History) IsConverted(statementRef, account, statementNo string) (bool, error) {
	query := `
		SELECT COUNT(*) as count FROM conversions
		WHERE statement_ref = ? AND account = ? AND statement_no = ?
	`

	var count int
	err := h.conn.QueryRow(query, statementRef, account, statementNo).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if converted: %w", err)
	}

	return count > 0, nil
}

// GetConversions retrieves all conversion records for an account.
func (h *History) GetConversions(account string) ([]ConversionRecord, error) {
	query := `
		SELECT id, statement_ref, account, statement_no, transactions, output_file, converted_at
		FROM conversions
		WHERE account = ?
		ORDER BY converted_at DESC
	`

	rows, err := h.conn.Query(query, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversions: %w", err)
	}
	defer rows.Close()

	var records []ConversionRecord
	for rows.Next() {
		var record ConversionRecord
		if err := rows.Scan(
			&record.ID,
			&record.StatementRef,
			&record.Account,
			&record.StatementNo,
			&record.Transactions,
			&record.OutputFile,
			&record.ConvertedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion record: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Stats represents conversion statistics.
type Stats struct {
	TotalStatements   int
	TotalTransactions int
	LastConversion    sql.NullString
}

// GetStats retrieves conversion statistics.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*) FROM conversions`).Scan(&stats.TotalStatements)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT COALESCE(SUM(transactions), 0) FROM conversions`).Scan(&stats.TotalTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(converted_at) FROM conversions`).Scan(&stats.LastConversion)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last conversion time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (h *History) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM conversion_metadata WHERE key = ?`

	var value string
	err := h.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *History) SetMetadata(key, value string) error {
	query := `
		INSERT INTO conversion_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}
