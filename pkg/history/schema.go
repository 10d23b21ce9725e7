// Package history provides SQLite storage for conversion history and
// metadata, so re-running a conversion skips statements that were already
// exported.
package history

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Conversion history table
-- Tracks which MT940 statements have been converted to DATEV exports
CREATE TABLE IF NOT EXISTS conversions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    statement_ref TEXT NOT NULL,       -- :20: reference of the statement
    account TEXT NOT NULL,             -- :25: account identification
    statement_no TEXT NOT NULL,        -- :28C: statement number
    transactions INTEGER NOT NULL,     -- number of converted transactions
    output_file TEXT NOT NULL,         -- path to the DATEV export
    converted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(statement_ref, account, statement_no)
);

CREATE INDEX IF NOT EXISTS idx_conversions_account
    ON conversions(account);

-- Conversion metadata table
-- Stores key-value metadata about conversion runs
CREATE TABLE IF NOT EXISTS conversion_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
