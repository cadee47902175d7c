package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Budget ledger schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS budgets (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					project_name TEXT NOT NULL,
					fiscal_year INTEGER NOT NULL,
					total_amount INTEGER NOT NULL CHECK (total_amount > 0),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS budget_lines (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					budget_id INTEGER NOT NULL,
					category TEXT NOT NULL,
					allocated_amount INTEGER NOT NULL CHECK (allocated_amount > 0),
					spent_amount INTEGER NOT NULL DEFAULT 0 CHECK (spent_amount >= 0),
					rules_tag TEXT,
					CHECK (spent_amount <= allocated_amount),
					FOREIGN KEY (budget_id) REFERENCES budgets(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_budget_lines_budget ON budget_lines(budget_id)`,
				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					budget_line_id INTEGER NOT NULL,
					date DATE NOT NULL,
					vendor_name TEXT NOT NULL,
					amount INTEGER NOT NULL CHECK (amount > 0),
					payment_method TEXT NOT NULL,
					receipt_type TEXT NOT NULL,
					memo TEXT,
					is_valid INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (budget_line_id) REFERENCES budget_lines(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_transactions_line ON transactions(budget_line_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Policy rule catalog",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS policy_rules (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					category TEXT NOT NULL UNIQUE,
					rule_text TEXT NOT NULL,
					required_receipt_types TEXT,
					allowed_venue_types TEXT,
					notes TEXT
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Venue and event catalog",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS venues (
					id INTEGER PRIMARY KEY,
					name TEXT NOT NULL,
					address TEXT NOT NULL,
					phone TEXT,
					region TEXT,
					venue_type TEXT NOT NULL DEFAULT '기타',
					has_private_room INTEGER NOT NULL DEFAULT 0,
					noise_level TEXT NOT NULL DEFAULT 'mid',
					max_party_size INTEGER NOT NULL DEFAULT 4,
					tax_invoice_supported INTEGER NOT NULL DEFAULT 0,
					card_payment_supported INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_venues_region ON venues(region)`,
				`CREATE TABLE IF NOT EXISTS events (
					id INTEGER PRIMARY KEY,
					organization TEXT,
					event_name TEXT NOT NULL,
					host_organization TEXT,
					region TEXT,
					location TEXT,
					tech_category TEXT,
					hashtags TEXT,
					start_date TEXT,
					end_date TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_events_region ON events(region)`,
				`CREATE INDEX idx_events_location ON events(location)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
