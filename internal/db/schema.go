package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for the case ledger.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it
// via GetSchemaSQL() instead of declaring their own tables, so a repository
// that references a missing column fails with "no such column" at test time.
//
// strategies.case_id and scenarios.case_id deliberately carry no foreign key:
// imported ledgers may reference cases that do not exist, and those rows are
// surfaced by `casebook orphans` rather than rejected.
const SchemaSQL = `
-- Cases (legal matters, identified by docket number)
CREATE TABLE IF NOT EXISTS cases (
	id TEXT PRIMARY KEY,
	docket_number TEXT,
	title TEXT NOT NULL,
	court TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at INTEGER NOT NULL DEFAULT 0
);

-- Strategies (argument notes owned by one case)
CREATE TABLE IF NOT EXISTS strategies (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL,
	title TEXT NOT NULL,
	body TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_strategies_case ON strategies(case_id);

-- Scenario briefs (scripted courtroom phrasing for a case)
CREATE TABLE IF NOT EXISTS scenarios (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL,
	title TEXT NOT NULL,
	script TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scenarios_case ON scenarios(case_id);

-- Audit log (who changed what)
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	actor_id TEXT,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete', 'repair_move', 'repair_merge')),
	entity_type TEXT NOT NULL CHECK(entity_type IN ('case', 'strategy', 'scenario')),
	entity_id TEXT NOT NULL,
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
`

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_ledger_tables",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(SchemaSQL)
			return err
		},
	},
}

// InitSchema creates the schema_version table and runs any pending migrations.
func InitSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := conn.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
