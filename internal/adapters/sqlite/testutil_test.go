// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files;
// use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/casebook/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection because every :memory: connection
// would otherwise see its own empty database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCase inserts a test case and returns its ID.
func seedCase(t *testing.T, db *sql.DB, id, docket string, updatedAt int64) string {
	t.Helper()
	if id == "" {
		id = "CASE-001"
	}
	var docketValue any
	if docket != "" {
		docketValue = docket
	}
	_, err := db.Exec(
		"INSERT INTO cases (id, docket_number, title, updated_at) VALUES (?, ?, ?, ?)",
		id, docketValue, "Case "+id, updatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed case: %v", err)
	}
	return id
}

// seedStrategy inserts a test strategy and returns its ID.
func seedStrategy(t *testing.T, db *sql.DB, id, caseID string) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO strategies (id, case_id, title, updated_at) VALUES (?, ?, ?, 1)",
		id, caseID, "Strategy "+id,
	)
	if err != nil {
		t.Fatalf("failed to seed strategy: %v", err)
	}
	return id
}

// seedScenario inserts a test scenario brief and returns its ID.
func seedScenario(t *testing.T, db *sql.DB, id, caseID string) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO scenarios (id, case_id, title) VALUES (?, ?, ?)",
		id, caseID, "Scenario "+id,
	)
	if err != nil {
		t.Fatalf("failed to seed scenario: %v", err)
	}
	return id
}

// caseIDOf returns the case_id a strategy currently points at.
func caseIDOf(t *testing.T, db *sql.DB, table, id string) string {
	t.Helper()
	var caseID string
	if err := db.QueryRow("SELECT case_id FROM "+table+" WHERE id = ?", id).Scan(&caseID); err != nil {
		t.Fatalf("failed to read case_id of %s: %v", id, err)
	}
	return caseID
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
