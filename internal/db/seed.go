package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures.
// The data deliberately contains the kind of damage `casebook repair` exists
// for: one matter entered twice with different docket spacing, and a strategy
// whose case was deleted.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)
	base := time.Now().UnixMilli()

	cases := []struct {
		id, docket, title, court string
		age                      int64
	}{
		{"CASE-001", "715/2024", "Tenant deposit claim", "District Court, Civil Division I", 3000},
		{"CASE-002", "1185/2025", "Employment termination appeal", "Regional Court, Labour Division", 2000},
		{"CASE-003", " 715 / 2024 ", "Tenant deposit claim (re-entered)", "District Court, Civil Division I", 1000},
		{"CASE-004", "", "Pre-filing consultation", "", 500},
	}
	for _, c := range cases {
		if _, err := database.Exec(
			"INSERT INTO cases (id, docket_number, title, court, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			c.id, nullIfEmpty(c.docket), c.title, nullIfEmpty(c.court), now, base-c.age,
		); err != nil {
			return fmt.Errorf("seed cases: %w", err)
		}
	}

	strategies := []struct{ id, caseID, title, body string }{
		{"STRAT-001", "CASE-001", "Deposit return deadline", "Landlord missed the one-month statutory window for returning the deposit."},
		{"STRAT-002", "CASE-003", "Condition report", "Move-out protocol signed by both parties lists no damage."},
		{"STRAT-003", "CASE-003", "Set-off objection", "Claimed repair costs are not supported by invoices."},
		{"STRAT-004", "CASE-002", "Procedural defect", "Termination notice lacked the statutory reason."},
		{"STRAT-005", "CASE-099", "Witness list", "Case record was deleted before this strategy was moved."},
	}
	for _, s := range strategies {
		if _, err := database.Exec(
			"INSERT INTO strategies (id, case_id, title, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			s.id, s.caseID, s.title, s.body, now, base,
		); err != nil {
			return fmt.Errorf("seed strategies: %w", err)
		}
	}

	scenarios := []struct{ id, caseID, title, script string }{
		{"SCEN-001", "CASE-001", "Opening statement", "Your Honour, the plaintiff seeks return of the deposit in full."},
		{"SCEN-002", "CASE-003", "Reply to set-off", "The defendant has produced no invoice for any of the claimed repairs."},
		{"SCEN-003", "CASE-002", "Closing", "The notice fails the formal requirements and is therefore ineffective."},
	}
	for _, s := range scenarios {
		if _, err := database.Exec(
			"INSERT INTO scenarios (id, case_id, title, script, created_at) VALUES (?, ?, ?, ?, ?)",
			s.id, s.caseID, s.title, s.script, now,
		); err != nil {
			return fmt.Errorf("seed scenarios: %w", err)
		}
	}

	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
