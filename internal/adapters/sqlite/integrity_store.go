package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/example/casebook/internal/ctxutil"
	"github.com/example/casebook/internal/ports/secondary"
)

// IntegrityStore implements secondary.IntegrityStore with SQLite.
// Connections are opened with _txlock=immediate, so every transaction here
// holds the write lock from BEGIN and concurrent repairs queue behind it.
type IntegrityStore struct {
	db *sql.DB
}

// NewIntegrityStore creates a new SQLite integrity store.
func NewIntegrityStore(db *sql.DB) *IntegrityStore {
	return &IntegrityStore{db: db}
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// LoadSnapshot reads every case, strategy and scenario.
func (s *IntegrityStore) LoadSnapshot(ctx context.Context) (*secondary.LedgerSnapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	return loadSnapshot(ctx, tx)
}

// ApplyRepair loads a snapshot, asks plan for a change set and writes it in one transaction.
func (s *IntegrityStore) ApplyRepair(ctx context.Context, plan secondary.RepairPlanner) (*secondary.RepairChangeSet, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	snapshot, err := loadSnapshot(ctx, tx)
	if err != nil {
		return nil, err
	}

	changes := plan(snapshot)
	if changes.Empty() {
		return changes, nil
	}

	actor := ctxutil.ActorFromContext(ctx)
	now := time.Now().UnixMilli()

	previousCase := make(map[string]string, len(snapshot.Strategies))
	for _, st := range snapshot.Strategies {
		previousCase[st.ID] = st.CaseID
	}

	// Strategies and scenarios move first; no case is deleted while anything still points at it
	for _, strategyID := range slices.Sorted(maps.Keys(changes.MovedStrategies)) {
		newCaseID := changes.MovedStrategies[strategyID]
		if _, err := tx.ExecContext(ctx,
			"UPDATE strategies SET case_id = ?, updated_at = ? WHERE id = ?",
			newCaseID, now, strategyID,
		); err != nil {
			return nil, fmt.Errorf("failed to move strategy %s: %w", strategyID, err)
		}
		if err := insertAudit(ctx, tx, &secondary.AuditRecord{
			ActorID:    actor,
			Action:     "repair_move",
			EntityType: "strategy",
			EntityID:   strategyID,
			FieldName:  "case_id",
			OldValue:   previousCase[strategyID],
			NewValue:   newCaseID,
		}); err != nil {
			return nil, err
		}
	}

	for _, removedID := range changes.RemovedCaseIDs {
		canonicalID, ok := changes.MergedInto[removedID]
		if !ok {
			return nil, fmt.Errorf("case %s is marked for removal without a canonical case", removedID)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE scenarios SET case_id = ? WHERE case_id = ?",
			canonicalID, removedID,
		); err != nil {
			return nil, fmt.Errorf("failed to re-point scenarios of case %s: %w", removedID, err)
		}
	}

	for _, removedID := range changes.RemovedCaseIDs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM cases WHERE id = ?", removedID); err != nil {
			return nil, fmt.Errorf("failed to delete case %s: %w", removedID, err)
		}
		if err := insertAudit(ctx, tx, &secondary.AuditRecord{
			ActorID:    actor,
			Action:     "repair_merge",
			EntityType: "case",
			EntityID:   removedID,
			FieldName:  "merged_into",
			NewValue:   changes.MergedInto[removedID],
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit repair: %w", err)
	}

	return changes, nil
}

// ImportSnapshot inserts the given records in one transaction. Records whose ID
// already exists are updated in place, keeping their insertion position.
func (s *IntegrityStore) ImportSnapshot(ctx context.Context, snapshot *secondary.LedgerSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()

	for _, c := range snapshot.Cases {
		if c.ID == "" {
			return fmt.Errorf("import: case without ID (title %q)", c.Title)
		}
		updatedAt := c.UpdatedAt
		if updatedAt == 0 {
			updatedAt = now
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cases (id, docket_number, title, court, updated_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET docket_number = excluded.docket_number, title = excluded.title,
			 court = excluded.court, updated_at = excluded.updated_at`,
			c.ID, nullString(c.DocketNumber), c.Title, nullString(c.Court), updatedAt,
		); err != nil {
			return fmt.Errorf("import case %s: %w", c.ID, err)
		}
	}

	for _, st := range snapshot.Strategies {
		if st.ID == "" || st.CaseID == "" {
			return fmt.Errorf("import: strategy %q needs both an ID and a case ID", st.ID)
		}
		updatedAt := st.UpdatedAt
		if updatedAt == 0 {
			updatedAt = now
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO strategies (id, case_id, title, body, updated_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET case_id = excluded.case_id, title = excluded.title,
			 body = excluded.body, updated_at = excluded.updated_at`,
			st.ID, st.CaseID, st.Title, nullString(st.Body), updatedAt,
		); err != nil {
			return fmt.Errorf("import strategy %s: %w", st.ID, err)
		}
	}

	for _, sc := range snapshot.Scenarios {
		if sc.ID == "" || sc.CaseID == "" {
			return fmt.Errorf("import: scenario %q needs both an ID and a case ID", sc.ID)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scenarios (id, case_id, title, script) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET case_id = excluded.case_id, title = excluded.title,
			 script = excluded.script`,
			sc.ID, sc.CaseID, sc.Title, nullString(sc.Script),
		); err != nil {
			return fmt.Errorf("import scenario %s: %w", sc.ID, err)
		}
	}

	return tx.Commit()
}

// loadSnapshot reads the three tables in insertion order, which is the
// order the repair treats as "input order" for tie-breaking.
func loadSnapshot(ctx context.Context, q queryer) (*secondary.LedgerSnapshot, error) {
	snapshot := &secondary.LedgerSnapshot{}

	rows, err := q.QueryContext(ctx, "SELECT "+caseColumns+" FROM cases ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}
	for rows.Next() {
		record, err := scanCase(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		snapshot.Cases = append(snapshot.Cases, record)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = q.QueryContext(ctx, "SELECT "+strategyColumns+" FROM strategies ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to load strategies: %w", err)
	}
	for rows.Next() {
		record, err := scanStrategy(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		snapshot.Strategies = append(snapshot.Strategies, record)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = q.QueryContext(ctx, "SELECT "+scenarioColumns+" FROM scenarios ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}
	for rows.Next() {
		record, err := scanScenario(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		snapshot.Scenarios = append(snapshot.Scenarios, record)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

var _ secondary.IntegrityStore = (*IntegrityStore)(nil)
