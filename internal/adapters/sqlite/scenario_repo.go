package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/casebook/internal/core/caserecord"
	"github.com/example/casebook/internal/ports/secondary"
)

// ScenarioRepository implements secondary.ScenarioRepository with SQLite.
type ScenarioRepository struct {
	db *sql.DB
}

// NewScenarioRepository creates a new SQLite scenario repository.
func NewScenarioRepository(db *sql.DB) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

const scenarioColumns = "id, case_id, title, script, created_at"

// Create persists a new scenario brief.
func (r *ScenarioRepository) Create(ctx context.Context, s *secondary.ScenarioRecord) error {
	if s.ID == "" || s.CaseID == "" {
		return fmt.Errorf("scenario ID and case ID are required")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO scenarios (id, case_id, title, script) VALUES (?, ?, ?, ?)",
		s.ID, s.CaseID, s.Title, nullString(s.Script),
	)
	if err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}

	return nil
}

// GetByID retrieves a scenario brief by its ID.
func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*secondary.ScenarioRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+scenarioColumns+" FROM scenarios WHERE id = ?", id)

	record, err := scanScenario(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scenario %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}

	return record, nil
}

// ListByCase retrieves the scenario briefs of a case.
func (r *ScenarioRepository) ListByCase(ctx context.Context, caseID string) ([]*secondary.ScenarioRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+scenarioColumns+" FROM scenarios WHERE case_id = ? ORDER BY id",
		caseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*secondary.ScenarioRecord
	for rows.Next() {
		record, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, record)
	}

	return scenarios, rows.Err()
}

// Delete removes a scenario brief.
func (r *ScenarioRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("scenario %s not found", id)
	}

	return nil
}

// GetNextID returns the next available scenario ID.
func (r *ScenarioRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "scenarios", caserecord.ScenarioPrefix)
}

// CaseExists checks if a case exists.
func (r *ScenarioRepository) CaseExists(ctx context.Context, caseID string) (bool, error) {
	return caseExists(ctx, r.db, caseID)
}

func scanScenario(row rowScanner) (*secondary.ScenarioRecord, error) {
	var (
		script    sql.NullString
		createdAt sql.NullString
	)

	record := &secondary.ScenarioRecord{}
	if err := row.Scan(&record.ID, &record.CaseID, &record.Title, &script, &createdAt); err != nil {
		return nil, err
	}

	record.Script = script.String
	record.CreatedAt = createdAt.String
	return record, nil
}

var _ secondary.ScenarioRepository = (*ScenarioRepository)(nil)
