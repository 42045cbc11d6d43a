package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/casebook/internal/core/caserecord"
	"github.com/example/casebook/internal/ports/secondary"
)

// StrategyRepository implements secondary.StrategyRepository with SQLite.
type StrategyRepository struct {
	db *sql.DB
}

// NewStrategyRepository creates a new SQLite strategy repository.
func NewStrategyRepository(db *sql.DB) *StrategyRepository {
	return &StrategyRepository{db: db}
}

const strategyColumns = "id, case_id, title, body, created_at, updated_at"

// Create persists a new strategy.
func (r *StrategyRepository) Create(ctx context.Context, s *secondary.StrategyRecord) error {
	if s.ID == "" || s.CaseID == "" {
		return fmt.Errorf("strategy ID and case ID are required")
	}
	updatedAt := s.UpdatedAt
	if updatedAt == 0 {
		updatedAt = time.Now().UnixMilli()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO strategies (id, case_id, title, body, updated_at) VALUES (?, ?, ?, ?, ?)",
		s.ID, s.CaseID, s.Title, nullString(s.Body), updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create strategy: %w", err)
	}

	return nil
}

// GetByID retrieves a strategy by its ID.
func (r *StrategyRepository) GetByID(ctx context.Context, id string) (*secondary.StrategyRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+strategyColumns+" FROM strategies WHERE id = ?", id)

	record, err := scanStrategy(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("strategy %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get strategy: %w", err)
	}

	return record, nil
}

// List retrieves strategies matching the given filters.
func (r *StrategyRepository) List(ctx context.Context, filters secondary.StrategyFilters) ([]*secondary.StrategyRecord, error) {
	query := "SELECT " + strategyColumns + " FROM strategies WHERE 1=1"
	args := []any{}

	if filters.CaseID != "" {
		query += " AND case_id = ?"
		args = append(args, filters.CaseID)
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list strategies: %w", err)
	}
	defer rows.Close()

	var strategies []*secondary.StrategyRecord
	for rows.Next() {
		record, err := scanStrategy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		strategies = append(strategies, record)
	}

	return strategies, rows.Err()
}

// Update updates title and body.
func (r *StrategyRepository) Update(ctx context.Context, s *secondary.StrategyRecord) error {
	query := "UPDATE strategies SET updated_at = ?"
	args := []any{time.Now().UnixMilli()}

	if s.Title != "" {
		query += ", title = ?"
		args = append(args, s.Title)
	}
	if s.Body != "" {
		query += ", body = ?"
		args = append(args, s.Body)
	}

	query += " WHERE id = ?"
	args = append(args, s.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update strategy: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("strategy %s not found", s.ID)
	}

	return nil
}

// Move re-points a strategy to another case.
func (r *StrategyRepository) Move(ctx context.Context, id, caseID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE strategies SET case_id = ?, updated_at = ? WHERE id = ?",
		caseID, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to move strategy: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("strategy %s not found", id)
	}

	return nil
}

// Delete removes a strategy from persistence.
func (r *StrategyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM strategies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete strategy: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("strategy %s not found", id)
	}

	return nil
}

// GetNextID returns the next available strategy ID.
func (r *StrategyRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "strategies", caserecord.StrategyPrefix)
}

// CaseExists checks if a case exists.
func (r *StrategyRepository) CaseExists(ctx context.Context, caseID string) (bool, error) {
	return caseExists(ctx, r.db, caseID)
}

func caseExists(ctx context.Context, db *sql.DB, caseID string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cases WHERE id = ?", caseID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check case existence: %w", err)
	}
	return count > 0, nil
}

func scanStrategy(row rowScanner) (*secondary.StrategyRecord, error) {
	var (
		body      sql.NullString
		createdAt sql.NullString
	)

	record := &secondary.StrategyRecord{}
	if err := row.Scan(&record.ID, &record.CaseID, &record.Title, &body, &createdAt, &record.UpdatedAt); err != nil {
		return nil, err
	}

	record.Body = body.String
	record.CreatedAt = createdAt.String
	return record, nil
}

var _ secondary.StrategyRepository = (*StrategyRepository)(nil)
