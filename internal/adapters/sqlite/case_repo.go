// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/casebook/internal/core/caserecord"
	"github.com/example/casebook/internal/ports/secondary"
)

// CaseRepository implements secondary.CaseRepository with SQLite.
type CaseRepository struct {
	db *sql.DB
}

// NewCaseRepository creates a new SQLite case repository.
func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

const caseColumns = "id, docket_number, title, court, created_at, updated_at"

// Create persists a new case.
func (r *CaseRepository) Create(ctx context.Context, c *secondary.CaseRecord) error {
	if c.ID == "" {
		return fmt.Errorf("case ID is required")
	}
	updatedAt := c.UpdatedAt
	if updatedAt == 0 {
		updatedAt = time.Now().UnixMilli()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cases (id, docket_number, title, court, updated_at) VALUES (?, ?, ?, ?, ?)",
		c.ID, nullString(c.DocketNumber), c.Title, nullString(c.Court), updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}

	return nil
}

// GetByID retrieves a case by its ID.
func (r *CaseRepository) GetByID(ctx context.Context, id string) (*secondary.CaseRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+caseColumns+" FROM cases WHERE id = ?", id)

	record, err := scanCase(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("case %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	return record, nil
}

// List retrieves cases matching the given filters.
func (r *CaseRepository) List(ctx context.Context, filters secondary.CaseFilters) ([]*secondary.CaseRecord, error) {
	query := "SELECT " + caseColumns + " FROM cases WHERE 1=1"
	args := []any{}

	if filters.Court != "" {
		query += " AND court = ?"
		args = append(args, filters.Court)
	}

	query += " ORDER BY id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []*secondary.CaseRecord
	for rows.Next() {
		record, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, record)
	}

	return cases, rows.Err()
}

// Update updates title, docket number and court, and bumps UpdatedAt.
func (r *CaseRepository) Update(ctx context.Context, c *secondary.CaseRecord) error {
	query := "UPDATE cases SET updated_at = ?"
	args := []any{time.Now().UnixMilli()}

	if c.Title != "" {
		query += ", title = ?"
		args = append(args, c.Title)
	}
	if c.DocketNumber != "" {
		query += ", docket_number = ?"
		args = append(args, c.DocketNumber)
	}
	if c.Court != "" {
		query += ", court = ?"
		args = append(args, c.Court)
	}

	query += " WHERE id = ?"
	args = append(args, c.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("case %s not found", c.ID)
	}

	return nil
}

// Delete removes a case together with its strategies and scenarios.
func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM strategies WHERE case_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete strategies of case %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM scenarios WHERE case_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete scenarios of case %s: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM cases WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("case %s not found", id)
	}

	return tx.Commit()
}

// GetNextID returns the next available case ID.
func (r *CaseRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "cases", caserecord.CasePrefix)
}

// CountStrategies returns the number of strategies referencing a case.
func (r *CaseRepository) CountStrategies(ctx context.Context, caseID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM strategies WHERE case_id = ?", caseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count strategies: %w", err)
	}
	return count, nil
}

// CountScenarios returns the number of scenario briefs referencing a case.
func (r *CaseRepository) CountScenarios(ctx context.Context, caseID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scenarios WHERE case_id = ?", caseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count scenarios: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*secondary.CaseRecord, error) {
	var (
		docket    sql.NullString
		court     sql.NullString
		createdAt sql.NullString
	)

	record := &secondary.CaseRecord{}
	if err := row.Scan(&record.ID, &docket, &record.Title, &court, &createdAt, &record.UpdatedAt); err != nil {
		return nil, err
	}

	record.DocketNumber = docket.String
	record.Court = court.String
	record.CreatedAt = createdAt.String
	return record, nil
}

var _ secondary.CaseRepository = (*CaseRepository)(nil)
