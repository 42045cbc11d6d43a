package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/casebook/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository with SQLite.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new SQLite audit log repository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Create persists a new audit entry. A missing ID is filled with a random UUID.
func (r *AuditLogRepository) Create(ctx context.Context, entry *secondary.AuditRecord) error {
	return insertAudit(ctx, r.db, entry)
}

func insertAudit(ctx context.Context, db execer, entry *secondary.AuditRecord) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO audit_log (id, actor_id, action, entity_type, entity_id, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, nullString(entry.ActorID), entry.Action, entry.EntityType, entry.EntityID,
		nullString(entry.FieldName), nullString(entry.OldValue), nullString(entry.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

// List retrieves audit entries matching the given filters, newest first.
func (r *AuditLogRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	query := "SELECT id, actor_id, action, entity_type, entity_id, field_name, old_value, new_value, created_at FROM audit_log WHERE 1=1"
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}
	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}
	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			createdAt sql.NullString
		)

		record := &secondary.AuditRecord{}
		err := rows.Scan(&record.ID, &actorID, &record.Action, &record.EntityType, &record.EntityID, &fieldName, &oldValue, &newValue, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = createdAt.String
		entries = append(entries, record)
	}

	return entries, rows.Err()
}

var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
