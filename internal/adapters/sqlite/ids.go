package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/casebook/internal/core/caserecord"
)

// nextID returns PREFIX-(max+1) for table. IDs in other formats (imported
// ledgers) are ignored when finding the max.
func nextID(ctx context.Context, db *sql.DB, table, prefix string) (string, error) {
	var maxID int
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM %s WHERE id LIKE ?",
		len(prefix)+2, table,
	)
	if err := db.QueryRowContext(ctx, query, prefix+"-%").Scan(&maxID); err != nil {
		return "", fmt.Errorf("failed to get next %s ID: %w", table, err)
	}
	return caserecord.GenerateID(prefix, maxID), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
