package primary

import "context"

// LogService defines the primary port for audit log operations.
type LogService interface {
	// ListLogs retrieves audit entries matching the given filters.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)
}

// LogEntry represents an audit log entry at the port boundary.
type LogEntry struct {
	ID         string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete', 'repair_move', 'repair_merge'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	EntityType string
	EntityID   string
	Action     string
	Limit      int
}
