// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// CaseRepository defines the secondary port for case persistence.
type CaseRepository interface {
	// Create persists a new case.
	Create(ctx context.Context, c *CaseRecord) error

	// GetByID retrieves a case by its ID.
	GetByID(ctx context.Context, id string) (*CaseRecord, error)

	// List retrieves cases matching the given filters.
	List(ctx context.Context, filters CaseFilters) ([]*CaseRecord, error)

	// Update updates title, docket number and court, and bumps UpdatedAt.
	Update(ctx context.Context, c *CaseRecord) error

	// Delete removes a case together with its strategies and scenarios.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available case ID.
	GetNextID(ctx context.Context) (string, error)

	// CountStrategies returns the number of strategies referencing a case.
	CountStrategies(ctx context.Context, caseID string) (int, error)

	// CountScenarios returns the number of scenario briefs referencing a case.
	CountScenarios(ctx context.Context, caseID string) (int, error)
}

// CaseRecord represents a case as stored in persistence.
type CaseRecord struct {
	ID           string
	DocketNumber string // Free text as entered; empty string means null
	Title        string
	Court        string // Empty string means null
	CreatedAt    string
	UpdatedAt    int64 // Unix millis; tie-breaker for duplicate resolution
}

// CaseFilters contains filter options for querying cases.
type CaseFilters struct {
	Court string
	Limit int
}

// StrategyRepository defines the secondary port for strategy persistence.
type StrategyRepository interface {
	// Create persists a new strategy.
	Create(ctx context.Context, s *StrategyRecord) error

	// GetByID retrieves a strategy by its ID.
	GetByID(ctx context.Context, id string) (*StrategyRecord, error)

	// List retrieves strategies matching the given filters.
	List(ctx context.Context, filters StrategyFilters) ([]*StrategyRecord, error)

	// Update updates title and body.
	Update(ctx context.Context, s *StrategyRecord) error

	// Move re-points a strategy to another case.
	Move(ctx context.Context, id, caseID string) error

	// Delete removes a strategy from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available strategy ID.
	GetNextID(ctx context.Context) (string, error)

	// CaseExists checks if a case exists (for validation).
	CaseExists(ctx context.Context, caseID string) (bool, error)
}

// StrategyRecord represents a strategy as stored in persistence.
type StrategyRecord struct {
	ID        string
	CaseID    string
	Title     string
	Body      string // Empty string means null
	CreatedAt string
	UpdatedAt int64
}

// StrategyFilters contains filter options for querying strategies.
type StrategyFilters struct {
	CaseID string
}

// ScenarioRepository defines the secondary port for scenario brief persistence.
type ScenarioRepository interface {
	// Create persists a new scenario brief.
	Create(ctx context.Context, s *ScenarioRecord) error

	// GetByID retrieves a scenario brief by its ID.
	GetByID(ctx context.Context, id string) (*ScenarioRecord, error)

	// ListByCase retrieves the scenario briefs of a case.
	ListByCase(ctx context.Context, caseID string) ([]*ScenarioRecord, error)

	// Delete removes a scenario brief.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available scenario ID.
	GetNextID(ctx context.Context) (string, error)

	// CaseExists checks if a case exists (for validation).
	CaseExists(ctx context.Context, caseID string) (bool, error)
}

// ScenarioRecord represents a scenario brief as stored in persistence.
type ScenarioRecord struct {
	ID        string
	CaseID    string
	Title     string
	Script    string // Empty string means null
	CreatedAt string
}

// LedgerSnapshot is a consistent read of every case, strategy and scenario.
type LedgerSnapshot struct {
	Cases      []*CaseRecord
	Strategies []*StrategyRecord
	Scenarios  []*ScenarioRecord
}

// RepairChangeSet describes what an integrity repair writes back.
type RepairChangeSet struct {
	RemovedCaseIDs  []string
	MovedStrategies map[string]string // strategy ID -> new case ID
	MergedInto      map[string]string // removed case ID -> canonical case ID
}

// Empty reports whether the change set has nothing to write.
func (c *RepairChangeSet) Empty() bool {
	return c == nil || (len(c.RemovedCaseIDs) == 0 && len(c.MovedStrategies) == 0)
}

// RepairPlanner computes a change set from a snapshot. It must not do I/O.
type RepairPlanner func(snapshot *LedgerSnapshot) *RepairChangeSet

// IntegrityStore defines the secondary port for whole-ledger reads and writes.
// Implementations serialize writers: the snapshot handed to a planner stays
// consistent until its change set is committed.
type IntegrityStore interface {
	// LoadSnapshot reads every case, strategy and scenario.
	LoadSnapshot(ctx context.Context) (*LedgerSnapshot, error)

	// ApplyRepair loads a snapshot, asks plan for a change set and writes it,
	// all in one transaction. Strategies are re-pointed and scenario briefs
	// follow MergedInto before any case is deleted. Returns the applied set.
	ApplyRepair(ctx context.Context, plan RepairPlanner) (*RepairChangeSet, error)

	// ImportSnapshot inserts or replaces the given records in one transaction.
	// Parent references are not checked; orphans are reported, not rejected.
	ImportSnapshot(ctx context.Context, snapshot *LedgerSnapshot) error
}

// AuditLogRepository defines the secondary port for the audit trail.
type AuditLogRepository interface {
	// Create persists a new audit entry.
	Create(ctx context.Context, entry *AuditRecord) error

	// List retrieves audit entries matching the given filters, newest first.
	List(ctx context.Context, filters AuditFilters) ([]*AuditRecord, error)
}

// AuditRecord represents one audit log entry as stored in persistence.
type AuditRecord struct {
	ID         string
	ActorID    string
	Action     string // create, update, delete, repair_move, repair_merge
	EntityType string // case, strategy, scenario
	EntityID   string
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// AuditFilters contains filter options for querying audit entries.
type AuditFilters struct {
	EntityType string
	EntityID   string
	Action     string
	Limit      int
}
