package primary

import "context"

// IntegrityService defines the primary port for ledger integrity operations.
type IntegrityService interface {
	// Check computes what a repair would do without writing anything.
	Check(ctx context.Context) (*RepairReport, error)

	// Repair merges duplicate cases and writes the result back.
	Repair(ctx context.Context) (*RepairReport, error)

	// Orphans lists strategies whose case no longer exists.
	Orphans(ctx context.Context) ([]*Strategy, error)

	// Import loads a ledger file into persistence.
	Import(ctx context.Context, req ImportRequest) (*ImportResponse, error)

	// Export writes the whole ledger to a file.
	Export(ctx context.Context, path string) error
}

// RepairReport describes the outcome of a repair (or a dry run).
type RepairReport struct {
	DryRun          bool
	Groups          []DuplicateGroup
	RemovedCaseIDs  []string
	MovedStrategies map[string]string // strategy ID -> new case ID
	Orphans         []*Strategy       // orphaned before and after; repair leaves them alone
	CasesBefore     int
	CasesAfter      int
}

// DuplicateGroup is one set of cases sharing a normalized docket number.
type DuplicateGroup struct {
	DocketKey   string
	CanonicalID string
	RemovedIDs  []string
}

// ImportRequest contains parameters for importing a ledger file.
type ImportRequest struct {
	Path   string
	Repair bool // run a repair right after the import
}

// ImportResponse contains counts of imported records.
type ImportResponse struct {
	Cases      int
	Strategies int
	Scenarios  int
	Repair     *RepairReport // nil unless requested
}
