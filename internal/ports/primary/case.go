package primary

import "context"

// CaseService defines the primary port for case operations.
type CaseService interface {
	// CreateCase creates a new case.
	CreateCase(ctx context.Context, req CreateCaseRequest) (*CreateCaseResponse, error)

	// GetCase retrieves a case by ID.
	GetCase(ctx context.Context, caseID string) (*Case, error)

	// ListCases lists cases with optional filters.
	ListCases(ctx context.Context, filters CaseFilters) ([]*Case, error)

	// UpdateCase updates a case's title, docket number and/or court.
	UpdateCase(ctx context.Context, req UpdateCaseRequest) error

	// DeleteCase deletes a case. Cases that own strategies or scenarios need Force.
	DeleteCase(ctx context.Context, req DeleteCaseRequest) error
}

// CreateCaseRequest contains parameters for creating a case.
type CreateCaseRequest struct {
	DocketNumber string
	Title        string
	Court        string
}

// CreateCaseResponse contains the result of creating a case.
type CreateCaseResponse struct {
	CaseID string
	Case   *Case
}

// UpdateCaseRequest contains parameters for updating a case.
// Empty fields are left unchanged.
type UpdateCaseRequest struct {
	CaseID       string
	DocketNumber string
	Title        string
	Court        string
}

// DeleteCaseRequest contains parameters for deleting a case.
type DeleteCaseRequest struct {
	CaseID string
	Force  bool
}

// Case represents a case entity at the port boundary.
type Case struct {
	ID            string
	DocketNumber  string
	Title         string
	Court         string
	StrategyCount int
	CreatedAt     string
	UpdatedAt     int64
}

// CaseFilters contains filter options for listing cases.
type CaseFilters struct {
	Court string
	Limit int
}
