package primary

import "context"

// StrategyService defines the primary port for strategy operations.
type StrategyService interface {
	// CreateStrategy creates a new strategy under a case.
	CreateStrategy(ctx context.Context, req CreateStrategyRequest) (*CreateStrategyResponse, error)

	// GetStrategy retrieves a strategy by ID.
	GetStrategy(ctx context.Context, strategyID string) (*Strategy, error)

	// ListStrategies lists strategies, optionally for a single case.
	ListStrategies(ctx context.Context, filters StrategyFilters) ([]*Strategy, error)

	// UpdateStrategy updates a strategy's title and/or body.
	UpdateStrategy(ctx context.Context, req UpdateStrategyRequest) error

	// MoveStrategy re-points a strategy to another case.
	MoveStrategy(ctx context.Context, req MoveStrategyRequest) error

	// DeleteStrategy deletes a strategy.
	DeleteStrategy(ctx context.Context, strategyID string) error
}

// CreateStrategyRequest contains parameters for creating a strategy.
type CreateStrategyRequest struct {
	CaseID string
	Title  string
	Body   string
}

// CreateStrategyResponse contains the result of creating a strategy.
type CreateStrategyResponse struct {
	StrategyID string
	Strategy   *Strategy
}

// UpdateStrategyRequest contains parameters for updating a strategy.
type UpdateStrategyRequest struct {
	StrategyID string
	Title      string
	Body       string
}

// MoveStrategyRequest contains parameters for moving a strategy.
type MoveStrategyRequest struct {
	StrategyID string
	ToCaseID   string
}

// Strategy represents a strategy entity at the port boundary.
type Strategy struct {
	ID        string
	CaseID    string
	Title     string
	Body      string
	CreatedAt string
	UpdatedAt int64
}

// StrategyFilters contains filter options for listing strategies.
type StrategyFilters struct {
	CaseID string
}
