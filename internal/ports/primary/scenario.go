package primary

import "context"

// ScenarioService defines the primary port for scenario brief operations.
type ScenarioService interface {
	// CreateScenario attaches a new scenario brief to a case.
	CreateScenario(ctx context.Context, req CreateScenarioRequest) (*Scenario, error)

	// ListScenarios lists the scenario briefs of a case.
	ListScenarios(ctx context.Context, caseID string) ([]*Scenario, error)

	// DeleteScenario deletes a scenario brief.
	DeleteScenario(ctx context.Context, scenarioID string) error
}

// CreateScenarioRequest contains parameters for creating a scenario brief.
type CreateScenarioRequest struct {
	CaseID string
	Title  string
	Script string
}

// Scenario represents a scenario brief at the port boundary.
type Scenario struct {
	ID        string
	CaseID    string
	Title     string
	Script    string
	CreatedAt string
}
