package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/casebook/internal/ports/primary"
)

// StrategyAdapter translates CLI operations to StrategyService and ScenarioService calls.
type StrategyAdapter struct {
	strategies primary.StrategyService
	scenarios  primary.ScenarioService
	out        io.Writer
}

// NewStrategyAdapter creates a new StrategyAdapter with the given services.
func NewStrategyAdapter(strategies primary.StrategyService, scenarios primary.ScenarioService, out io.Writer) *StrategyAdapter {
	return &StrategyAdapter{
		strategies: strategies,
		scenarios:  scenarios,
		out:        out,
	}
}

// Create creates a new strategy under a case.
func (a *StrategyAdapter) Create(ctx context.Context, caseID, title, body string) error {
	resp, err := a.strategies.CreateStrategy(ctx, primary.CreateStrategyRequest{
		CaseID: caseID,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created strategy %s under %s: %s\n", resp.StrategyID, resp.Strategy.CaseID, resp.Strategy.Title)
	return nil
}

// List lists strategies, optionally for one case.
func (a *StrategyAdapter) List(ctx context.Context, caseID string) error {
	strategies, err := a.strategies.ListStrategies(ctx, primary.StrategyFilters{CaseID: caseID})
	if err != nil {
		return fmt.Errorf("failed to list strategies: %w", err)
	}

	if len(strategies) == 0 {
		fmt.Fprintln(a.out, "No strategies found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-12s %s\n", "ID", "CASE", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range strategies {
		fmt.Fprintf(a.out, "%-12s %-12s %s\n", s.ID, s.CaseID, s.Title)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays a single strategy.
func (a *StrategyAdapter) Show(ctx context.Context, strategyID string) error {
	s, err := a.strategies.GetStrategy(ctx, strategyID)
	if err != nil {
		return fmt.Errorf("failed to get strategy: %w", err)
	}

	fmt.Fprintf(a.out, "\nStrategy: %s\n", s.ID)
	fmt.Fprintf(a.out, "Case:     %s\n", s.CaseID)
	fmt.Fprintf(a.out, "Title:    %s\n", s.Title)
	if s.Body != "" {
		fmt.Fprintf(a.out, "\n%s\n", s.Body)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Update updates a strategy's title and/or body.
func (a *StrategyAdapter) Update(ctx context.Context, strategyID, title, body string) error {
	if title == "" && body == "" {
		return fmt.Errorf("must specify at least --title or --body")
	}

	err := a.strategies.UpdateStrategy(ctx, primary.UpdateStrategyRequest{
		StrategyID: strategyID,
		Title:      title,
		Body:       body,
	})
	if err != nil {
		return fmt.Errorf("failed to update strategy: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Strategy %s updated\n", strategyID)
	return nil
}

// Move re-points a strategy to another case.
func (a *StrategyAdapter) Move(ctx context.Context, strategyID, toCaseID string) error {
	err := a.strategies.MoveStrategy(ctx, primary.MoveStrategyRequest{
		StrategyID: strategyID,
		ToCaseID:   toCaseID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Strategy %s moved to %s\n", strategyID, toCaseID)
	return nil
}

// Delete deletes a strategy.
func (a *StrategyAdapter) Delete(ctx context.Context, strategyID string) error {
	if err := a.strategies.DeleteStrategy(ctx, strategyID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Strategy %s deleted\n", strategyID)
	return nil
}

// CreateScenario attaches a scenario brief to a case.
func (a *StrategyAdapter) CreateScenario(ctx context.Context, caseID, title, script string) error {
	scenario, err := a.scenarios.CreateScenario(ctx, primary.CreateScenarioRequest{
		CaseID: caseID,
		Title:  title,
		Script: script,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created scenario %s under %s: %s\n", scenario.ID, scenario.CaseID, scenario.Title)
	return nil
}

// ListScenarios lists the scenario briefs of a case.
func (a *StrategyAdapter) ListScenarios(ctx context.Context, caseID string) error {
	scenarios, err := a.scenarios.ListScenarios(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to list scenarios: %w", err)
	}

	if len(scenarios) == 0 {
		fmt.Fprintf(a.out, "No scenarios found for %s\n", caseID)
		return nil
	}

	for _, s := range scenarios {
		fmt.Fprintf(a.out, "%s  %s\n", s.ID, s.Title)
		if s.Script != "" {
			fmt.Fprintf(a.out, "    %s\n", s.Script)
		}
	}
	return nil
}

// DeleteScenario deletes a scenario brief.
func (a *StrategyAdapter) DeleteScenario(ctx context.Context, scenarioID string) error {
	if err := a.scenarios.DeleteScenario(ctx, scenarioID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Scenario %s deleted\n", scenarioID)
	return nil
}
