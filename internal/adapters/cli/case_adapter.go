// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/casebook/internal/ports/primary"
)

// CaseAdapter is a thin adapter that translates CLI operations to CaseService calls.
// It depends only on the CaseService interface, enabling easy testing with mocks.
type CaseAdapter struct {
	service primary.CaseService
	out     io.Writer
}

// NewCaseAdapter creates a new CaseAdapter with the given service.
func NewCaseAdapter(service primary.CaseService, out io.Writer) *CaseAdapter {
	return &CaseAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new case.
func (a *CaseAdapter) Create(ctx context.Context, docket, title, court string) error {
	resp, err := a.service.CreateCase(ctx, primary.CreateCaseRequest{
		DocketNumber: docket,
		Title:        title,
		Court:        court,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created case %s: %s\n", resp.CaseID, resp.Case.Title)
	return nil
}

// List lists cases with an optional court filter.
func (a *CaseAdapter) List(ctx context.Context, court string, limit int) error {
	cases, err := a.service.ListCases(ctx, primary.CaseFilters{
		Court: court,
		Limit: limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list cases: %w", err)
	}

	if len(cases) == 0 {
		fmt.Fprintln(a.out, "No cases found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-16s %-10s %s\n", "ID", "DOCKET", "STRATEGIES", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, c := range cases {
		docket := c.DocketNumber
		if docket == "" {
			docket = "-"
		}
		fmt.Fprintf(a.out, "%-12s %-16s %-10d %s\n", c.ID, docket, c.StrategyCount, c.Title)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single case.
func (a *CaseAdapter) Show(ctx context.Context, caseID string) (*primary.Case, error) {
	c, err := a.service.GetCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	fmt.Fprintf(a.out, "\nCase:       %s\n", c.ID)
	fmt.Fprintf(a.out, "Title:      %s\n", c.Title)
	if c.DocketNumber != "" {
		fmt.Fprintf(a.out, "Docket:     %s\n", c.DocketNumber)
	}
	if c.Court != "" {
		fmt.Fprintf(a.out, "Court:      %s\n", c.Court)
	}
	fmt.Fprintf(a.out, "Strategies: %d\n", c.StrategyCount)
	fmt.Fprintf(a.out, "Created:    %s\n", c.CreatedAt)

	return c, nil
}

// Update updates a case's title, docket number and/or court.
func (a *CaseAdapter) Update(ctx context.Context, caseID, title, docket, court string) error {
	if title == "" && docket == "" && court == "" {
		return fmt.Errorf("must specify at least --title, --docket or --court")
	}

	err := a.service.UpdateCase(ctx, primary.UpdateCaseRequest{
		CaseID:       caseID,
		Title:        title,
		DocketNumber: docket,
		Court:        court,
	})
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Case %s updated\n", caseID)
	return nil
}

// Delete deletes a case.
func (a *CaseAdapter) Delete(ctx context.Context, caseID string, force bool) error {
	err := a.service.DeleteCase(ctx, primary.DeleteCaseRequest{
		CaseID: caseID,
		Force:  force,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Case %s deleted\n", caseID)
	return nil
}
