package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"

	"github.com/example/casebook/internal/ports/primary"
)

// IntegrityAdapter translates the repair, orphan, import and export commands
// to IntegrityService calls and renders their reports.
type IntegrityAdapter struct {
	service primary.IntegrityService
	out     io.Writer
}

// NewIntegrityAdapter creates a new IntegrityAdapter with the given service.
func NewIntegrityAdapter(service primary.IntegrityService, out io.Writer) *IntegrityAdapter {
	return &IntegrityAdapter{
		service: service,
		out:     out,
	}
}

// Repair runs a repair, or only reports what it would do when dryRun is set.
func (a *IntegrityAdapter) Repair(ctx context.Context, dryRun bool) error {
	var (
		report *primary.RepairReport
		err    error
	)
	if dryRun {
		report, err = a.service.Check(ctx)
	} else {
		report, err = a.service.Repair(ctx)
	}
	if err != nil {
		return err
	}

	a.printReport(report)
	return nil
}

// Orphans lists strategies whose case no longer exists.
func (a *IntegrityAdapter) Orphans(ctx context.Context) error {
	orphans, err := a.service.Orphans(ctx)
	if err != nil {
		return fmt.Errorf("failed to detect orphans: %w", err)
	}

	if len(orphans) == 0 {
		fmt.Fprintf(a.out, "%s No orphan strategies\n", color.New(color.FgGreen).Sprint("✓"))
		return nil
	}

	fmt.Fprintf(a.out, "%s %d orphan strategies\n", color.New(color.FgYellow).Sprint("!"), len(orphans))
	fmt.Fprintf(a.out, "\n%-12s %-12s %s\n", "ID", "MISSING CASE", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, o := range orphans {
		fmt.Fprintf(a.out, "%-12s %-12s %s\n", o.ID, o.CaseID, o.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Import loads a ledger file, optionally repairing right after.
func (a *IntegrityAdapter) Import(ctx context.Context, path string, repair bool) error {
	resp, err := a.service.Import(ctx, primary.ImportRequest{Path: path, Repair: repair})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Imported %d cases, %d strategies, %d scenarios from %s\n",
		resp.Cases, resp.Strategies, resp.Scenarios, path)
	if resp.Repair != nil {
		a.printReport(resp.Repair)
	}
	return nil
}

// Export writes the ledger to a file.
func (a *IntegrityAdapter) Export(ctx context.Context, path string) error {
	if err := a.service.Export(ctx, path); err != nil {
		return fmt.Errorf("failed to export ledger: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Exported ledger to %s\n", path)
	return nil
}

func (a *IntegrityAdapter) printReport(report *primary.RepairReport) {
	heading := "Repair"
	if report.DryRun {
		heading = "Repair (dry run, nothing written)"
	}
	fmt.Fprintf(a.out, "\n%s\n", heading)

	if len(report.Groups) == 0 {
		fmt.Fprintf(a.out, "%s No duplicate cases\n", color.New(color.FgGreen).Sprint("✓"))
	}

	for _, g := range report.Groups {
		fmt.Fprintf(a.out, "  docket %q\n", g.DocketKey)
		fmt.Fprintf(a.out, "    %s %s\n", color.New(color.FgGreen).Sprint("KEEP  "), g.CanonicalID)
		for _, id := range g.RemovedIDs {
			fmt.Fprintf(a.out, "    %s %s\n", color.New(color.FgRed).Sprint("REMOVE"), id)
		}
	}

	if len(report.MovedStrategies) > 0 {
		fmt.Fprintln(a.out, "  moved strategies:")
		for _, id := range slices.Sorted(maps.Keys(report.MovedStrategies)) {
			fmt.Fprintf(a.out, "    %s → %s\n", id, report.MovedStrategies[id])
		}
	}

	fmt.Fprintf(a.out, "  cases: %d → %d\n", report.CasesBefore, report.CasesAfter)

	if len(report.Orphans) > 0 {
		fmt.Fprintf(a.out, "%s %d orphan strategies left untouched (see `casebook orphans`)\n",
			color.New(color.FgYellow).Sprint("!"), len(report.Orphans))
	}
	fmt.Fprintln(a.out)
}
