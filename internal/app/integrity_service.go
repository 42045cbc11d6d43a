package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/casebook/internal/core/integrity"
	"github.com/example/casebook/internal/ports/primary"
	"github.com/example/casebook/internal/ports/secondary"
)

// IntegrityServiceImpl implements the IntegrityService interface.
// It is the only place the pure repair logic meets persistence.
type IntegrityServiceImpl struct {
	store  secondary.IntegrityStore
	files  secondary.LedgerFileStore
	logger *zap.Logger
}

// NewIntegrityService creates a new IntegrityService with injected dependencies.
func NewIntegrityService(store secondary.IntegrityStore, files secondary.LedgerFileStore, logger *zap.Logger) *IntegrityServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegrityServiceImpl{
		store:  store,
		files:  files,
		logger: logger,
	}
}

// Check computes what a repair would do without writing anything.
func (s *IntegrityServiceImpl) Check(ctx context.Context) (*primary.RepairReport, error) {
	snapshot, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	cases, strategies := toCore(snapshot)
	report := buildReport(cases, strategies)
	report.DryRun = true
	return report, nil
}

// Repair merges duplicate cases and writes the result back.
//
// The report is computed from the snapshot the store hands to the planner,
// which is read inside the write transaction, so it always describes exactly
// what was committed.
func (s *IntegrityServiceImpl) Repair(ctx context.Context) (*primary.RepairReport, error) {
	var report *primary.RepairReport

	plan := func(snapshot *secondary.LedgerSnapshot) *secondary.RepairChangeSet {
		cases, strategies := toCore(snapshot)
		report = buildReport(cases, strategies)
		result := integrity.RepairCasesAndStrategies(cases, strategies)
		return &secondary.RepairChangeSet{
			RemovedCaseIDs:  result.RemovedCaseIDs,
			MovedStrategies: result.MovedStrategies,
			MergedInto:      result.MergedInto,
		}
	}

	if _, err := s.store.ApplyRepair(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to apply repair: %w", err)
	}

	s.logger.Info("repair finished",
		zap.Int("groups", len(report.Groups)),
		zap.Int("removed_cases", len(report.RemovedCaseIDs)),
		zap.Int("moved_strategies", len(report.MovedStrategies)),
		zap.Int("orphans", len(report.Orphans)))

	return report, nil
}

// Orphans lists strategies whose case no longer exists.
func (s *IntegrityServiceImpl) Orphans(ctx context.Context) ([]*primary.Strategy, error) {
	snapshot, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	cases, strategies := toCore(snapshot)
	return orphanRecords(snapshot, integrity.DetectOrphanStrategies(cases, strategies)), nil
}

// Import loads a ledger file into persistence.
func (s *IntegrityServiceImpl) Import(ctx context.Context, req primary.ImportRequest) (*primary.ImportResponse, error) {
	snapshot, err := s.files.Read(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	if err := s.store.ImportSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to import ledger: %w", err)
	}

	s.logger.Info("ledger imported",
		zap.String("path", req.Path),
		zap.Int("cases", len(snapshot.Cases)),
		zap.Int("strategies", len(snapshot.Strategies)),
		zap.Int("scenarios", len(snapshot.Scenarios)))

	resp := &primary.ImportResponse{
		Cases:      len(snapshot.Cases),
		Strategies: len(snapshot.Strategies),
		Scenarios:  len(snapshot.Scenarios),
	}

	if req.Repair {
		report, err := s.Repair(ctx)
		if err != nil {
			return nil, err
		}
		resp.Repair = report
	}

	return resp, nil
}

// Export writes the whole ledger to a file.
func (s *IntegrityServiceImpl) Export(ctx context.Context, path string) error {
	snapshot, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	return s.files.Write(ctx, path, snapshot)
}

// Helper functions

func toCore(snapshot *secondary.LedgerSnapshot) ([]integrity.Case, []integrity.Strategy) {
	cases := make([]integrity.Case, len(snapshot.Cases))
	for i, c := range snapshot.Cases {
		cases[i] = integrity.Case{ID: c.ID, DocketNumber: c.DocketNumber, UpdatedAt: c.UpdatedAt}
	}
	strategies := make([]integrity.Strategy, len(snapshot.Strategies))
	for i, st := range snapshot.Strategies {
		strategies[i] = integrity.Strategy{ID: st.ID, CaseID: st.CaseID}
	}
	return cases, strategies
}

func buildReport(cases []integrity.Case, strategies []integrity.Strategy) *primary.RepairReport {
	result := integrity.RepairCasesAndStrategies(cases, strategies)

	report := &primary.RepairReport{
		RemovedCaseIDs:  result.RemovedCaseIDs,
		MovedStrategies: result.MovedStrategies,
		CasesBefore:     len(cases),
		CasesAfter:      len(result.Cases),
	}

	for _, g := range integrity.FindDuplicateGroups(cases, strategies) {
		group := primary.DuplicateGroup{
			DocketKey:   g.Key,
			CanonicalID: g.Canonical.ID,
		}
		for _, d := range g.Duplicates {
			group.RemovedIDs = append(group.RemovedIDs, d.ID)
		}
		report.Groups = append(report.Groups, group)
	}

	// Repair never creates or resolves orphans, so the pre-repair list is also the post-repair list
	for _, o := range integrity.DetectOrphanStrategies(result.Cases, result.Strategies) {
		report.Orphans = append(report.Orphans, &primary.Strategy{ID: o.ID, CaseID: o.CaseID})
	}

	return report
}

func orphanRecords(snapshot *secondary.LedgerSnapshot, orphans []integrity.Strategy) []*primary.Strategy {
	byID := make(map[string]*secondary.StrategyRecord, len(snapshot.Strategies))
	for _, st := range snapshot.Strategies {
		byID[st.ID] = st
	}

	out := make([]*primary.Strategy, 0, len(orphans))
	for _, o := range orphans {
		if record, ok := byID[o.ID]; ok {
			out = append(out, recordToStrategy(record))
			continue
		}
		out = append(out, &primary.Strategy{ID: o.ID, CaseID: o.CaseID})
	}
	return out
}

// Ensure IntegrityServiceImpl implements the interface
var _ primary.IntegrityService = (*IntegrityServiceImpl)(nil)
