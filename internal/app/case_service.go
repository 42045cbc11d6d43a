package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/casebook/internal/core/caserecord"
	"github.com/example/casebook/internal/ports/primary"
	"github.com/example/casebook/internal/ports/secondary"
)

// CaseServiceImpl implements the CaseService interface.
type CaseServiceImpl struct {
	caseRepo  secondary.CaseRepository
	logWriter secondary.LogWriter
	logger    *zap.Logger
}

// NewCaseService creates a new CaseService with injected dependencies.
// logWriter is optional - if nil, no audit logging is performed.
func NewCaseService(caseRepo secondary.CaseRepository, logWriter secondary.LogWriter, logger *zap.Logger) *CaseServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaseServiceImpl{
		caseRepo:  caseRepo,
		logWriter: logWriter,
		logger:    logger,
	}
}

// CreateCase creates a new case.
func (s *CaseServiceImpl) CreateCase(ctx context.Context, req primary.CreateCaseRequest) (*primary.CreateCaseResponse, error) {
	// 1. Guard check
	guardCtx := caserecord.CreateCaseContext{
		Title:        req.Title,
		DocketNumber: req.DocketNumber,
	}
	if result := caserecord.CanCreateCase(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 2. Generate ID
	nextID, err := s.caseRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate case ID: %w", err)
	}

	// 3. Persist
	record := &secondary.CaseRecord{
		ID:           nextID,
		DocketNumber: req.DocketNumber,
		Title:        req.Title,
		Court:        req.Court,
	}
	if err := s.caseRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error { return w.LogCreate(ctx, "case", nextID) })

	// 4. Fetch created case
	created, err := s.caseRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created case: %w", err)
	}

	s.logger.Debug("case created", zap.String("case", nextID), zap.String("docket", req.DocketNumber))

	return &primary.CreateCaseResponse{
		CaseID: created.ID,
		Case:   recordToCase(created, 0),
	}, nil
}

// GetCase retrieves a case by ID.
func (s *CaseServiceImpl) GetCase(ctx context.Context, caseID string) (*primary.Case, error) {
	record, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	count, err := s.caseRepo.CountStrategies(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return recordToCase(record, count), nil
}

// ListCases lists cases with optional filters.
func (s *CaseServiceImpl) ListCases(ctx context.Context, filters primary.CaseFilters) ([]*primary.Case, error) {
	records, err := s.caseRepo.List(ctx, secondary.CaseFilters{
		Court: filters.Court,
		Limit: filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	cases := make([]*primary.Case, len(records))
	for i, r := range records {
		count, err := s.caseRepo.CountStrategies(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		cases[i] = recordToCase(r, count)
	}
	return cases, nil
}

// UpdateCase updates a case's title, docket number and/or court.
func (s *CaseServiceImpl) UpdateCase(ctx context.Context, req primary.UpdateCaseRequest) error {
	existing, err := s.caseRepo.GetByID(ctx, req.CaseID)
	if err != nil {
		return err
	}

	// Old values are read before the write
	changes := []struct{ field, oldValue, newValue string }{
		{"title", existing.Title, req.Title},
		{"docket_number", existing.DocketNumber, req.DocketNumber},
		{"court", existing.Court, req.Court},
	}

	record := &secondary.CaseRecord{
		ID:           req.CaseID,
		DocketNumber: req.DocketNumber,
		Title:        req.Title,
		Court:        req.Court,
	}
	if err := s.caseRepo.Update(ctx, record); err != nil {
		return err
	}

	for _, c := range changes {
		if c.newValue == "" || c.newValue == c.oldValue {
			continue
		}
		writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error {
			return w.LogUpdate(ctx, "case", req.CaseID, c.field, c.oldValue, c.newValue)
		})
	}
	return nil
}

// DeleteCase deletes a case.
func (s *CaseServiceImpl) DeleteCase(ctx context.Context, req primary.DeleteCaseRequest) error {
	// 1. Count dependents
	strategyCount, err := s.caseRepo.CountStrategies(ctx, req.CaseID)
	if err != nil {
		return fmt.Errorf("failed to count strategies: %w", err)
	}
	scenarioCount, err := s.caseRepo.CountScenarios(ctx, req.CaseID)
	if err != nil {
		return fmt.Errorf("failed to count scenarios: %w", err)
	}

	// 2. Guard check
	deleteCtx := caserecord.DeleteCaseContext{
		CaseID:        req.CaseID,
		StrategyCount: strategyCount,
		ScenarioCount: scenarioCount,
		Force:         req.Force,
	}
	if result := caserecord.CanDeleteCase(deleteCtx); !result.Allowed {
		return result.Error()
	}

	// 3. Delete
	if err := s.caseRepo.Delete(ctx, req.CaseID); err != nil {
		return err
	}
	writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error { return w.LogDelete(ctx, "case", req.CaseID) })
	return nil
}

func recordToCase(r *secondary.CaseRecord, strategyCount int) *primary.Case {
	return &primary.Case{
		ID:            r.ID,
		DocketNumber:  r.DocketNumber,
		Title:         r.Title,
		Court:         r.Court,
		StrategyCount: strategyCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// Ensure CaseServiceImpl implements the interface
var _ primary.CaseService = (*CaseServiceImpl)(nil)
