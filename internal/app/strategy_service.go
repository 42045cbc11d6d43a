package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/casebook/internal/core/caserecord"
	"github.com/example/casebook/internal/ports/primary"
	"github.com/example/casebook/internal/ports/secondary"
)

// StrategyServiceImpl implements the StrategyService interface.
type StrategyServiceImpl struct {
	strategyRepo secondary.StrategyRepository
	logWriter    secondary.LogWriter
	logger       *zap.Logger
}

// NewStrategyService creates a new StrategyService with injected dependencies.
func NewStrategyService(strategyRepo secondary.StrategyRepository, logWriter secondary.LogWriter, logger *zap.Logger) *StrategyServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StrategyServiceImpl{
		strategyRepo: strategyRepo,
		logWriter:    logWriter,
		logger:       logger,
	}
}

// CreateStrategy creates a new strategy under a case.
func (s *StrategyServiceImpl) CreateStrategy(ctx context.Context, req primary.CreateStrategyRequest) (*primary.CreateStrategyResponse, error) {
	exists, err := s.strategyRepo.CaseExists(ctx, req.CaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate case: %w", err)
	}

	guardCtx := caserecord.CreateChildContext{
		CaseID:     req.CaseID,
		CaseExists: exists,
		Title:      req.Title,
	}
	if result := caserecord.CanCreateChild(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.strategyRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate strategy ID: %w", err)
	}

	record := &secondary.StrategyRecord{
		ID:     nextID,
		CaseID: req.CaseID,
		Title:  req.Title,
		Body:   req.Body,
	}
	if err := s.strategyRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create strategy: %w", err)
	}
	writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error { return w.LogCreate(ctx, "strategy", nextID) })

	created, err := s.strategyRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created strategy: %w", err)
	}

	return &primary.CreateStrategyResponse{
		StrategyID: created.ID,
		Strategy:   recordToStrategy(created),
	}, nil
}

// GetStrategy retrieves a strategy by ID.
func (s *StrategyServiceImpl) GetStrategy(ctx context.Context, strategyID string) (*primary.Strategy, error) {
	record, err := s.strategyRepo.GetByID(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	return recordToStrategy(record), nil
}

// ListStrategies lists strategies, optionally for a single case.
func (s *StrategyServiceImpl) ListStrategies(ctx context.Context, filters primary.StrategyFilters) ([]*primary.Strategy, error) {
	records, err := s.strategyRepo.List(ctx, secondary.StrategyFilters{CaseID: filters.CaseID})
	if err != nil {
		return nil, fmt.Errorf("failed to list strategies: %w", err)
	}

	strategies := make([]*primary.Strategy, len(records))
	for i, r := range records {
		strategies[i] = recordToStrategy(r)
	}
	return strategies, nil
}

// UpdateStrategy updates a strategy's title and/or body.
func (s *StrategyServiceImpl) UpdateStrategy(ctx context.Context, req primary.UpdateStrategyRequest) error {
	existing, err := s.strategyRepo.GetByID(ctx, req.StrategyID)
	if err != nil {
		return err
	}

	changes := []struct{ field, oldValue, newValue string }{
		{"title", existing.Title, req.Title},
		{"body", existing.Body, req.Body},
	}

	record := &secondary.StrategyRecord{
		ID:    req.StrategyID,
		Title: req.Title,
		Body:  req.Body,
	}
	if err := s.strategyRepo.Update(ctx, record); err != nil {
		return err
	}

	for _, c := range changes {
		if c.newValue == "" || c.newValue == c.oldValue {
			continue
		}
		writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error {
			return w.LogUpdate(ctx, "strategy", req.StrategyID, c.field, c.oldValue, c.newValue)
		})
	}
	return nil
}

// MoveStrategy re-points a strategy to another case.
func (s *StrategyServiceImpl) MoveStrategy(ctx context.Context, req primary.MoveStrategyRequest) error {
	current, err := s.strategyRepo.GetByID(ctx, req.StrategyID)
	if err != nil {
		return err
	}

	exists, err := s.strategyRepo.CaseExists(ctx, req.ToCaseID)
	if err != nil {
		return fmt.Errorf("failed to validate case: %w", err)
	}

	fromCaseID := current.CaseID
	moveCtx := caserecord.MoveStrategyContext{
		StrategyID:    req.StrategyID,
		CurrentCaseID: fromCaseID,
		TargetCaseID:  req.ToCaseID,
		TargetExists:  exists,
	}
	if result := caserecord.CanMoveStrategy(moveCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.strategyRepo.Move(ctx, req.StrategyID, req.ToCaseID); err != nil {
		return err
	}
	writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error {
		return w.LogUpdate(ctx, "strategy", req.StrategyID, "case_id", fromCaseID, req.ToCaseID)
	})

	s.logger.Debug("strategy moved",
		zap.String("strategy", req.StrategyID),
		zap.String("from", current.CaseID),
		zap.String("to", req.ToCaseID))
	return nil
}

// DeleteStrategy deletes a strategy.
func (s *StrategyServiceImpl) DeleteStrategy(ctx context.Context, strategyID string) error {
	if err := s.strategyRepo.Delete(ctx, strategyID); err != nil {
		return err
	}
	writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error { return w.LogDelete(ctx, "strategy", strategyID) })
	return nil
}

func recordToStrategy(r *secondary.StrategyRecord) *primary.Strategy {
	return &primary.Strategy{
		ID:        r.ID,
		CaseID:    r.CaseID,
		Title:     r.Title,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure StrategyServiceImpl implements the interface
var _ primary.StrategyService = (*StrategyServiceImpl)(nil)
