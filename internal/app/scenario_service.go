package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/casebook/internal/core/caserecord"
	"github.com/example/casebook/internal/ports/primary"
	"github.com/example/casebook/internal/ports/secondary"
)

// ScenarioServiceImpl implements the ScenarioService interface.
type ScenarioServiceImpl struct {
	scenarioRepo secondary.ScenarioRepository
	logWriter    secondary.LogWriter
	logger       *zap.Logger
}

// NewScenarioService creates a new ScenarioService with injected dependencies.
func NewScenarioService(scenarioRepo secondary.ScenarioRepository, logWriter secondary.LogWriter, logger *zap.Logger) *ScenarioServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioServiceImpl{
		scenarioRepo: scenarioRepo,
		logWriter:    logWriter,
		logger:       logger,
	}
}

// CreateScenario attaches a new scenario brief to a case.
func (s *ScenarioServiceImpl) CreateScenario(ctx context.Context, req primary.CreateScenarioRequest) (*primary.Scenario, error) {
	exists, err := s.scenarioRepo.CaseExists(ctx, req.CaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate case: %w", err)
	}
	if result := caserecord.CanCreateChild(caserecord.CreateChildContext{
		CaseID:     req.CaseID,
		CaseExists: exists,
		Title:      req.Title,
	}); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.scenarioRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate scenario ID: %w", err)
	}

	record := &secondary.ScenarioRecord{
		ID:     nextID,
		CaseID: req.CaseID,
		Title:  req.Title,
		Script: req.Script,
	}
	if err := s.scenarioRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}
	writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error { return w.LogCreate(ctx, "scenario", nextID) })

	created, err := s.scenarioRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created scenario: %w", err)
	}
	return recordToScenario(created), nil
}

// ListScenarios lists the scenario briefs of a case.
func (s *ScenarioServiceImpl) ListScenarios(ctx context.Context, caseID string) ([]*primary.Scenario, error) {
	records, err := s.scenarioRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	scenarios := make([]*primary.Scenario, len(records))
	for i, r := range records {
		scenarios[i] = recordToScenario(r)
	}
	return scenarios, nil
}

// DeleteScenario deletes a scenario brief.
func (s *ScenarioServiceImpl) DeleteScenario(ctx context.Context, scenarioID string) error {
	if err := s.scenarioRepo.Delete(ctx, scenarioID); err != nil {
		return err
	}
	writeAudit(s.logger, s.logWriter, func(w secondary.LogWriter) error { return w.LogDelete(ctx, "scenario", scenarioID) })
	return nil
}

func recordToScenario(r *secondary.ScenarioRecord) *primary.Scenario {
	return &primary.Scenario{
		ID:        r.ID,
		CaseID:    r.CaseID,
		Title:     r.Title,
		Script:    r.Script,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure ScenarioServiceImpl implements the interface
var _ primary.ScenarioService = (*ScenarioServiceImpl)(nil)
