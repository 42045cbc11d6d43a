// Package wire provides dependency injection for the casebook application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/casebook/internal/adapters/cli"
	"github.com/example/casebook/internal/adapters/ledgerfile"
	"github.com/example/casebook/internal/adapters/sqlite"
	"github.com/example/casebook/internal/app"
	"github.com/example/casebook/internal/db"
	"github.com/example/casebook/internal/ports/primary"
)

var (
	caseService      primary.CaseService
	strategyService  primary.StrategyService
	scenarioService  primary.ScenarioService
	integrityService primary.IntegrityService
	logService       primary.LogService
	once             sync.Once

	logger = zap.NewNop()
)

// SetLogger sets the logger handed to services. Must be called before the
// first adapter is requested.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters share the one connection pool
	caseRepo := sqlite.NewCaseRepository(database)
	strategyRepo := sqlite.NewStrategyRepository(database)
	scenarioRepo := sqlite.NewScenarioRepository(database)
	auditRepo := sqlite.NewAuditLogRepository(database)
	integrityStore := sqlite.NewIntegrityStore(database)
	logWriter := sqlite.NewLogWriterAdapter(auditRepo)

	caseService = app.NewCaseService(caseRepo, logWriter, logger)
	strategyService = app.NewStrategyService(strategyRepo, logWriter, logger)
	scenarioService = app.NewScenarioService(scenarioRepo, logWriter, logger)
	integrityService = app.NewIntegrityService(integrityStore, ledgerfile.NewStore(), logger)
	logService = app.NewLogService(auditRepo)
}

// CaseAdapterWithOutput returns a new CaseAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func CaseAdapterWithOutput(out io.Writer) *cliadapter.CaseAdapter {
	once.Do(initServices)
	return cliadapter.NewCaseAdapter(caseService, out)
}

// StrategyAdapterWithOutput returns a new StrategyAdapter writing to the given output.
func StrategyAdapterWithOutput(out io.Writer) *cliadapter.StrategyAdapter {
	once.Do(initServices)
	return cliadapter.NewStrategyAdapter(strategyService, scenarioService, out)
}

// IntegrityAdapterWithOutput returns a new IntegrityAdapter writing to the given output.
func IntegrityAdapterWithOutput(out io.Writer) *cliadapter.IntegrityAdapter {
	once.Do(initServices)
	return cliadapter.NewIntegrityAdapter(integrityService, out)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	once.Do(initServices)
	return cliadapter.NewLogAdapter(logService, out)
}
