package app

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/example/casebook/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockCaseRepository implements secondary.CaseRepository for testing.
type mockCaseRepository struct {
	cases          map[string]*secondary.CaseRecord
	strategyCounts map[string]int
	scenarioCounts map[string]int
	nextID         string
	createErr      error
	updateErr      error
	deleteErr      error
	listErr        error
	deleted        []string
	sharedRecords  bool // GetByID hands out the stored pointer, as a caching repo might
}

func newMockCaseRepository() *mockCaseRepository {
	return &mockCaseRepository{
		cases:          make(map[string]*secondary.CaseRecord),
		strategyCounts: make(map[string]int),
		scenarioCounts: make(map[string]int),
		nextID:         "CASE-001",
	}
}

func (m *mockCaseRepository) Create(ctx context.Context, c *secondary.CaseRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.cases[c.ID] = c
	return nil
}

func (m *mockCaseRepository) GetByID(ctx context.Context, id string) (*secondary.CaseRecord, error) {
	if c, ok := m.cases[id]; ok {
		if m.sharedRecords {
			return c, nil
		}
		cp := *c
		return &cp, nil
	}
	return nil, fmt.Errorf("case %s not found", id)
}

func (m *mockCaseRepository) List(ctx context.Context, filters secondary.CaseFilters) ([]*secondary.CaseRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.CaseRecord
	for _, id := range slices.Sorted(maps.Keys(m.cases)) {
		c := m.cases[id]
		if filters.Court != "" && c.Court != filters.Court {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCaseRepository) Update(ctx context.Context, c *secondary.CaseRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.cases[c.ID]
	if !ok {
		return fmt.Errorf("case %s not found", c.ID)
	}
	if c.Title != "" {
		existing.Title = c.Title
	}
	if c.DocketNumber != "" {
		existing.DocketNumber = c.DocketNumber
	}
	if c.Court != "" {
		existing.Court = c.Court
	}
	return nil
}

func (m *mockCaseRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.cases[id]; !ok {
		return fmt.Errorf("case %s not found", id)
	}
	delete(m.cases, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCaseRepository) GetNextID(ctx context.Context) (string, error) {
	return m.nextID, nil
}

func (m *mockCaseRepository) CountStrategies(ctx context.Context, caseID string) (int, error) {
	return m.strategyCounts[caseID], nil
}

func (m *mockCaseRepository) CountScenarios(ctx context.Context, caseID string) (int, error) {
	return m.scenarioCounts[caseID], nil
}

// mockStrategyRepository implements secondary.StrategyRepository for testing.
type mockStrategyRepository struct {
	strategies map[string]*secondary.StrategyRecord
	caseIDs    map[string]bool
	nextID     string
	createErr  error
	caseErr    error
	// GetByID hands out the stored pointer, as a caching repo might
	sharedRecords bool
}

func newMockStrategyRepository(caseIDs ...string) *mockStrategyRepository {
	m := &mockStrategyRepository{
		strategies: make(map[string]*secondary.StrategyRecord),
		caseIDs:    make(map[string]bool),
		nextID:     "STRAT-001",
	}
	for _, id := range caseIDs {
		m.caseIDs[id] = true
	}
	return m
}

func (m *mockStrategyRepository) Create(ctx context.Context, s *secondary.StrategyRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.strategies[s.ID] = s
	return nil
}

func (m *mockStrategyRepository) GetByID(ctx context.Context, id string) (*secondary.StrategyRecord, error) {
	if s, ok := m.strategies[id]; ok {
		if m.sharedRecords {
			return s, nil
		}
		cp := *s
		return &cp, nil
	}
	return nil, fmt.Errorf("strategy %s not found", id)
}

func (m *mockStrategyRepository) List(ctx context.Context, filters secondary.StrategyFilters) ([]*secondary.StrategyRecord, error) {
	var result []*secondary.StrategyRecord
	for _, id := range slices.Sorted(maps.Keys(m.strategies)) {
		s := m.strategies[id]
		if filters.CaseID != "" && s.CaseID != filters.CaseID {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockStrategyRepository) Update(ctx context.Context, s *secondary.StrategyRecord) error {
	existing, ok := m.strategies[s.ID]
	if !ok {
		return fmt.Errorf("strategy %s not found", s.ID)
	}
	if s.Title != "" {
		existing.Title = s.Title
	}
	if s.Body != "" {
		existing.Body = s.Body
	}
	return nil
}

func (m *mockStrategyRepository) Move(ctx context.Context, id, caseID string) error {
	existing, ok := m.strategies[id]
	if !ok {
		return fmt.Errorf("strategy %s not found", id)
	}
	existing.CaseID = caseID
	return nil
}

func (m *mockStrategyRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.strategies[id]; !ok {
		return fmt.Errorf("strategy %s not found", id)
	}
	delete(m.strategies, id)
	return nil
}

func (m *mockStrategyRepository) GetNextID(ctx context.Context) (string, error) {
	return m.nextID, nil
}

func (m *mockStrategyRepository) CaseExists(ctx context.Context, caseID string) (bool, error) {
	if m.caseErr != nil {
		return false, m.caseErr
	}
	return m.caseIDs[caseID], nil
}

// mockScenarioRepository implements secondary.ScenarioRepository for testing.
type mockScenarioRepository struct {
	scenarios map[string]*secondary.ScenarioRecord
	caseIDs   map[string]bool
}

func newMockScenarioRepository(caseIDs ...string) *mockScenarioRepository {
	m := &mockScenarioRepository{
		scenarios: make(map[string]*secondary.ScenarioRecord),
		caseIDs:   make(map[string]bool),
	}
	for _, id := range caseIDs {
		m.caseIDs[id] = true
	}
	return m
}

func (m *mockScenarioRepository) Create(ctx context.Context, s *secondary.ScenarioRecord) error {
	m.scenarios[s.ID] = s
	return nil
}

func (m *mockScenarioRepository) GetByID(ctx context.Context, id string) (*secondary.ScenarioRecord, error) {
	if s, ok := m.scenarios[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("scenario %s not found", id)
}

func (m *mockScenarioRepository) ListByCase(ctx context.Context, caseID string) ([]*secondary.ScenarioRecord, error) {
	var result []*secondary.ScenarioRecord
	for _, id := range slices.Sorted(maps.Keys(m.scenarios)) {
		if s := m.scenarios[id]; s.CaseID == caseID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockScenarioRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.scenarios[id]; !ok {
		return fmt.Errorf("scenario %s not found", id)
	}
	delete(m.scenarios, id)
	return nil
}

func (m *mockScenarioRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("SCEN-%03d", len(m.scenarios)+1), nil
}

func (m *mockScenarioRepository) CaseExists(ctx context.Context, caseID string) (bool, error) {
	return m.caseIDs[caseID], nil
}

// mockLogWriter implements secondary.LogWriter and records what was written.
type mockLogWriter struct {
	entries []string
	err     error
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, "create "+entityType+" "+entityID)
	return m.err
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, fmt.Sprintf("update %s %s %s %s->%s", entityType, entityID, fieldName, oldValue, newValue))
	return m.err
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, "delete "+entityType+" "+entityID)
	return m.err
}

// mockIntegrityStore implements secondary.IntegrityStore over an in-memory snapshot.
type mockIntegrityStore struct {
	snapshot   *secondary.LedgerSnapshot
	loadErr    error
	applyErr   error
	importErr  error
	applyCalls int
	applied    *secondary.RepairChangeSet
	imported   *secondary.LedgerSnapshot
}

func newMockIntegrityStore(snapshot *secondary.LedgerSnapshot) *mockIntegrityStore {
	return &mockIntegrityStore{snapshot: snapshot}
}

func (m *mockIntegrityStore) LoadSnapshot(ctx context.Context) (*secondary.LedgerSnapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.snapshot, nil
}

func (m *mockIntegrityStore) ApplyRepair(ctx context.Context, plan secondary.RepairPlanner) (*secondary.RepairChangeSet, error) {
	m.applyCalls++
	if m.applyErr != nil {
		return nil, m.applyErr
	}

	changes := plan(m.snapshot)
	if changes.Empty() {
		return changes, nil
	}
	m.applied = changes

	// Write the change set back the way the SQLite store does
	removed := make(map[string]bool)
	for _, id := range changes.RemovedCaseIDs {
		removed[id] = true
	}
	var cases []*secondary.CaseRecord
	for _, c := range m.snapshot.Cases {
		if !removed[c.ID] {
			cases = append(cases, c)
		}
	}
	m.snapshot.Cases = cases
	for _, st := range m.snapshot.Strategies {
		if target, ok := changes.MovedStrategies[st.ID]; ok {
			st.CaseID = target
		}
	}
	for _, sc := range m.snapshot.Scenarios {
		if target, ok := changes.MergedInto[sc.CaseID]; ok {
			sc.CaseID = target
		}
	}
	return changes, nil
}

func (m *mockIntegrityStore) ImportSnapshot(ctx context.Context, snapshot *secondary.LedgerSnapshot) error {
	if m.importErr != nil {
		return m.importErr
	}
	m.imported = snapshot
	m.snapshot.Cases = append(m.snapshot.Cases, snapshot.Cases...)
	m.snapshot.Strategies = append(m.snapshot.Strategies, snapshot.Strategies...)
	m.snapshot.Scenarios = append(m.snapshot.Scenarios, snapshot.Scenarios...)
	return nil
}

// mockLedgerFileStore implements secondary.LedgerFileStore in memory.
type mockLedgerFileStore struct {
	files map[string]*secondary.LedgerSnapshot
}

func newMockLedgerFileStore() *mockLedgerFileStore {
	return &mockLedgerFileStore{files: make(map[string]*secondary.LedgerSnapshot)}
}

func (m *mockLedgerFileStore) Read(ctx context.Context, path string) (*secondary.LedgerSnapshot, error) {
	if s, ok := m.files[path]; ok {
		return s, nil
	}
	return nil, errors.New("file not found")
}

func (m *mockLedgerFileStore) Write(ctx context.Context, path string, snapshot *secondary.LedgerSnapshot) error {
	m.files[path] = snapshot
	return nil
}

// mockAuditLogRepository implements secondary.AuditLogRepository for testing.
type mockAuditLogRepository struct {
	entries []*secondary.AuditRecord
	filters secondary.AuditFilters
	listErr error
}

func (m *mockAuditLogRepository) Create(ctx context.Context, entry *secondary.AuditRecord) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditLogRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	m.filters = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

// Compile-time interface checks
var (
	_ secondary.CaseRepository     = (*mockCaseRepository)(nil)
	_ secondary.StrategyRepository = (*mockStrategyRepository)(nil)
	_ secondary.ScenarioRepository = (*mockScenarioRepository)(nil)
	_ secondary.LogWriter          = (*mockLogWriter)(nil)
	_ secondary.IntegrityStore     = (*mockIntegrityStore)(nil)
	_ secondary.LedgerFileStore    = (*mockLedgerFileStore)(nil)
	_ secondary.AuditLogRepository = (*mockAuditLogRepository)(nil)
)
