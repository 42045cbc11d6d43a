package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/example/casebook/internal/adapters/sqlite"
	"github.com/example/casebook/internal/core/integrity"
	"github.com/example/casebook/internal/ctxutil"
	"github.com/example/casebook/internal/db"
	"github.com/example/casebook/internal/ports/secondary"
)

// dedupePlanner runs the duplicate-docket repair against a snapshot.
func dedupePlanner(snapshot *secondary.LedgerSnapshot) *secondary.RepairChangeSet {
	cases := make([]integrity.Case, len(snapshot.Cases))
	for i, c := range snapshot.Cases {
		cases[i] = integrity.Case{ID: c.ID, DocketNumber: c.DocketNumber, UpdatedAt: c.UpdatedAt}
	}
	strategies := make([]integrity.Strategy, len(snapshot.Strategies))
	for i, s := range snapshot.Strategies {
		strategies[i] = integrity.Strategy{ID: s.ID, CaseID: s.CaseID}
	}

	result := integrity.RepairCasesAndStrategies(cases, strategies)
	return &secondary.RepairChangeSet{
		RemovedCaseIDs:  result.RemovedCaseIDs,
		MovedStrategies: result.MovedStrategies,
		MergedInto:      result.MergedInto,
	}
}

func TestIntegrityStore_LoadSnapshot(t *testing.T) {
	testDB := setupTestDB(t)
	seedCase(t, testDB, "CASE-002", "1185/2025", 2)
	seedCase(t, testDB, "CASE-001", "715/2024", 1)
	seedStrategy(t, testDB, "STRAT-001", "CASE-001")
	seedScenario(t, testDB, "SCEN-001", "CASE-002")
	store := sqlite.NewIntegrityStore(testDB)

	snapshot, err := store.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(snapshot.Cases) != 2 || len(snapshot.Strategies) != 1 || len(snapshot.Scenarios) != 1 {
		t.Fatalf("unexpected snapshot sizes: %d/%d/%d", len(snapshot.Cases), len(snapshot.Strategies), len(snapshot.Scenarios))
	}
	// Insertion order, not ID order
	if snapshot.Cases[0].ID != "CASE-002" {
		t.Errorf("expected insertion order, first case was %s", snapshot.Cases[0].ID)
	}
}

func TestIntegrityStore_ApplyRepair_MergesDuplicates(t *testing.T) {
	testDB := setupTestDB(t)
	seedCase(t, testDB, "CAS001", "715/2024", 100)
	seedCase(t, testDB, "CAS009", " 715 / 2024 ", 50)
	seedCase(t, testDB, "CAS002", "1185/2025", 10)
	seedStrategy(t, testDB, "S1", "CAS009")
	seedStrategy(t, testDB, "S2", "CAS009")
	seedStrategy(t, testDB, "S3", "CAS001")
	seedScenario(t, testDB, "SCEN-001", "CAS001")
	store := sqlite.NewIntegrityStore(testDB)
	ctx := ctxutil.WithActorID(context.Background(), "clerk")

	changes, err := store.ApplyRepair(ctx, dedupePlanner)
	if err != nil {
		t.Fatalf("ApplyRepair failed: %v", err)
	}
	if len(changes.RemovedCaseIDs) != 1 || changes.RemovedCaseIDs[0] != "CAS001" {
		t.Fatalf("expected CAS001 removed, got %v", changes.RemovedCaseIDs)
	}

	if n := countRows(t, testDB, "cases"); n != 2 {
		t.Errorf("expected 2 cases, got %d", n)
	}
	if got := caseIDOf(t, testDB, "strategies", "S3"); got != "CAS009" {
		t.Errorf("expected S3 moved to CAS009, got %s", got)
	}
	if got := caseIDOf(t, testDB, "scenarios", "SCEN-001"); got != "CAS009" {
		t.Errorf("expected SCEN-001 re-pointed to CAS009, got %s", got)
	}

	audit := sqlite.NewAuditLogRepository(testDB)
	moves, _ := audit.List(context.Background(), secondary.AuditFilters{Action: "repair_move"})
	if len(moves) != 1 || moves[0].EntityID != "S3" || moves[0].OldValue != "CAS001" || moves[0].NewValue != "CAS009" {
		t.Errorf("unexpected repair_move entries: %+v", moves)
	}
	merges, _ := audit.List(context.Background(), secondary.AuditFilters{Action: "repair_merge"})
	if len(merges) != 1 || merges[0].EntityID != "CAS001" || merges[0].NewValue != "CAS009" {
		t.Errorf("unexpected repair_merge entries: %+v", merges)
	}
	if merges[0].ActorID != "clerk" {
		t.Errorf("expected actor 'clerk', got '%s'", merges[0].ActorID)
	}
}

func TestIntegrityStore_ApplyRepair_SecondRunIsNoop(t *testing.T) {
	testDB := setupTestDB(t)
	seedCase(t, testDB, "CASE-001", "715/2024", 1)
	seedCase(t, testDB, "CASE-002", "715 / 2024", 2)
	store := sqlite.NewIntegrityStore(testDB)
	ctx := context.Background()

	if _, err := store.ApplyRepair(ctx, dedupePlanner); err != nil {
		t.Fatalf("first ApplyRepair failed: %v", err)
	}
	changes, err := store.ApplyRepair(ctx, dedupePlanner)
	if err != nil {
		t.Fatalf("second ApplyRepair failed: %v", err)
	}
	if !changes.Empty() {
		t.Errorf("expected no changes on second run, got %+v", changes)
	}
	if n := countRows(t, testDB, "audit_log"); n != 1 {
		t.Errorf("expected only the first run's merge entry, got %d rows", n)
	}
}

func TestIntegrityStore_ApplyRepair_RollsBackOnBadPlan(t *testing.T) {
	testDB := setupTestDB(t)
	seedCase(t, testDB, "CASE-001", "", 1)
	seedCase(t, testDB, "CASE-002", "", 1)
	seedStrategy(t, testDB, "STRAT-001", "CASE-001")
	store := sqlite.NewIntegrityStore(testDB)

	badPlan := func(*secondary.LedgerSnapshot) *secondary.RepairChangeSet {
		return &secondary.RepairChangeSet{
			RemovedCaseIDs:  []string{"CASE-001"},
			MovedStrategies: map[string]string{"STRAT-001": "CASE-002"},
		}
	}

	if _, err := store.ApplyRepair(context.Background(), badPlan); err == nil {
		t.Fatal("expected error for removal without canonical case")
	}
	if got := caseIDOf(t, testDB, "strategies", "STRAT-001"); got != "CASE-001" {
		t.Errorf("expected strategy move rolled back, got %s", got)
	}
	if n := countRows(t, testDB, "audit_log"); n != 0 {
		t.Errorf("expected audit rows rolled back, got %d", n)
	}
}

func TestIntegrityStore_ApplyRepair_ConcurrentRunsSerialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	conn, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	seedCase(t, conn, "CASE-001", "715/2024", 1)
	seedCase(t, conn, "CASE-002", "715/2024", 2)
	seedCase(t, conn, "CASE-003", "715/2024", 3)
	seedStrategy(t, conn, "STRAT-001", "CASE-001")
	seedStrategy(t, conn, "STRAT-002", "CASE-002")
	store := sqlite.NewIntegrityStore(conn)

	var wg sync.WaitGroup
	results := make([]*secondary.RepairChangeSet, 2)
	errs := make([]error, 2)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = store.ApplyRepair(context.Background(), dedupePlanner)
		}()
	}
	wg.Wait()

	applied := 0
	for i := range 2 {
		if errs[i] != nil {
			t.Fatalf("ApplyRepair %d failed: %v", i, errs[i])
		}
		if !results[i].Empty() {
			applied++
		}
	}
	if applied != 1 {
		t.Errorf("expected exactly one run to apply changes, got %d", applied)
	}
	if n := countRows(t, conn, "cases"); n != 1 {
		t.Errorf("expected 1 case left, got %d", n)
	}
	var orphans int
	if err := conn.QueryRow("SELECT COUNT(*) FROM strategies WHERE case_id NOT IN (SELECT id FROM cases)").Scan(&orphans); err != nil {
		t.Fatalf("orphan query failed: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected no orphans after concurrent repairs, got %d", orphans)
	}
}

func TestIntegrityStore_ImportSnapshot(t *testing.T) {
	testDB := setupTestDB(t)
	store := sqlite.NewIntegrityStore(testDB)
	ctx := context.Background()

	snapshot := &secondary.LedgerSnapshot{
		Cases: []*secondary.CaseRecord{
			{ID: "CAS001", DocketNumber: "715/2024", Title: "Deposit", UpdatedAt: 5},
		},
		Strategies: []*secondary.StrategyRecord{
			{ID: "S1", CaseID: "CAS001", Title: "Deadline"},
			{ID: "S2", CaseID: "CAS404", Title: "Dangling"},
		},
		Scenarios: []*secondary.ScenarioRecord{
			{ID: "SC1", CaseID: "CAS001", Title: "Opening"},
		},
	}
	if err := store.ImportSnapshot(ctx, snapshot); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}

	loaded, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(loaded.Cases) != 1 || loaded.Cases[0].UpdatedAt != 5 {
		t.Errorf("unexpected cases after import: %+v", loaded.Cases)
	}
	if len(loaded.Strategies) != 2 {
		t.Errorf("expected orphan strategy to be imported, got %d strategies", len(loaded.Strategies))
	}

	// Re-import updates instead of failing on the primary key
	snapshot.Cases[0].Title = "Deposit (renamed)"
	if err := store.ImportSnapshot(ctx, snapshot); err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if n := countRows(t, testDB, "cases"); n != 1 {
		t.Errorf("expected 1 case after re-import, got %d", n)
	}
}

func TestIntegrityStore_ImportSnapshot_KeepsInsertionOrder(t *testing.T) {
	testDB := setupTestDB(t)
	// Full tie: same docket, same UpdatedAt, no strategies; input order decides
	seedCase(t, testDB, "CASE-001", "715/2024", 7)
	seedCase(t, testDB, "CASE-002", "715/2024", 7)
	store := sqlite.NewIntegrityStore(testDB)
	ctx := context.Background()

	err := store.ImportSnapshot(ctx, &secondary.LedgerSnapshot{
		Cases: []*secondary.CaseRecord{
			{ID: "CASE-001", DocketNumber: "715/2024", Title: "Re-imported", UpdatedAt: 7},
		},
	})
	if err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}

	loaded, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(loaded.Cases) != 2 || loaded.Cases[0].ID != "CASE-001" || loaded.Cases[0].Title != "Re-imported" {
		t.Fatalf("expected CASE-001 updated in its original position, got %+v", loaded.Cases)
	}

	changes, err := store.ApplyRepair(ctx, dedupePlanner)
	if err != nil {
		t.Fatalf("ApplyRepair failed: %v", err)
	}
	if len(changes.RemovedCaseIDs) != 1 || changes.RemovedCaseIDs[0] != "CASE-002" {
		t.Errorf("expected CASE-001 to stay canonical, removed %v", changes.RemovedCaseIDs)
	}
}

func TestIntegrityStore_ImportSnapshot_RejectsMissingIDs(t *testing.T) {
	testDB := setupTestDB(t)
	store := sqlite.NewIntegrityStore(testDB)

	err := store.ImportSnapshot(context.Background(), &secondary.LedgerSnapshot{
		Cases:      []*secondary.CaseRecord{{ID: "CAS001", Title: "Kept?"}},
		Strategies: []*secondary.StrategyRecord{{ID: "S1", Title: "No case"}},
	})
	if err == nil {
		t.Fatal("expected error for strategy without case ID")
	}
	if n := countRows(t, testDB, "cases"); n != 0 {
		t.Errorf("expected import rolled back, got %d cases", n)
	}
}
