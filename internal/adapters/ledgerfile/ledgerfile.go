// Package ledgerfile reads and writes whole ledgers as YAML files.
package ledgerfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/casebook/internal/ports/secondary"
)

// document is the on-disk layout.
type document struct {
	Cases      []caseEntry     `yaml:"cases"`
	Strategies []strategyEntry `yaml:"strategies"`
	Scenarios  []scenarioEntry `yaml:"scenarios,omitempty"`
}

type caseEntry struct {
	ID           string `yaml:"id"`
	DocketNumber string `yaml:"docket_number,omitempty"`
	Title        string `yaml:"title"`
	Court        string `yaml:"court,omitempty"`
	UpdatedAt    int64  `yaml:"updated_at,omitempty"`
}

type strategyEntry struct {
	ID        string `yaml:"id"`
	CaseID    string `yaml:"case_id"`
	Title     string `yaml:"title"`
	Body      string `yaml:"body,omitempty"`
	UpdatedAt int64  `yaml:"updated_at,omitempty"`
}

type scenarioEntry struct {
	ID     string `yaml:"id"`
	CaseID string `yaml:"case_id"`
	Title  string `yaml:"title"`
	Script string `yaml:"script,omitempty"`
}

// Store implements secondary.LedgerFileStore on the local filesystem.
type Store struct{}

// NewStore creates a new ledger file store.
func NewStore() *Store {
	return &Store{}
}

// Read parses the ledger file at path.
func (s *Store) Read(ctx context.Context, path string) (*secondary.LedgerSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file %s: %w", path, err)
	}

	snapshot := &secondary.LedgerSnapshot{}
	for _, c := range doc.Cases {
		snapshot.Cases = append(snapshot.Cases, &secondary.CaseRecord{
			ID:           c.ID,
			DocketNumber: c.DocketNumber,
			Title:        c.Title,
			Court:        c.Court,
			UpdatedAt:    c.UpdatedAt,
		})
	}
	for _, st := range doc.Strategies {
		snapshot.Strategies = append(snapshot.Strategies, &secondary.StrategyRecord{
			ID:        st.ID,
			CaseID:    st.CaseID,
			Title:     st.Title,
			Body:      st.Body,
			UpdatedAt: st.UpdatedAt,
		})
	}
	for _, sc := range doc.Scenarios {
		snapshot.Scenarios = append(snapshot.Scenarios, &secondary.ScenarioRecord{
			ID:     sc.ID,
			CaseID: sc.CaseID,
			Title:  sc.Title,
			Script: sc.Script,
		})
	}

	return snapshot, nil
}

// Write serializes the snapshot to path, replacing any existing file.
func (s *Store) Write(ctx context.Context, path string, snapshot *secondary.LedgerSnapshot) error {
	doc := document{
		Cases:      make([]caseEntry, 0, len(snapshot.Cases)),
		Strategies: make([]strategyEntry, 0, len(snapshot.Strategies)),
	}
	for _, c := range snapshot.Cases {
		doc.Cases = append(doc.Cases, caseEntry{
			ID:           c.ID,
			DocketNumber: c.DocketNumber,
			Title:        c.Title,
			Court:        c.Court,
			UpdatedAt:    c.UpdatedAt,
		})
	}
	for _, st := range snapshot.Strategies {
		doc.Strategies = append(doc.Strategies, strategyEntry{
			ID:        st.ID,
			CaseID:    st.CaseID,
			Title:     st.Title,
			Body:      st.Body,
			UpdatedAt: st.UpdatedAt,
		})
	}
	for _, sc := range snapshot.Scenarios {
		doc.Scenarios = append(doc.Scenarios, scenarioEntry{
			ID:     sc.ID,
			CaseID: sc.CaseID,
			Title:  sc.Title,
			Script: sc.Script,
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for ledger file: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	return nil
}

var _ secondary.LedgerFileStore = (*Store)(nil)
