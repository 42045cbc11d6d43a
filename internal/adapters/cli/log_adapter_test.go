package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/casebook/internal/ports/primary"
)

type mockLogService struct {
	entries     []*primary.LogEntry
	lastFilters primary.LogFilters
}

func (m *mockLogService) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	m.lastFilters = filters
	return m.entries, nil
}

func TestLogAdapter_List(t *testing.T) {
	mock := &mockLogService{entries: []*primary.LogEntry{
		{ActorID: "ada", EntityType: "case", EntityID: "CAS001", Action: "repair_merge", FieldName: "merged_into", NewValue: "CAS009", CreatedAt: "2026-01-02 10:00:00"},
		{ActorID: "ada", EntityType: "strategy", EntityID: "S3", Action: "update", FieldName: "title", OldValue: "Old", NewValue: "New", CreatedAt: "2026-01-02 09:00:00"},
		{EntityType: "case", EntityID: "CAS002", Action: "create", CreatedAt: "2026-01-01 08:00:00"},
	}}
	var buf bytes.Buffer
	adapter := NewLogAdapter(mock, &buf)

	err := adapter.List(context.Background(), primary.LogFilters{EntityID: "CAS001", Limit: 10})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastFilters.EntityID != "CAS001" || mock.lastFilters.Limit != 10 {
		t.Errorf("unexpected filters %+v", mock.lastFilters)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "CAS001 → CAS009") {
		t.Errorf("expected merge line, got '%s'", lines[0])
	}
	if !strings.Contains(lines[1], `title: "Old" → "New"`) {
		t.Errorf("expected field change, got '%s'", lines[1])
	}
	if !strings.Contains(lines[2], " - ") {
		t.Errorf("expected placeholder actor, got '%s'", lines[2])
	}
}

func TestLogAdapter_List_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewLogAdapter(&mockLogService{}, &buf)

	if err := adapter.List(context.Background(), primary.LogFilters{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No log entries found.") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}
