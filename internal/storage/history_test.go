package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/klocke7-ford/pesterun/internal/domain"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func sampleMeta(path, ts string) domain.RunMeta {
	return domain.RunMeta{
		Path:            path,
		VersionUsed:     "5.7.1",
		TotalTests:      10,
		PassedTests:     8,
		FailedTests:     1,
		SkippedTests:    1,
		DurationSeconds: 2.5,
		Timestamp:       ts,
	}
}

func TestHistory_RecordAndList(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	if err := h.Record(ctx, sampleMeta("/tests/a", "2026-08-30T10:00:00Z"), "/data/last-run.json"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.Record(ctx, sampleMeta("/tests/b", "2026-08-30T11:00:00Z"), "/data/last-run.json"); err != nil {
		t.Fatalf("record: %v", err)
	}

	records, err := h.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Path != "/tests/b" {
		t.Errorf("expected newest first, got %s", records[0].Path)
	}
	if records[0].VersionUsed != "5.7.1" || records[0].FailedTests != 1 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestHistory_ListLimit(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := h.Record(ctx, sampleMeta("/tests", "2026-08-30T10:00:00Z"), ""); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	records, err := h.List(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records with limit, got %d", len(records))
	}
}

func TestHistory_Clear(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	if err := h.Record(ctx, sampleMeta("/tests", "2026-08-30T10:00:00Z"), ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := h.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(records))
	}
}
