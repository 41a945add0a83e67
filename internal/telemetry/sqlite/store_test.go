package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/graziososalvare/rescuehub/internal/telemetry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "telemetry.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestAppendAndListRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := telemetry.Event{
		Timestamp: time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC),
		Severity:  telemetry.SeverityInfo,
		Source:    "registry",
		Kind:      "animal.created",
		Message:   "inserted record",
	}
	newer := telemetry.Event{
		Timestamp: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		Severity:  telemetry.SeverityWarn,
		Source:    "dashboard",
		Kind:      "profile.unknown",
	}
	if err := store.AppendEvent(ctx, older); err != nil {
		t.Fatalf("append older: %v", err)
	}
	if err := store.AppendEvent(ctx, newer); err != nil {
		t.Fatalf("append newer: %v", err)
	}

	events, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("listed %d events, want 2", len(events))
	}
	if events[0].Kind != "profile.unknown" {
		t.Fatalf("newest event kind = %q, want %q", events[0].Kind, "profile.unknown")
	}
	if !events[0].Timestamp.Equal(newer.Timestamp) {
		t.Fatalf("timestamp = %v, want %v", events[0].Timestamp, newer.Timestamp)
	}
	if events[1].Severity != telemetry.SeverityInfo {
		t.Fatalf("severity = %q, want %q", events[1].Severity, telemetry.SeverityInfo)
	}
}

func TestListRecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		evt := telemetry.Event{
			Timestamp: time.Date(2026, 8, 23, 0, i, 0, 0, time.UTC),
			Severity:  telemetry.SeverityInfo,
			Source:    "test",
			Kind:      "tick",
		}
		if err := store.AppendEvent(ctx, evt); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := store.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("listed %d events, want 3", len(events))
	}
}

func TestEmitterWritesThroughStore(t *testing.T) {
	store := openTestStore(t)
	emitter := telemetry.NewEmitter(store)

	if err := emitter.Emit(context.Background(), telemetry.Event{Source: "registry", Kind: "cache.cleared"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	events, err := store.ListRecent(context.Background(), 1)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(events) != 1 || events[0].Kind != "cache.cleared" {
		t.Fatalf("events = %+v", events)
	}
}
