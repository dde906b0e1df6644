package store

import (
	"context"
	"testing"
)

func TestEventLogAppendAndTail(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	log := s.EventLog()

	if err := log.Append("node.create", "p.json", "n-aaaaaaaa", map[string]any{"parent": "root"}); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := log.Append("node.rename", "p.json", "n-aaaaaaaa", map[string]any{"topic": "A"}); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := log.Append("save.failed", "p.json", "", map[string]any{"error": "disk full"}); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	evs, err := log.Tail(context.Background(), 0)
	if err != nil {
		t.Fatalf("Tail error: %v", err)
	}
	if len(evs) != 3 {
		t.Fatalf("expected 3 events; got %d", len(evs))
	}
	// Chronological order, oldest first.
	if evs[0].Type != "node.create" || evs[2].Type != "save.failed" {
		t.Fatalf("unexpected order: %s .. %s", evs[0].Type, evs[2].Type)
	}
	if evs[0].NodeID != "n-aaaaaaaa" || evs[0].File != "p.json" {
		t.Fatalf("event fields lost: %+v", evs[0])
	}

	last, err := log.Tail(context.Background(), 1)
	if err != nil {
		t.Fatalf("Tail error: %v", err)
	}
	if len(last) != 1 || last[0].Type != "save.failed" {
		t.Fatalf("limit should keep the newest event; got %+v", last)
	}
}

func TestEventLogRejectsEmptyType(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.EventLog().Append("  ", "p.json", "", nil); err == nil {
		t.Fatalf("expected error for empty type")
	}
}
