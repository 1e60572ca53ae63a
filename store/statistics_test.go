package store

import (
	"encoding/json"
	"testing"
)

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestCleanupStatisticsDropsEarlierDuplicate(t *testing.T) {
	s := NewStatisticsStore()
	s.Add(StatEntry{Time: 1, Suite: "S", Section: "A", Payload: mustRaw(t, map[string]int{"n": 1})})
	s.Add(StatEntry{Time: 2, Suite: "S", Section: "A", Payload: mustRaw(t, map[string]int{"n": 1})})
	s.Add(StatEntry{Time: 3, Suite: "S", Section: "A", Payload: mustRaw(t, map[string]int{"n": 2})})

	s.CleanupStatistics()

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after cleanup, got %d: %+v", len(entries), entries)
	}
	if entries[0].Time != 2 || entries[1].Time != 3 {
		t.Fatalf("expected entries at t=2 and t=3, got t=%d and t=%d", entries[0].Time, entries[1].Time)
	}
}

func TestCleanupStatisticsKeyOrderChurnStillDeduplicates(t *testing.T) {
	s := NewStatisticsStore()
	s.Add(StatEntry{Time: 1, Suite: "S", Section: "A", Payload: json.RawMessage(`{"a":1,"b":2}`)})
	s.Add(StatEntry{Time: 2, Suite: "S", Section: "A", Payload: json.RawMessage(`{"b":2,"a":1}`)})

	s.CleanupStatistics()

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected key-order churn to be treated as a duplicate, got %d entries", len(entries))
	}
}

func TestCleanupStatisticsCheckpointResetsWindow(t *testing.T) {
	s := NewStatisticsStore()
	s.Add(StatEntry{Time: 1, Suite: "S", Section: "A", Payload: mustRaw(t, map[string]int{"n": 1})})
	s.Add(StatEntry{Time: 2, Payload: mustRaw(t, map[string]string{"checkpoint": "run"})})
	s.Add(StatEntry{Time: 3, Suite: "S", Section: "A", Payload: mustRaw(t, map[string]int{"n": 1})})

	s.CleanupStatistics()

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected checkpoint barrier to prevent dedup across it, got %d entries", len(entries))
	}
}
