package ingest

import (
	"testing"

	"github.com/vorpalengineering/logupload/types"
)

func eventIDs(events []types.LogEvent) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestEventStoreRecent(t *testing.T) {
	store := NewEventStore(10)
	store.Add(types.LogEvent{ID: "1"})
	store.Add(types.LogEvent{ID: "2"})
	store.Add(types.LogEvent{ID: "3"})

	t.Run("newest first", func(t *testing.T) {
		recent := store.Recent(2)
		if len(recent) != 2 {
			t.Fatalf("Expected 2 events, got %d", len(recent))
		}
		if recent[0].ID != "3" || recent[1].ID != "2" {
			t.Errorf("Expected [3 2], got %v", eventIDs(recent))
		}
	})

	t.Run("limit bounds", func(t *testing.T) {
		if n := len(store.Recent(0)); n != 3 {
			t.Errorf("Expected 3 events for limit 0, got %d", n)
		}
		if n := len(store.Recent(50)); n != 3 {
			t.Errorf("Expected 3 events for limit 50, got %d", n)
		}
	})
}

func TestEventStoreEvictsOldest(t *testing.T) {
	store := NewEventStore(2)
	store.Add(types.LogEvent{ID: "1"})
	store.Add(types.LogEvent{ID: "2"})
	store.Add(types.LogEvent{ID: "3"})

	if store.Len() != 2 {
		t.Errorf("Expected 2 events, got %d", store.Len())
	}
	recent := store.Recent(0)
	if len(recent) != 2 || recent[0].ID != "3" || recent[1].ID != "2" {
		t.Errorf("Expected [3 2], got %v", eventIDs(recent))
	}
}
