package formstate

import (
	"sync"
	"testing"
)

func TestSet_MergesPartials(t *testing.T) {
	store := NewStore()
	store.Set(Fields{"name": "Mario", "email": "mario@example.com"})
	store.Set(Fields{"phone": "3331234567"})

	got := store.Snapshot()
	if got["name"] != "Mario" || got["email"] != "mario@example.com" || got["phone"] != "3331234567" {
		t.Errorf("Unexpected merged state %v", got)
	}
}

func TestSet_SkipsEmptyValues(t *testing.T) {
	store := NewStore()
	store.Set(Fields{"email": "mario@example.com"})
	store.Set(Fields{"email": "", "name": "Mario"})

	got := store.Snapshot()
	if got["email"] != "mario@example.com" {
		t.Errorf("An empty value must not blank out a filled field, got %q", got["email"])
	}
	if got["name"] != "Mario" {
		t.Errorf("Non-empty values in the same partial must still apply")
	}
}

func TestSubscribe_ReceivesAppliedPartial(t *testing.T) {
	store := NewStore()
	var mu sync.Mutex
	var received []Fields
	store.Subscribe(func(applied Fields) {
		mu.Lock()
		received = append(received, applied)
		mu.Unlock()
	})

	store.Set(Fields{"name": "Mario", "email": ""})
	store.Set(Fields{})

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("Expected one notification, got %d", len(received))
	}
	if len(received[0]) != 1 || received[0]["name"] != "Mario" {
		t.Errorf("Expected the applied partial only, got %v", received[0])
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	store := NewStore()
	store.Set(Fields{"name": "Mario"})

	snap := store.Snapshot()
	snap["name"] = "Luigi"

	if store.Snapshot()["name"] != "Mario" {
		t.Errorf("Mutating a snapshot must not touch the store")
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	store := NewStore()
	store.Set(Fields{"name": "Mario", "message": "ciao"})
	store.Reset()

	if got := store.Snapshot(); len(got) != 0 {
		t.Errorf("Expected an empty state after reset, got %v", got)
	}
}
