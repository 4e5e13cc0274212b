package session

import (
	"sync"
	"testing"
	"time"

	"flashcard-service/internal/models"
)

func TestRegistryPutGetRemove(t *testing.T) {
	r := NewRegistry(time.Hour)

	active := &Active{
		UserID:    "user-1",
		SubjectID: "subject-1",
		Mode:      models.ModeSpecificTopic,
	}
	id := r.Put(active)

	if id == "" {
		t.Fatal("Expected a session id")
	}
	if active.ID != id {
		t.Errorf("Expected id %s to be stamped onto the session, got %s", id, active.ID)
	}

	got, ok := r.Get(id)
	if !ok {
		t.Fatal("Expected to find the session")
	}
	if got.UserID != "user-1" {
		t.Errorf("Expected owner user-1, got %s", got.UserID)
	}
	if r.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", r.Count())
	}

	if !r.Remove(id) {
		t.Error("Expected Remove to report the session as known")
	}
	if _, ok := r.Get(id); ok {
		t.Error("Expected the session to be gone after Remove")
	}
	if r.Remove(id) {
		t.Error("Expected removing twice to report unknown")
	}
}

func TestRegistryIDsAreUnique(t *testing.T) {
	r := NewRegistry(time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := r.Put(&Active{UserID: "user-1"})
		if seen[id] {
			t.Fatalf("Duplicate session id %s", id)
		}
		seen[id] = true
	}
	if r.Count() != 50 {
		t.Errorf("Expected 50 sessions, got %d", r.Count())
	}
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	r := NewRegistry(time.Minute)

	stale := &Active{UserID: "user-1"}
	fresh := &Active{UserID: "user-2"}
	staleID := r.Put(stale)
	freshID := r.Put(fresh)

	stale.mu.Lock()
	stale.lastTouched = time.Now().Add(-2 * time.Minute)
	stale.mu.Unlock()

	r.evictIdle()

	if _, ok := r.Get(staleID); ok {
		t.Error("Expected the idle session to be evicted")
	}
	if _, ok := r.Get(freshID); !ok {
		t.Error("Expected the fresh session to survive")
	}
}

func TestActiveDoRefreshesIdleStamp(t *testing.T) {
	r := NewRegistry(time.Minute)
	active := &Active{UserID: "user-1"}
	id := r.Put(active)

	active.mu.Lock()
	active.lastTouched = time.Now().Add(-2 * time.Minute)
	active.mu.Unlock()

	active.Do(func() {})
	r.evictIdle()

	if _, ok := r.Get(id); !ok {
		t.Error("Expected a just-used session to survive eviction")
	}
}

func TestActiveDoSerializes(t *testing.T) {
	active := &Active{UserID: "user-1"}

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			active.Do(func() {
				counter++
			})
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("Expected 100 serialized increments, got %d", counter)
	}
}
