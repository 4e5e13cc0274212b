package session

import (
	"context"
	"sync"
	"time"

	"flashcard-service/internal/models"

	"github.com/google/uuid"
)

// Active binds one running controller to its owner and deck metadata. The
// embedded mutex serializes every operation touching the session, so the
// controller itself never needs locking.
type Active struct {
	mu sync.Mutex

	ID            string
	UserID        string
	SubjectID     string
	SubjectTitle  string
	TopicID       string
	TopicTitle    string
	Mode          models.TestMode
	TopicTitles   map[string]string
	SkippedTopics []string
	Controller    *Controller

	// set once the subject's revision metrics were bumped for this session
	MetricsRecorded bool

	lastTouched time.Time
}

// Do runs fn while holding the session lock and refreshes the idle stamp.
func (a *Active) Do(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastTouched = time.Now()
	fn()
}

// Registry holds every in-flight session of this process. Sessions are
// deliberately not persisted anywhere: leaving one throws its state away,
// and only completion reports already flushed to the result store remain.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Active
	ttl      time.Duration
}

// NewRegistry creates an empty registry. Sessions idle longer than ttl are
// eligible for eviction; a ttl of zero disables eviction.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Active),
		ttl:      ttl,
	}
}

// Put registers a session under a fresh id and returns it.
func (r *Registry) Put(a *Active) string {
	id := uuid.NewString()
	a.ID = id
	a.lastTouched = time.Now()
	r.mu.Lock()
	r.sessions[id] = a
	r.mu.Unlock()
	return id
}

// Get looks a session up without refreshing its idle stamp.
func (r *Registry) Get(id string) (*Active, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.sessions[id]
	return a, ok
}

// Remove drops a session and reports whether the id was known.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Count reports the number of in-flight sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StartJanitor evicts idle sessions in the background until ctx is done.
// Eviction is the same as the user exiting: in-memory state is discarded,
// already-recorded results stay.
func (r *Registry) StartJanitor(ctx context.Context, every time.Duration) {
	if r.ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.evictIdle()
			}
		}
	}()
}

func (r *Registry) evictIdle() {
	cutoff := time.Now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.sessions {
		a.mu.Lock()
		idle := a.lastTouched.Before(cutoff)
		a.mu.Unlock()
		if idle {
			delete(r.sessions, id)
		}
	}
}
