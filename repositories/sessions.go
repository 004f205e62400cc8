package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gemma-chat/models"
)

// ErrSessionNotFound is returned when no session is stored under the given id.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores chat sessions by id.
// Implementations return copies; mutate stored sessions only through Put or Update.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Put(ctx context.Context, s *models.Session) error
	Update(ctx context.Context, id string, fn func(s *models.Session)) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	// List returns every session ordered by CreatedAt descending.
	List(ctx context.Context) ([]models.Session, error)
}

// MemorySessionRepository keeps sessions in a map guarded by a single mutex.
// Contents are lost when the process exits.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*models.Session)}
}

// Get returns a copy of the session stored under id.
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Put inserts or replaces the session keyed by s.ID.
func (r *MemorySessionRepository) Put(ctx context.Context, s *models.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session: missing id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s.Clone()
	return nil
}

// Update applies fn to the stored session under the write lock and returns
// a copy of the result.
func (r *MemorySessionRepository) Update(ctx context.Context, id string, fn func(s *models.Session)) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	fn(s)
	// fn must not change the key
	s.ID = id
	return s.Clone(), nil
}

// Delete removes the session stored under id.
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// List returns copies of all sessions, newest first.
func (r *MemorySessionRepository) List(ctx context.Context) ([]models.Session, error) {
	r.mu.RLock()
	out := make([]models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s.Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
