package mem

import (
	"context"
	"sync"
	"time"
)

const (
	draftPrefix      = "trip_form_draft:"
	inProgressPrefix = "generation_in_progress:"
)

// SessionStateStore holds the per-session form draft and the in-progress marker
// of an itinerary generation. Both live for the session TTL only.
type SessionStateStore interface {
	SaveDraft(ctx context.Context, session string, draft []byte) error

	// LoadDraft returns ok=false when no draft exists or it expired.
	LoadDraft(ctx context.Context, session string) (draft []byte, ok bool, err error)
	ClearDraft(ctx context.Context, session string) error

	SetInProgress(ctx context.Context, session string) error
	InProgress(ctx context.Context, session string) (bool, error)
	ClearInProgress(ctx context.Context, session string) error
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

type MemorySessionState struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]entry
	now  func() time.Time
}

func NewMemorySessionState(ttl time.Duration) *MemorySessionState {
	return &MemorySessionState{
		ttl:  ttl,
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemorySessionState) set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: s.now().Add(s.ttl),
	}
}

func (s *MemorySessionState) get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.evictExpired(key)
		return nil, false
	}
	return append([]byte(nil), e.value...), true
}

// evictExpired deletes key only if it is still expired under the write lock,
// so a set that raced in after the read survives.
func (s *MemorySessionState) evictExpired(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.data[key]; ok && s.now().After(e.expiresAt) {
		delete(s.data, key)
	}
}

func (s *MemorySessionState) del(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *MemorySessionState) SaveDraft(_ context.Context, session string, draft []byte) error {
	s.set(draftPrefix+session, draft)
	return nil
}

func (s *MemorySessionState) LoadDraft(_ context.Context, session string) ([]byte, bool, error) {
	v, ok := s.get(draftPrefix + session)
	return v, ok, nil
}

func (s *MemorySessionState) ClearDraft(_ context.Context, session string) error {
	s.del(draftPrefix + session)
	return nil
}

func (s *MemorySessionState) SetInProgress(_ context.Context, session string) error {
	s.set(inProgressPrefix+session, []byte("1"))
	return nil
}

func (s *MemorySessionState) InProgress(_ context.Context, session string) (bool, error) {
	_, ok := s.get(inProgressPrefix + session)
	return ok, nil
}

func (s *MemorySessionState) ClearInProgress(_ context.Context, session string) error {
	s.del(inProgressPrefix + session)
	return nil
}
