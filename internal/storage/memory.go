package storage

import (
	"sync"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// MemoryStore implements the Store interface in memory, for tests and
// ephemeral sessions
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	session *model.StoredSession
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored bearer token, or "" if none is stored
func (s *MemoryStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken stores the bearer token
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// ClearToken removes the stored bearer token
func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Session returns the stored session slice, reporting whether one exists
func (s *MemoryStore) Session() (*model.StoredSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, false
	}
	copied := *s.session
	return &copied, true
}

// SetSession stores the session slice
func (s *MemoryStore) SetSession(sess *model.StoredSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess == nil {
		s.session = nil
	} else {
		copied := *sess
		s.session = &copied
	}
	return nil
}

// Clear removes all stored state
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.session = nil
	return nil
}
