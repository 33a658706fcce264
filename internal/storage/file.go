package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// fileState is the on-disk layout: the same two keys the web client keeps
// in browser storage.
type fileState struct {
	Token   string               `json:"token,omitempty"`
	Session *model.StoredSession `json:"session,omitempty"`
}

// FileStore implements the Store interface on a single JSON file
type FileStore struct {
	path string

	mu    sync.Mutex
	state fileState
}

// NewFileStore creates a FileStore backed by the file at path
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	s := &FileStore{path: path}

	// Missing or corrupt state reads back as empty
	data, err := os.ReadFile(path)
	if err == nil {
		_ = json.Unmarshal(data, &s.state)
	}

	return s, nil
}

// Token returns the persisted bearer token, or "" if none is stored
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// SetToken persists the bearer token
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.flush()
}

// ClearToken removes the persisted bearer token
func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	return s.flush()
}

// Session returns the persisted session slice, reporting whether one exists
func (s *FileStore) Session() (*model.StoredSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Session == nil {
		return nil, false
	}
	copied := *s.state.Session
	return &copied, true
}

// SetSession persists the session slice
func (s *FileStore) SetSession(sess *model.StoredSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess == nil {
		s.state.Session = nil
	} else {
		copied := *sess
		s.state.Session = &copied
	}
	return s.flush()
}

// Clear removes all persisted state
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fileState{}
	return s.flush()
}

// flush writes the state file atomically. Caller holds the lock.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
