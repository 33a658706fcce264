package storage

import (
	"github.com/Mohmmed-Zaid/jobluu-client/internal/config"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// Store defines the interface for the local persistence adapter. It mirrors
// the two durable keys the web client keeps in browser storage: the bearer
// token and a serialized slice of session state. Reads never fail: corrupt
// or missing data reads back as absent, matching the browser adapter's
// error-swallowing contract.
type Store interface {
	// Token returns the persisted bearer token, or "" if none is stored
	Token() string

	// SetToken persists the bearer token
	SetToken(token string) error

	// ClearToken removes the persisted bearer token
	ClearToken() error

	// Session returns the persisted session slice, reporting whether one exists
	Session() (*model.StoredSession, bool)

	// SetSession persists the session slice
	SetSession(s *model.StoredSession) error

	// Clear removes all persisted state
	Clear() error
}

// NewStore creates a store implementation based on the configuration
func NewStore(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Path)
	default:
		// Default to file storage
		return NewFileStore(cfg.Path)
	}
}
