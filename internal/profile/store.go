// Package profile holds the editable profile state with debounced autosave:
// edits restart a quiet-period timer, and only the last state when the
// timer expires is written out.
package profile

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/client"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// API is the slice of the profile client the store depends on
type API interface {
	Get(ctx context.Context, id int) (*model.Profile, error)
	Update(ctx context.Context, id int, p model.Profile) (*model.Profile, error)
	Create(ctx context.Context, p model.Profile) (*model.Profile, error)
	UploadAvatar(ctx context.Context, id int, path string) (string, error)
}

// Store holds the profile being edited. State machine:
// idle → dirty → (debounce running) → saving → idle|error.
type Store struct {
	api      API
	logger   *zap.Logger
	debounce time.Duration

	mu        sync.Mutex
	profile   model.Profile
	loaded    bool
	dirty     bool
	saving    bool
	pending   bool
	timer     *time.Timer
	lastError string
}

// NewStore creates a profile store with the given autosave quiet period
func NewStore(api API, debounce time.Duration, logger *zap.Logger) *Store {
	if debounce <= 0 {
		debounce = 1500 * time.Millisecond
	}
	return &Store{api: api, logger: logger, debounce: debounce}
}

// Profile returns a copy of the current profile
func (s *Store) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// LastError returns the most recent save failure, or ""
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Load fetches the profile for a user. A missing profile initializes an
// empty one carrying the user's id, to be created on first save.
func (s *Store) Load(ctx context.Context, id int) error {
	p, err := s.api.Get(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			s.mu.Lock()
			s.profile = model.Profile{ID: id}
			s.loaded = true
			s.mu.Unlock()
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.profile = *p
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Edit applies a field mutation, marks the profile dirty, and restarts the
// debounce timer. A new edit before expiry cancels the previous timer:
// last write wins, one save per quiet period.
func (s *Store) Edit(mutate func(p *model.Profile)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.profile)
	s.dirty = true

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.save(context.Background())
	})
}

// Convenience setters mirroring the UI's per-field edit actions.

// SetAbout updates the about text
func (s *Store) SetAbout(about string) {
	s.Edit(func(p *model.Profile) { p.About = about })
}

// SetSkills replaces the skill list
func (s *Store) SetSkills(skills []string) {
	s.Edit(func(p *model.Profile) { p.Skills = skills })
}

// AddExperience appends a work-history entry
func (s *Store) AddExperience(exp model.Experience) {
	s.Edit(func(p *model.Profile) { p.Experiences = append(p.Experiences, exp) })
}

// AddCertification appends a certification entry
func (s *Store) AddCertification(cert model.Certification) {
	s.Edit(func(p *model.Profile) { p.Certifications = append(p.Certifications, cert) })
}

// Save writes the profile out immediately, sharing the single-flight guard
// with autosave. Manual save and autosave are not mutually exclusive; the
// guard serializes them instead of letting requests land out of order.
func (s *Store) Save(ctx context.Context) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.save(ctx)
}

// Flush forces any pending autosave through, for shutdown paths
func (s *Store) Flush(ctx context.Context) {
	s.mu.Lock()
	dirty := s.dirty
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if dirty {
		s.save(ctx)
	}
}

// UploadAvatar posts a new avatar image and records its URL on the profile
func (s *Store) UploadAvatar(ctx context.Context, path string) error {
	s.mu.Lock()
	id := s.profile.ID
	s.mu.Unlock()

	url, err := s.api.UploadAvatar(ctx, id, path)
	if err != nil {
		s.logger.Warn("avatar upload failed", zap.Error(err))
		return err
	}

	s.Edit(func(p *model.Profile) { p.AvatarURL = url })
	return nil
}

// save is the single-flight save: one request in flight, at most one
// queued follow-up when edits landed while saving.
func (s *Store) save(ctx context.Context) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return
	}
	if s.saving {
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.saving = true
	s.dirty = false
	snapshot := s.profile
	s.mu.Unlock()

	saved, err := s.api.Update(ctx, snapshot.ID, snapshot)
	if errors.Is(err, client.ErrNotFound) {
		// First save for this user; fall back to create
		saved, err = s.api.Create(ctx, snapshot)
	}

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.logger.Warn("profile save failed", zap.Int("profileID", snapshot.ID), zap.Error(err))
		s.lastError = "could not save profile"
		s.dirty = true
	} else {
		s.lastError = ""
		if saved != nil && saved.ID != 0 && s.profile.ID == 0 {
			s.profile.ID = saved.ID
		}
	}
	pending := s.pending
	s.pending = false
	s.mu.Unlock()

	if pending {
		s.save(ctx)
	}
}
