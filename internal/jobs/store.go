package jobs

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// WriteAPI is the slice of the job client used for mutations
type WriteAPI interface {
	Get(ctx context.Context, id int) (*model.Job, error)
	Post(ctx context.Context, create model.JobCreate) (*model.Job, error)
	Update(ctx context.Context, id int, create model.JobCreate) (*model.Job, error)
	Delete(ctx context.Context, id int) error
}

// Store is the shared job collection: list, detail, and apply surfaces all
// read the same cache instead of re-fetching per page
type Store struct {
	source Source
	api    WriteAPI
	logger *zap.Logger

	mu      sync.Mutex
	jobs    []model.Job
	fetched bool
}

// NewStore creates a job store over the given source
func NewStore(source Source, api WriteAPI, logger *zap.Logger) *Store {
	return &Store{source: source, api: api, logger: logger}
}

// Refresh reloads the cache from the source
func (s *Store) Refresh(ctx context.Context) error {
	jobs, err := s.source.Jobs(ctx)
	if err != nil {
		s.logger.Warn("failed to refresh jobs", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = jobs
	s.fetched = true
	return nil
}

// All returns a copy of the cached collection, fetching it on first use
func (s *Store) All(ctx context.Context) ([]model.Job, error) {
	s.mu.Lock()
	fetched := s.fetched
	s.mu.Unlock()

	if !fetched {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Job, len(s.jobs))
	copy(out, s.jobs)
	return out, nil
}

// Get returns one job, served from cache when present
func (s *Store) Get(ctx context.Context, id int) (*model.Job, error) {
	s.mu.Lock()
	for _, job := range s.jobs {
		if job.ID == id {
			s.mu.Unlock()
			copied := job
			return &copied, nil
		}
	}
	s.mu.Unlock()

	return s.api.Get(ctx, id)
}

// Search runs the client-side filter/sort pipeline over the cache
func (s *Store) Search(ctx context.Context, c Criteria, order SortOrder) ([]model.Job, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return Search(all, c, order), nil
}

// Post creates a job and folds it into the cache
func (s *Store) Post(ctx context.Context, create model.JobCreate) (*model.Job, error) {
	job, err := s.api.Post(ctx, create)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetched {
		s.jobs = append(s.jobs, *job)
	}
	return job, nil
}

// Update replaces a job and refreshes its cache entry
func (s *Store) Update(ctx context.Context, id int, create model.JobCreate) (*model.Job, error) {
	job, err := s.api.Update(ctx, id, create)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs[i] = *job
			break
		}
	}
	return job, nil
}

// Delete removes a job from the backend and the cache
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			break
		}
	}
	return nil
}
