package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// Source supplies the job collection. The production source is the backend
// API; the static source serves deterministic placeholder data for tests
// and offline development. Keeping the two behind one interface keeps
// placeholder generation out of the fetch path.
type Source interface {
	Jobs(ctx context.Context) ([]model.Job, error)
}

// JobAPI is the slice of the job client the API source depends on
type JobAPI interface {
	GetAll(ctx context.Context) ([]model.Job, error)
}

// APISource fetches jobs from the backend
type APISource struct {
	api JobAPI
}

// NewAPISource creates a backend-backed source
func NewAPISource(api JobAPI) *APISource {
	return &APISource{api: api}
}

// Jobs fetches all job listings from the backend
func (s *APISource) Jobs(ctx context.Context) ([]model.Job, error) {
	return s.api.GetAll(ctx)
}

// StaticSource serves a fixed set of placeholder jobs
type StaticSource struct {
	jobs []model.Job
}

// NewStaticSource creates a source serving the given jobs, or a default
// placeholder set when none are given
func NewStaticSource(jobs ...model.Job) *StaticSource {
	if len(jobs) == 0 {
		jobs = placeholderJobs()
	}
	return &StaticSource{jobs: jobs}
}

// Jobs returns the fixed job set
func (s *StaticSource) Jobs(ctx context.Context) ([]model.Job, error) {
	out := make([]model.Job, len(s.jobs))
	copy(out, s.jobs)
	return out, nil
}

// placeholderJobs builds a deterministic sample set covering the job types,
// locations, and salary bands the filters distinguish
func placeholderJobs() []model.Job {
	titles := []string{
		"Frontend Developer", "Backend Engineer", "Data Analyst",
		"Product Designer", "DevOps Engineer",
	}
	companies := []string{"Lumenly", "Craftbyte", "Norvik Labs"}
	locations := []string{"Bangalore", "Pune", "Remote"}
	types := []string{"Full-time", "Part-time", "Contract"}

	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	jobs := make([]model.Job, 0, 15)
	for i := 0; i < 15; i++ {
		jobs = append(jobs, model.Job{
			ID:             i + 1,
			JobTitle:       titles[i%len(titles)],
			Company:        companies[i%len(companies)],
			Location:       locations[i%len(locations)],
			JobType:        types[i%len(types)],
			Experience:     fmt.Sprintf("%d+ years", 1+i%5),
			PackageOffered: int64(400000 + i*100000),
			Description:    fmt.Sprintf("Opening %d at %s", i+1, companies[i%len(companies)]),
			SkillsRequired: []string{"Communication", titles[i%len(titles)]},
			Applicants:     i * 3,
			PostTime:       base.Add(time.Duration(i) * 24 * time.Hour),
			JobStatus:      model.JobActive,
		})
	}
	return jobs
}
