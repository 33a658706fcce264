package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

func fixtureJobs() []model.Job {
	base := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	types := []string{"Full-time", "Part-time", "Contract"}
	jobs := make([]model.Job, 0, 15)
	for i := 0; i < 15; i++ {
		jobs = append(jobs, model.Job{
			ID:             i + 1,
			JobTitle:       "Engineer",
			Company:        "Acme",
			Location:       "Pune",
			JobType:        types[i%3],
			Experience:     "2+ years",
			PackageOffered: int64(300000 + i*100000), // 3L .. 17L
			Description:    "build things",
			SkillsRequired: []string{"Go", "SQL"},
			PostTime:       base.Add(time.Duration(i) * time.Hour),
			JobStatus:      model.JobActive,
		})
	}
	return jobs
}

func TestFilterJobTypeCaseInsensitive(t *testing.T) {
	jobs := fixtureJobs()

	got := Filter(jobs, Criteria{JobType: "full-time"})

	require.NotEmpty(t, got)
	for _, job := range got {
		require.Equal(t, "Full-time", job.JobType)
	}
	// every third fixture job is Full-time
	require.Len(t, got, 5)
}

func TestFilterSalaryRangeInclusive(t *testing.T) {
	jobs := fixtureJobs()

	r := [2]float64{5, 10}
	got := Filter(jobs, Criteria{SalaryRange: &r})

	require.NotEmpty(t, got)
	for _, job := range got {
		lakhs := job.PackageLakhs()
		require.GreaterOrEqual(t, lakhs, 5.0)
		require.LessOrEqual(t, lakhs, 10.0)
	}
	// 5L through 10L inclusive: packages 500000..1000000
	require.Len(t, got, 6)
}

func TestFilterExcludesClosedJobs(t *testing.T) {
	jobs := fixtureJobs()
	jobs[0].JobStatus = model.JobClosed
	jobs[7].JobStatus = model.JobClosed

	got := Filter(jobs, Criteria{})

	require.Len(t, got, 13)
	for _, job := range got {
		require.Equal(t, model.JobActive, job.JobStatus)
	}
}

func TestFilterSkillsOverlap(t *testing.T) {
	jobs := fixtureJobs()
	jobs[3].SkillsRequired = []string{"Kubernetes", "Terraform"}

	got := Filter(jobs, Criteria{Skills: []string{"kubernetes"}})

	require.Len(t, got, 1)
	require.Equal(t, 4, got[0].ID)
}

func TestSortSalaryHighLow(t *testing.T) {
	jobs := []model.Job{
		{ID: 1, JobTitle: "A", PackageOffered: 500000},
		{ID: 2, JobTitle: "B", PackageOffered: 1200000},
		{ID: 3, JobTitle: "C", PackageOffered: 800000},
	}

	got := Sort(jobs, SortSalaryHighLow)

	require.Equal(t, []string{"B", "C", "A"}, []string{got[0].JobTitle, got[1].JobTitle, got[2].JobTitle})
	// input untouched
	require.Equal(t, "A", jobs[0].JobTitle)
}

func TestSortMostRecent(t *testing.T) {
	jobs := fixtureJobs()

	got := Sort(jobs, SortMostRecent)

	for i := 1; i < len(got); i++ {
		require.False(t, got[i].PostTime.After(got[i-1].PostTime))
	}
}

func TestSortRelevanceKeepsInputOrder(t *testing.T) {
	jobs := fixtureJobs()

	got := Sort(jobs, SortRelevance)

	for i, job := range got {
		require.Equal(t, jobs[i].ID, job.ID)
	}
}

func TestSearchCapsResults(t *testing.T) {
	got := Search(fixtureJobs(), Criteria{}, SortRelevance)
	require.Len(t, got, MaxResults)
}

func TestSearchQueryMatchesSkills(t *testing.T) {
	jobs := fixtureJobs()
	jobs[9].SkillsRequired = []string{"Rust"}

	got := Search(jobs, Criteria{Query: "rust"}, SortRelevance)

	require.Len(t, got, 1)
	require.Equal(t, 10, got[0].ID)
}
