package jobs

import (
	"sort"
	"strings"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// MaxResults is the hard cap on results returned by Search.
const MaxResults = 12

// SortOrder selects how filtered jobs are ordered
type SortOrder int

const (
	// SortRelevance keeps the input order
	SortRelevance SortOrder = iota
	// SortMostRecent orders by post time, newest first
	SortMostRecent
	// SortSalaryLowHigh orders by offered package ascending
	SortSalaryLowHigh
	// SortSalaryHighLow orders by offered package descending
	SortSalaryHighLow
)

// Criteria holds the client-side job filters. Zero values mean "no filter".
// SalaryRange is expressed in lakhs, inclusive on both ends.
type Criteria struct {
	Query       string
	Location    string
	JobType     string
	Experience  string
	Company     string
	SalaryRange *[2]float64
	Skills      []string
}

// Filter applies the criteria in sequence and restricts to ACTIVE jobs.
// All text matching is case-insensitive substring matching.
func Filter(jobs []model.Job, c Criteria) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if !matches(job, c) {
			continue
		}
		if job.JobStatus != model.JobActive {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matches(job model.Job, c Criteria) bool {
	if c.Query != "" && !matchesQuery(job, c.Query) {
		return false
	}
	if c.Location != "" && !contains(job.Location, c.Location) {
		return false
	}
	if c.JobType != "" && !strings.EqualFold(job.JobType, c.JobType) {
		return false
	}
	if c.Experience != "" && !contains(job.Experience, c.Experience) {
		return false
	}
	if c.Company != "" && !contains(job.Company, c.Company) {
		return false
	}
	if c.SalaryRange != nil {
		lakhs := job.PackageLakhs()
		if lakhs < c.SalaryRange[0] || lakhs > c.SalaryRange[1] {
			return false
		}
	}
	if len(c.Skills) > 0 && !skillsOverlap(job.SkillsRequired, c.Skills) {
		return false
	}
	return true
}

// matchesQuery checks the free-text query against title, company,
// description, and required skills
func matchesQuery(job model.Job, query string) bool {
	if contains(job.JobTitle, query) ||
		contains(job.Company, query) ||
		contains(job.Description, query) {
		return true
	}
	for _, skill := range job.SkillsRequired {
		if contains(skill, query) {
			return true
		}
	}
	return false
}

// skillsOverlap reports whether any wanted skill substring-matches any
// required skill
func skillsOverlap(required, wanted []string) bool {
	for _, w := range wanted {
		for _, r := range required {
			if contains(r, w) {
				return true
			}
		}
	}
	return false
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Sort re-orders jobs stably by the given order, leaving the input intact
func Sort(jobs []model.Job, order SortOrder) []model.Job {
	out := make([]model.Job, len(jobs))
	copy(out, jobs)

	switch order {
	case SortMostRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PostTime.After(out[j].PostTime)
		})
	case SortSalaryLowHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PackageOffered < out[j].PackageOffered
		})
	case SortSalaryHighLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PackageOffered > out[j].PackageOffered
		})
	}

	return out
}

// Search filters, sorts, and caps to the first MaxResults jobs
func Search(jobs []model.Job, c Criteria, order SortOrder) []model.Job {
	result := Sort(Filter(jobs, c), order)
	if len(result) > MaxResults {
		result = result[:MaxResults]
	}
	return result
}
