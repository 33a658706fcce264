package model

import (
	"time"
)

// Job lifecycle states as spelled by the backend.
const (
	JobActive = "ACTIVE"
	JobClosed = "CLOSED"
)

// LakhRupees is the divisor converting a raw package figure to lakhs,
// the unit the salary filter operates in.
const LakhRupees = 100000

// Job represents a posted job listing
type Job struct {
	ID             int       `json:"id"`
	JobTitle       string    `json:"jobTitle"`
	Company        string    `json:"company"`
	CompanyLogo    string    `json:"companyLogo,omitempty"`
	Location       string    `json:"location"`
	JobType        string    `json:"jobType"`
	Experience     string    `json:"experience"`
	PackageOffered int64     `json:"packageOffered"`
	Description    string    `json:"description"`
	SkillsRequired []string  `json:"skillsRequired"`
	Applicants     int       `json:"applicants"`
	PostTime       time.Time `json:"postTime"`
	JobStatus      string    `json:"jobStatus"`
}

// PackageLakhs returns the offered package expressed in lakhs.
func (j Job) PackageLakhs() float64 {
	return float64(j.PackageOffered) / LakhRupees
}

// JobCreate represents data for posting a new job
type JobCreate struct {
	JobTitle       string   `json:"jobTitle" binding:"required" validate:"required"`
	Company        string   `json:"company" binding:"required" validate:"required"`
	CompanyLogo    string   `json:"companyLogo,omitempty"`
	Location       string   `json:"location" binding:"required" validate:"required"`
	JobType        string   `json:"jobType" binding:"required" validate:"required"`
	Experience     string   `json:"experience"`
	PackageOffered int64    `json:"packageOffered" binding:"required" validate:"required,gt=0"`
	Description    string   `json:"description"`
	SkillsRequired []string `json:"skillsRequired"`
}
