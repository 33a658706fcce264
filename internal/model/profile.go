package model

// Profile represents a user's editable profile
type Profile struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Title          string          `json:"title"`
	Location       string          `json:"location"`
	Experience     string          `json:"experience"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Company        string          `json:"company"`
	About          string          `json:"about"`
	Skills         []string        `json:"skills"`
	AvatarURL      string          `json:"avatar,omitempty"`
	Experiences    []Experience    `json:"experiences"`
	Certifications []Certification `json:"certifications"`
	Stats          ProfileStats    `json:"stats"`
}

// Experience represents a single work-history entry
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Certification represents a certification entry
type Certification struct {
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issueDate"`
	CertificateID string `json:"certificateId"`
}

// ProfileStats represents the aggregate counters shown on a profile
type ProfileStats struct {
	Projects    int     `json:"projects"`
	Followers   int     `json:"followers"`
	SuccessRate float64 `json:"successRate"`
	Rating      float64 `json:"rating"`
}
