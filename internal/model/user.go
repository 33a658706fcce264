package model

// AccountType distinguishes job seekers from employers.
const (
	AccountTypeApplicant = "APPLICANT"
	AccountTypeEmployer  = "EMPLOYER"
)

// User represents the authenticated account as exposed to the rest of the app
type User struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccountType string `json:"accountType"`
	AvatarURL   string `json:"avatar,omitempty"`
}

// Credentials represents a standard email/password login request
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Registration represents the data for creating a new account
type Registration struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	AccountType string `json:"accountType" validate:"required,oneof=APPLICANT EMPLOYER"`
}

// GoogleLogin represents a third-party identity credential exchange request
type GoogleLogin struct {
	Credential  string `json:"credential"`
	AccountType string `json:"accountType"`
}

// TokenResponse represents the backend's response to a successful
// login, Google login, or refresh exchange
type TokenResponse struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// StoredSession is the durable slice of session state written to local
// storage. The token is persisted separately as its own key so the client
// layer can read it without deserializing the whole slice.
type StoredSession struct {
	User         User   `json:"user"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// PasswordChange represents a change-password request
type PasswordChange struct {
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=8"`
}
