// Package session holds the auth/session state machine: token bootstrap on
// startup, login in its several variants, logout, and forced logout when
// the backend rejects a bearer token mid-session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/storage"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/validate"
)

// AuthAPI is the slice of the auth client the session store depends on
type AuthAPI interface {
	Login(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error)
	LoginWithGoogle(ctx context.Context, login model.GoogleLogin) (*model.TokenResponse, error)
	Logout(ctx context.Context) error
	Validate(ctx context.Context, token string) (*model.User, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error)
	Register(ctx context.Context, reg model.Registration) (*model.User, error)
}

// State is a snapshot of session state. Invariant: Authenticated is true
// iff Token is non-empty and User is non-nil.
type State struct {
	User          *model.User
	Token         string
	RefreshToken  string
	Authenticated bool
	Initialized   bool
	Loading       bool
	LastError     string
}

// Store is the session state machine. All mutations go through its methods;
// callers observe state via Snapshot and OnChange.
type Store struct {
	auth         AuthAPI
	storage      storage.Store
	logger       *zap.Logger
	dismissAfter time.Duration
	redirect     func()

	mu        sync.Mutex
	state     State
	listeners []func(State)
	errTimer  *time.Timer
}

// Option configures a Store
type Option func(*Store)

// WithRedirect sets the function invoked when an authorization failure
// forces the user back to the login entry point
func WithRedirect(fn func()) Option {
	return func(s *Store) { s.redirect = fn }
}

// WithErrorDismiss sets how long user-facing errors stay visible
func WithErrorDismiss(d time.Duration) Option {
	return func(s *Store) { s.dismissAfter = d }
}

// NewStore creates a new session store
func NewStore(auth AuthAPI, store storage.Store, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		auth:         auth,
		storage:      store,
		logger:       logger,
		dismissAfter: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

// OnChange registers a listener invoked after every state transition
func (s *Store) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Token returns the current bearer token; wired into the client layer as
// its token provider
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// AutoLogin restores a persisted session. It runs at most once per process:
// later calls are no-ops once the session is initialized. With no stored
// token it resolves locally without touching the network. A stored token is
// validated with the backend, with a one-shot refresh exchange when
// validation rejects it. Any failure ends unauthenticated but initialized;
// startup never fails on network errors.
func (s *Store) AutoLogin(ctx context.Context) {
	s.mu.Lock()
	if s.state.Initialized || s.state.Loading {
		s.mu.Unlock()
		return
	}

	token := s.storage.Token()
	if token == "" {
		s.state.Initialized = true
		s.notifyLocked()
		s.mu.Unlock()
		return
	}

	s.state.Loading = true
	s.notifyLocked()
	s.mu.Unlock()

	refreshToken := ""
	if stored, ok := s.storage.Session(); ok {
		refreshToken = stored.RefreshToken
	}

	user, token, refreshToken, ok := s.bootstrap(ctx, token, refreshToken)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.state.Initialized = true
	if ok {
		s.applySessionLocked(user, token, refreshToken)
	} else {
		s.clearSessionLocked()
	}
	s.notifyLocked()
}

// bootstrap validates the stored token, falling back to one refresh
// exchange. Returns the resolved identity, or ok=false after clearing
// durable tokens.
func (s *Store) bootstrap(ctx context.Context, token, refreshToken string) (*model.User, string, string, bool) {
	// An unexpired token gets one validation round-trip; a locally expired
	// one skips straight to the refresh exchange
	if !tokenExpired(token) {
		user, err := s.auth.Validate(ctx, token)
		if err == nil {
			return user, token, refreshToken, true
		}
		s.logger.Debug("stored token rejected", zap.Error(err))
	}

	if refreshToken == "" {
		s.logger.Info("no refresh token available, starting unauthenticated")
		s.clearDurable()
		return nil, "", "", false
	}

	resp, err := s.auth.Refresh(ctx, refreshToken)
	if err != nil {
		s.logger.Info("token refresh failed, starting unauthenticated", zap.Error(err))
		s.clearDurable()
		return nil, "", "", false
	}

	if err := s.storage.SetToken(resp.AccessToken); err != nil {
		s.logger.Warn("failed to persist refreshed token", zap.Error(err))
	}
	if err := s.storage.SetSession(&model.StoredSession{User: resp.User, RefreshToken: resp.RefreshToken}); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}

	user := resp.User
	return &user, resp.AccessToken, resp.RefreshToken, true
}

// Login authenticates with email/password. Concurrent calls are not
// deduplicated; the caller disables its submit control while Loading.
func (s *Store) Login(ctx context.Context, creds model.Credentials) error {
	if err := validate.Credentials(creds); err != nil {
		return err
	}

	s.setLoading(true)

	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.failLogin("login failed", err)
		return err
	}

	s.completeLogin(resp)
	return nil
}

// LoginWithGoogle exchanges a third-party identity credential plus a chosen
// role for a session
func (s *Store) LoginWithGoogle(ctx context.Context, credential, accountType string) error {
	s.setLoading(true)

	resp, err := s.auth.LoginWithGoogle(ctx, model.GoogleLogin{
		Credential:  credential,
		AccountType: accountType,
	})
	if err != nil {
		s.failLogin("google login failed", err)
		return err
	}

	s.completeLogin(resp)
	return nil
}

// Register creates an account. On success the session stays unauthenticated;
// the caller invokes Login separately.
func (s *Store) Register(ctx context.Context, reg model.Registration) error {
	if err := validate.Registration(reg); err != nil {
		return err
	}

	s.setLoading(true)

	if _, err := s.auth.Register(ctx, reg); err != nil {
		s.failLogin("registration failed", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.notifyLocked()
	return nil
}

// Logout notifies the backend on a best-effort basis, then unconditionally
// clears in-memory and durable state. It never returns an error.
func (s *Store) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Warn("backend logout failed, clearing local session anyway", zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSessionLocked()
	s.notifyLocked()
}

// HandleAuthFailure is wired into the client layer as its auth-failure
// handler: the backend rejected a bearer token mid-session, so the session
// is cleared and the user sent back to the login entry point.
func (s *Store) HandleAuthFailure() {
	s.logger.Info("authorization rejected mid-session, forcing logout")

	s.mu.Lock()
	wasAuthenticated := s.state.Authenticated
	s.clearSessionLocked()
	s.notifyLocked()
	redirect := s.redirect
	s.mu.Unlock()

	if wasAuthenticated && redirect != nil {
		redirect()
	}
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
	s.state.LastError = ""
	s.notifyLocked()
}

func (s *Store) completeLogin(resp *model.TokenResponse) {
	if err := s.storage.SetToken(resp.AccessToken); err != nil {
		s.logger.Warn("failed to persist token", zap.Error(err))
	}
	if err := s.storage.SetSession(&model.StoredSession{User: resp.User, RefreshToken: resp.RefreshToken}); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	user := resp.User
	s.applySessionLocked(&user, resp.AccessToken, resp.RefreshToken)
	s.notifyLocked()
}

func (s *Store) failLogin(what string, err error) {
	s.logger.Debug(what, zap.Error(err))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.setErrorLocked(userMessage(err))
	s.notifyLocked()
}

// setErrorLocked records a user-facing error and arms its auto-dismiss
// timer. Caller holds the lock.
func (s *Store) setErrorLocked(msg string) {
	s.state.LastError = msg
	if s.errTimer != nil {
		s.errTimer.Stop()
	}
	if s.dismissAfter <= 0 {
		return
	}
	s.errTimer = time.AfterFunc(s.dismissAfter, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state.LastError == msg {
			s.state.LastError = ""
			s.notifyLocked()
		}
	})
}

func (s *Store) applySessionLocked(user *model.User, token, refreshToken string) {
	s.state.User = user
	s.state.Token = token
	s.state.RefreshToken = refreshToken
	s.state.Authenticated = user != nil && token != ""
	s.state.LastError = ""
}

func (s *Store) clearSessionLocked() {
	s.clearDurable()
	s.state.User = nil
	s.state.Token = ""
	s.state.RefreshToken = ""
	s.state.Authenticated = false
}

func (s *Store) clearDurable() {
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted session", zap.Error(err))
	}
}

func (s *Store) copyStateLocked() State {
	state := s.state
	if s.state.User != nil {
		user := *s.state.User
		state.User = &user
	}
	return state
}

func (s *Store) notifyLocked() {
	state := s.copyStateLocked()
	for _, fn := range s.listeners {
		fn(state)
	}
}

// userMessage converts an error into text fit for a transient banner
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the backend's job. Unparseable tokens are
// treated as expired.
func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
