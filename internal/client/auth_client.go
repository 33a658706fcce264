package client

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// AuthClient handles communication with the authentication endpoints
type AuthClient struct {
	api    *Client
	logger *zap.Logger
}

// NewAuthClient creates a new authentication client
func NewAuthClient(api *Client, logger *zap.Logger) *AuthClient {
	return &AuthClient{api: api, logger: logger}
}

// Login authenticates with email/password and returns the token response
func (c *AuthClient) Login(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error) {
	var resp model.TokenResponse
	if err := c.api.do(ctx, "POST", "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginWithGoogle exchanges a third-party identity credential for a session
func (c *AuthClient) LoginWithGoogle(ctx context.Context, login model.GoogleLogin) (*model.TokenResponse, error) {
	var resp model.TokenResponse
	if err := c.api.do(ctx, "POST", "/auth/google", login, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the backend that the session is ending
func (c *AuthClient) Logout(ctx context.Context) error {
	return c.api.do(ctx, "POST", "/auth/logout", nil, nil)
}

// Validate checks the given token with the backend and returns the
// associated user on success
func (c *AuthClient) Validate(ctx context.Context, token string) (*model.User, error) {
	body := struct {
		Token string `json:"token"`
	}{Token: token}

	var resp struct {
		Valid bool       `json:"valid"`
		User  model.User `json:"user"`
	}
	if err := c.api.do(ctx, "POST", "/auth/validate", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &resp.User, nil
}

// Refresh exchanges a refresh token for a fresh token pair
func (c *AuthClient) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken}

	var resp model.TokenResponse
	if err := c.api.do(ctx, "POST", "/auth/refresh", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. The backend does not return a session;
// the caller logs in separately.
func (c *AuthClient) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	var user model.User
	if err := c.api.do(ctx, "POST", "/users/register", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SendOTP asks the backend to mail a one-time password to the address
func (c *AuthClient) SendOTP(ctx context.Context, email string) error {
	return c.api.do(ctx, "POST", "/users/sendOTP/"+url.PathEscape(email), nil, nil)
}

// VerifyOTP checks a one-time password for the address
func (c *AuthClient) VerifyOTP(ctx context.Context, email, otp string) (bool, error) {
	var resp struct {
		Verified bool `json:"verified"`
	}
	path := "/users/verifyOtp/" + url.PathEscape(email) + "/" + url.PathEscape(otp)
	if err := c.api.get(ctx, path, &resp); err != nil {
		return false, err
	}
	return resp.Verified, nil
}

// ChangePassword sets a new password for the account
func (c *AuthClient) ChangePassword(ctx context.Context, change model.PasswordChange) error {
	return c.api.do(ctx, "POST", "/users/changePass", change, nil)
}
