package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/config"
)

// Client is the shared HTTP core behind the per-resource wrappers. It owns
// the base URL, bearer-token injection, error-body parsing, retry of
// idempotent requests, and the authorization-failure interception hook.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	logger        *zap.Logger
	retryMax      int
	retryInterval time.Duration

	mu            sync.RWMutex
	tokenProvider func() string
	onAuthFailure func()
}

// New creates a new API client core
func New(cfg config.APIConfig, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:        logger,
		retryMax:      cfg.RetryMax,
		retryInterval: cfg.RetryInterval,
	}
}

// SetTokenProvider installs the function used to read the current bearer
// token. An empty return means the request goes out unauthenticated.
func (c *Client) SetTokenProvider(fn func() string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenProvider = fn
}

// SetAuthFailureHandler installs the hook invoked whenever an authenticated
// request comes back 401/403. The session store uses this to force logout
// independent of the calling code path.
func (c *Client) SetAuthFailureHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthFailure = fn
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokenProvider == nil {
		return ""
	}
	return c.tokenProvider()
}

func (c *Client) authFailed() {
	c.mu.RLock()
	fn := c.onAuthFailure
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// get performs a GET with bounded exponential backoff. Only GETs are
// retried; mutations go out exactly once.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	interval := c.retryInterval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	retries := uint64(0)
	if c.retryMax > 1 {
		retries = uint64(c.retryMax - 1)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(backoff.WithInitialInterval(interval)), retries),
		ctx,
	)

	return backoff.Retry(func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		// HTTP-level failures are not transient; only transport errors retry
		var apiErr *APIError
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) || errors.As(err, &apiErr) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}

// do performs a single request: marshals body, attaches the bearer token if
// one is available, and decodes the JSON response into out (may be nil).
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	authed := false
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		authed = true
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.logger.Warn("authorization rejected",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode))
		if authed {
			c.authFailed()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Error("failed to decode response",
				zap.String("path", path),
				zap.Error(err))
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// doMultipart posts a file as multipart form data, used for avatar upload
func (c *Client) doMultipart(ctx context.Context, path string, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	authed := false
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		authed = true
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if authed {
			c.authFailed()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// parseError extracts a structured message from a non-2xx body, falling
// back to a generic status-code message when the body is not JSON
func (c *Client) parseError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)

	var parsed struct {
		ErrorMessage string `json:"errorMessage"`
		Message      string `json:"message"`
		Error        string `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(bodyBytes, &parsed); err == nil {
		switch {
		case parsed.ErrorMessage != "":
			message = parsed.ErrorMessage
		case parsed.Message != "":
			message = parsed.Message
		case parsed.Error != "":
			message = parsed.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	c.logger.Debug("backend returned error",
		zap.Int("status_code", resp.StatusCode),
		zap.String("message", message))

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
