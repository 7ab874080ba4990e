// Package rest implements the api contracts against the CollabHub HTTP
// backend. All endpoints speak JSON; identifiers are opaque strings and
// email is the identity key throughout.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/collabhub/coordinator/internal/platform/config"
	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/platform/id"
	"github.com/collabhub/coordinator/internal/services/coordinator/api"
)

// Config holds rest client configuration.
type Config struct {
	BaseURL    string        `env:"COLLABHUB_API_BASE_URL"`
	Timeout    time.Duration `env:"COLLABHUB_API_TIMEOUT" envDefault:"10s"`
	MaxRetries uint          `env:"COLLABHUB_API_MAX_RETRIES" envDefault:"3"`
}

// LoadConfigFromEnv reads rest client configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return Config{}, fmt.Errorf("COLLABHUB_API_BASE_URL is required")
	}
	return cfg, nil
}

// Client is the HTTP implementation of every api contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
	maxTries   uint
}

var _ api.Backend = (*Client)(nil)

// NewClient creates a rest client. token supplies the bearer token for the
// active session and may be nil for unauthenticated calls.
func NewClient(cfg Config, token func() string) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxTries := cfg.MaxRetries
	if maxTries == 0 {
		maxTries = 1
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		token:      token,
		maxTries:   maxTries,
	}, nil
}

// getJSON performs an idempotent read with bounded exponential retry.
// Mutations never go through this path: non-idempotent calls must not be
// replayed without dedup protection.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	op := func() (struct{}, error) {
		err := c.doJSON(ctx, http.MethodGet, path, query, nil, out)
		if err != nil && !isRetryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	return err
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID, err := id.NewID(); err == nil {
		req.Header.Set("X-Request-Id", requestID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNetworkUnavailable, "backend unreachable", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return statusError(path, res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// statusError maps a non-2xx response to a typed error. The 404 sentinel is
// shared so lookup callers can treat a miss as a valid empty outcome.
func statusError(path string, res *http.Response) error {
	message := readErrorMessage(res.Body)
	switch {
	case res.StatusCode == http.StatusNotFound:
		return api.ErrNotFound
	case res.StatusCode == http.StatusConflict:
		if message == "" {
			message = "invitation already resolved"
		}
		return apperrors.New(apperrors.CodeInviteInvalidTransition, message)
	case res.StatusCode == http.StatusUnauthorized:
		if message == "" {
			message = "session token rejected"
		}
		return apperrors.New(apperrors.CodeSessionTokenInvalid, message)
	case res.StatusCode >= 500:
		if message == "" {
			message = "backend error"
		}
		return apperrors.WithMetadata(apperrors.CodeNetworkUnavailable, message,
			map[string]string{"path": path, "status": fmt.Sprint(res.StatusCode)})
	default:
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", res.StatusCode)
		}
		return apperrors.WithMetadata(apperrors.CodeUnknown, message,
			map[string]string{"path": path, "status": fmt.Sprint(res.StatusCode)})
	}
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func isRetryable(err error) bool {
	return apperrors.CodeOf(err) == apperrors.CodeNetworkUnavailable
}
