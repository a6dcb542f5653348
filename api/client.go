// Package api is the session-aware client for the upstream dealer REST API.
// It attaches the bearer token when one exists, classifies every response
// into success / unauthorized / rejected / unreachable, and never retries:
// the dashboard treats failures as terminal per attempt and shows them to
// the user.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	errs "github.com/dealerdash/dashboard-gateway/internal/errors"
)

const maxErrorBodyBytes = 8 << 10

// TokenSource returns the current bearer token, or "" when there is none.
// Reading through a function keeps the client honest about session changes:
// a cleared session immediately stops authenticating requests.
type TokenSource func() string

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	log        zerolog.Logger
	metrics    *Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a client for the API at baseURL. token may be nil for a client
// that only calls unauthenticated endpoints.
func New(baseURL string, token TokenSource, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[api.New] base URL is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		token:      token,
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// Login authenticates against POST /api/login. No bearer header is sent:
// the endpoint is public.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the token server-side via POST /api/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// Countries fetches the country list. Public endpoint, but the token is sent
// when present.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	return getList[Country](ctx, c, "/api/countries")
}

// Cars fetches all car profiles visible to the token.
func (c *Client) Cars(ctx context.Context) ([]Car, error) {
	return getList[Car](ctx, c, "/api/cars")
}

// Expenses fetches the expense entries.
func (c *Client) Expenses(ctx context.Context) ([]Expense, error) {
	return getList[Expense](ctx, c, "/api/expenses")
}

// Inventory fetches the inventory records.
func (c *Client) Inventory(ctx context.Context) ([]InventoryItem, error) {
	return getList[InventoryItem](ctx, c, "/api/inventory")
}

func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var payload listPayload[T]
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// do issues a single request and classifies the result. 401 and 403 map to
// ErrUnauthorized (the caller clears the session and redirects to login),
// any other non-2xx to *RejectedError, and transport failure to
// *UnreachableError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[Client.do] marshal %s %s", method, path)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] new request %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The Authorization header is attached only when a token actually
	// exists. An absent token means no header at all, never a literal
	// placeholder the upstream cannot distinguish from garbage.
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.recordLatency(time.Since(start))
	if err != nil {
		c.metrics.recordOutcome(OutcomeUnreachable)
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("upstream unreachable")
		return &UnreachableError{cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.metrics.recordStatus(resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.metrics.recordOutcome(OutcomeUnauthorized)
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("upstream rejected token")
		return errors.Wrapf(errs.ErrUnauthorized, "[Client.do] %s %s", method, path)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.metrics.recordOutcome(OutcomeRejected)
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("upstream rejected request")
		return &RejectedError{Status: resp.StatusCode, Body: string(snippet)}
	}

	c.metrics.recordOutcome(OutcomeOK)

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UnreachableError{cause: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "[Client.do] decode %s %s", method, path)
	}
	return nil
}
