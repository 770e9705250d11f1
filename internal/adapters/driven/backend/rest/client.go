package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// HeaderRequestID tags every request for correlation in backend logs.
	HeaderRequestID = "X-Request-ID"

	// maxResponseBody bounds successful response bodies.
	maxResponseBody = 16 << 20
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:5025/api".
	BaseURL string

	// Timeout bounds each request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// RatePerSecond throttles requests. Zero disables throttling.
	RatePerSecond int

	// Transport overrides the base round tripper (tests).
	Transport http.RoundTripper
}

// Client talks to the hospital backend.
type Client struct {
	baseURL *url.URL
	plain   *http.Client
	authed  *http.Client
	tokens  *SessionTokenSource
	limiter *rate.Limiter
}

// NewClient creates a backend client. Authenticated calls read tokens from
// sessions and persist refreshed sessions back to it.
func NewClient(cfg Config, sessions driven.SessionStore) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: backend url %q", domain.ErrInvalidInput, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	limit := rate.Inf
	burst := 0
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
		burst = cfg.RatePerSecond
	}

	c := &Client{
		baseURL: base,
		plain:   &http.Client{Timeout: timeout, Transport: transport},
		limiter: rate.NewLimiter(limit, burst),
	}
	c.tokens = NewSessionTokenSource(sessions, c.Refresh)
	c.authed = &http.Client{
		Timeout:   timeout,
		Transport: &oauth2.Transport{Source: c.tokens, Base: transport},
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var resp jwtAuthResponse
	err := c.do(ctx, c.plain, http.MethodPost, "/auth/login", nil,
		loginRequest{Username: creds.Username, Password: creds.Password}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", domain.ErrAuthInvalid, apiErr.Message)
		}
		return nil, err
	}
	return resp.toDomain(), nil
}

// Refresh exchanges a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	var resp jwtAuthResponse
	if err := c.do(ctx, c.plain, http.MethodPost, "/auth/refresh-token", nil,
		refreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// SearchPatients calls GET /patients/search.
func (c *Client) SearchPatients(
	ctx context.Context, query string, page domain.Pageable,
) (*domain.Page[domain.Patient], error) {
	params := pageParams(page)
	if q := strings.TrimSpace(query); q != "" {
		params.Set("query", q)
	}
	var resp pageDTO[patientDTO]
	if err := c.authedDo(ctx, http.MethodGet, "/patients/search", params, nil, &resp); err != nil {
		return nil, err
	}
	return toDomainPage(&resp, (*patientDTO).toDomain), nil
}

// ListPatients calls GET /patients.
func (c *Client) ListPatients(ctx context.Context, page domain.Pageable) (*domain.Page[domain.Patient], error) {
	var resp pageDTO[patientDTO]
	if err := c.authedDo(ctx, http.MethodGet, "/patients", pageParams(page), nil, &resp); err != nil {
		return nil, err
	}
	return toDomainPage(&resp, (*patientDTO).toDomain), nil
}

// SearchConsumables calls GET /consumables/items/search.
func (c *Client) SearchConsumables(ctx context.Context, query string) ([]domain.ConsumableItem, error) {
	var resp []consumableItemDTO
	params := url.Values{"q": []string{query}}
	if err := c.authedDo(ctx, http.MethodGet, "/consumables/items/search", params, nil, &resp); err != nil {
		return nil, err
	}
	items := make([]domain.ConsumableItem, 0, len(resp))
	for i := range resp {
		items = append(items, resp[i].toDomain())
	}
	return items, nil
}

// ListConsumables calls GET /consumables/items.
func (c *Client) ListConsumables(
	ctx context.Context, page domain.Pageable,
) (*domain.Page[domain.ConsumableItem], error) {
	var resp pageDTO[consumableItemDTO]
	if err := c.authedDo(ctx, http.MethodGet, "/consumables/items", pageParams(page), nil, &resp); err != nil {
		return nil, err
	}
	return toDomainPage(&resp, (*consumableItemDTO).toDomain), nil
}

// ListStaff calls GET /user-management/users.
func (c *Client) ListStaff(ctx context.Context, page domain.Pageable) (*domain.Page[domain.StaffMember], error) {
	var resp pageDTO[userDTO]
	if err := c.authedDo(ctx, http.MethodGet, "/user-management/users", pageParams(page), nil, &resp); err != nil {
		return nil, err
	}
	return toDomainPage(&resp, (*userDTO).toDomain), nil
}

// RecordUsage calls POST /consumables/usage.
func (c *Client) RecordUsage(ctx context.Context, usage domain.ConsumableUsage) error {
	return c.authedDo(ctx, http.MethodPost, "/consumables/usage", nil, newConsumableUsageRequest(usage), nil)
}

// authedDo sends an authenticated request, refreshing and retrying once on 401.
func (c *Client) authedDo(ctx context.Context, method, path string, params url.Values, body, out any) error {
	err := c.do(ctx, c.authed, method, path, params, body, out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		logger.Debug("%s %s returned 401, refreshing session", method, path)
		c.tokens.Invalidate()
		err = c.do(ctx, c.authed, method, path, params, body, out)
	}
	return err
}

func (c *Client) do(
	ctx context.Context, hc *http.Client, method, path string, params url.Values, body, out any,
) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, params, body)
	if err != nil {
		return err
	}

	logger.Debug("%s %s [%s]", method, req.URL.Redacted(), req.Header.Get(HeaderRequestID))
	resp, err := hc.Do(req)
	if err != nil {
		return wrapTransportError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(
	ctx context.Context, method, path string, params url.Values, body any,
) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderRequestID, uuid.NewString())
	return req, nil
}

// wrapTransportError classifies a failed round trip. Token source errors
// and context cancellation pass through; anything else means the backend
// could not be reached.
func wrapTransportError(ctx context.Context, method, path string, err error) error {
	if isAuthError(err) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrBackendUnavailable, err)
}

func pageParams(p domain.Pageable) url.Values {
	params := url.Values{}
	for k, v := range p.Params() {
		params.Set(k, v)
	}
	return params
}
