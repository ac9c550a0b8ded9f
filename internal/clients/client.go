package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Fetcher defines the API calls the rest of the app relies on.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	ListClients(ctx context.Context, query ListQuery) (Page, error)
	GetClient(ctx context.Context, id string) (*Record, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

var (
	// ErrStatus wraps HTTP responses with status >= 400.
	ErrStatus = zerr.New("api request failed")
	// ErrNotFound is returned for a 404 on a single client.
	ErrNotFound = zerr.New("client not found")
	// ErrDecode wraps malformed response bodies.
	ErrDecode = zerr.New("decode response")
	// ErrMissingID is returned by GetClient for an empty id.
	ErrMissingID = zerr.New("client id required")
)

// Client talks to the clients HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
	log       zerolog.Logger
	group     singleflight.Group
}

const (
	defaultBaseURL   = "127.0.0.1:8080"
	defaultUserAgent = "clientdesk/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 512
)

// Option customizes a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithLogger logs each request at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the API at baseURL (host:port or full URL).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListQuery configures /api/clients requests.
type ListQuery struct {
	Query   string
	Page    int
	PerPage int
	Sort    string
	Order   string
	Filters map[string]string
}

var reservedParams = []string{"q", "page", "per_page", "sort", "order"}

func (q ListQuery) values() url.Values {
	values := url.Values{}
	if query := strings.TrimSpace(q.Query); query != "" {
		values.Set("q", query)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if sort := strings.TrimSpace(q.Sort); sort != "" {
		values.Set("sort", sort)
		order := strings.ToLower(strings.TrimSpace(q.Order))
		if order != "desc" {
			order = "asc"
		}
		values.Set("order", order)
	}
	for key, value := range q.Filters {
		key = strings.TrimSpace(key)
		if key == "" || value == "" || slices.Contains(reservedParams, key) {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// ListClients retrieves one page of clients.
func (c *Client) ListClients(ctx context.Context, query ListQuery) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/clients", RawQuery: query.values().Encode()}
	var payload Page
	if err := c.getURL(ctx, rel, &payload); err != nil {
		return Page{}, err
	}
	// Servers that omit per_page echo the request's.
	if payload.PerPage <= 0 {
		payload.PerPage = query.PerPage
	}
	if payload.Page <= 0 {
		payload.Page = query.Page
	}
	return payload.Normalize(), nil
}

// GetClient retrieves a single client record.
func (c *Client) GetClient(ctx context.Context, id string) (*Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingID
	}
	rel := &url.URL{Path: "/api/clients/" + url.PathEscape(id)}
	var payload Record
	if err := c.getURL(ctx, rel, &payload); err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) && statusErr.code == http.StatusNotFound {
			return nil, zerr.With(zerr.Wrap(ErrNotFound, "get client "+id), "id", id)
		}
		return nil, err
	}
	if payload.ID == "" {
		payload.ID = id
	}
	return &payload, nil
}

// getURL performs a GET, sharing one in-flight request between identical
// callers. The first caller's context governs the shared request.
func (c *Client) getURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel).String()
	body, err, shared := c.group.Do(reqURL, func() (any, error) {
		return c.fetch(ctx, reqURL)
	})
	if shared {
		c.log.Debug().Str("url", reqURL).Msg("joined in-flight request")
	}
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body.([]byte), dest); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(ErrDecode, err.Error()), "url", reqURL), "cause", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("url", reqURL).Msg("api request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &statusError{
			code: resp.StatusCode,
			err: zerr.With(zerr.With(
				zerr.Wrap(ErrStatus, fmt.Sprintf("%s returned status %d", req.URL.Path, resp.StatusCode)),
				"status", resp.StatusCode),
				"body", strings.TrimSpace(string(snippet))),
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// statusError keeps the HTTP code reachable while the message stays zerr's.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.code
	}
	return 0
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
