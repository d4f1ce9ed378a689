package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/gameportal/internal/metrics"
)

// Client talks to the game backend. It is safe for concurrent use: the
// configuration is fixed at construction and sessions are supplied per call.
type Client struct {
	cfg        Config
	origin     string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Registry
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for the per-request log line
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records every backend call in the given registry
func WithMetrics(m *metrics.Registry) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a client for the backend described by cfg
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		origin:     cfg.origin(),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a copy of the client's configuration
func (c *Client) Config() Config {
	return c.cfg
}

// Login exchanges credentials for a session
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	var result LoginResult
	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/login",
		path:   "/login",
		body:   body,
	}, &result)
	if err != nil {
		return nil, err
	}

	for _, cookie := range resp.cookies {
		if cookie.Name == c.cfg.CookieName && cookie.Value != "" {
			result.Session = NewSession(cookie.Value)
			return &result, nil
		}
	}
	return nil, fmt.Errorf("POST /login: %w", ErrNoSession)
}

// Register creates a new, non-admin account
func (c *Client) Register(ctx context.Context, username, email, password string) (*RegisterResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var result RegisterResult
	if _, err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/register",
		path:   "/register",
		body:   body,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListGames returns every game visible to the session
func (c *Client) ListGames(ctx context.Context, sess Session) ([]Game, error) {
	var games []Game
	if _, err := c.do(ctx, call{
		method:  http.MethodGet,
		route:   "/juegos",
		path:    "/juegos",
		session: sess,
	}, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []Game{}
	}
	return games, nil
}

// CreateGame adds a game. The backend only allows this for admins.
func (c *Client) CreateGame(ctx context.Context, sess Session, game Game) (*MutationResult, error) {
	var result MutationResult
	if _, err := c.do(ctx, call{
		method:  http.MethodPost,
		route:   "/juegos",
		path:    "/juegos",
		body:    game,
		session: sess,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateGame applies a partial update. patch is serialised as-is, so callers
// may send a Game, a map, or any other JSON-encodable value.
func (c *Client) UpdateGame(ctx context.Context, sess Session, id GameID, patch any) (*MutationResult, error) {
	var result MutationResult
	if _, err := c.do(ctx, call{
		method:  http.MethodPut,
		route:   "/juegos/{id}",
		path:    gamePath(id),
		body:    patch,
		session: sess,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteGame removes a game
func (c *Client) DeleteGame(ctx context.Context, sess Session, id GameID) (*MutationResult, error) {
	var result MutationResult
	if _, err := c.do(ctx, call{
		method:  http.MethodDelete,
		route:   "/juegos/{id}",
		path:    gamePath(id),
		session: sess,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckAuth asks the backend whether sess is still valid. A 401 comes back
// as a StatusError; callers that gate access should treat any error as
// unauthenticated.
func (c *Client) CheckAuth(ctx context.Context, sess Session) (*AuthStatus, error) {
	var status AuthStatus
	resp, err := c.do(ctx, call{
		method:  http.MethodGet,
		route:   "/auth/status",
		path:    "/auth/status",
		session: sess,
	}, &status)
	if err != nil {
		return nil, err
	}
	status.StatusCode = resp.status
	return &status, nil
}

// Logout ends the session on the backend. The caller should discard sess
// afterwards regardless of the outcome.
func (c *Client) Logout(ctx context.Context, sess Session) (*MutationResult, error) {
	var result MutationResult
	if _, err := c.do(ctx, call{
		method:  http.MethodPost,
		route:   "/logout",
		path:    "/logout",
		session: sess,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func gamePath(id GameID) string {
	return fmt.Sprintf("/juegos/%d", id)
}

type call struct {
	method  string
	route   string // path template, used as the metrics label
	path    string
	body    any
	session Session
}

type response struct {
	status  int
	cookies []*http.Cookie
}

func (c *Client) do(ctx context.Context, cl call, result any) (*response, error) {
	var payload []byte
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = data
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.origin+cl.path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if !cl.session.IsZero() {
		req.AddCookie(&http.Cookie{Name: c.cfg.CookieName, Value: cl.session.Token()})
	}

	c.logger.InfoContext(ctx, "backend request",
		"method", cl.method,
		"url", c.origin+cl.path,
		"body", redactBody(payload),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordBackendRequest(cl.method, cl.route, 0, time.Since(start))
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, cl.method, cl.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	c.metrics.RecordBackendRequest(cl.method, cl.route, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: reading body: %w", ErrTransport, cl.method, cl.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(cl, resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", ErrMalformedResponse, cl.method, cl.path, err)
		}
	}

	return &response{status: resp.StatusCode, cookies: resp.Cookies()}, nil
}

func newStatusError(cl call, status int, body []byte) error {
	se := &StatusError{
		Method:     cl.method,
		Path:       cl.path,
		StatusCode: status,
		Body:       string(body),
	}

	var errBody struct {
		Error   string `json:"error"`
		Message string `json:"mensaje"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil {
		se.Message = errBody.Error
		if se.Message == "" {
			se.Message = errBody.Message
		}
	}
	return se
}

// redactBody renders a request body for the log line with password fields masked
func redactBody(payload []byte) string {
	if payload == nil {
		return ""
	}

	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return string(payload)
	}
	if _, ok := fields["password"]; !ok {
		return string(payload)
	}
	fields["password"] = "***"

	masked, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(masked)
}

// IsTransport reports whether err means the backend could not be reached
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
