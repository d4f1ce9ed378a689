package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/gameportal/internal/portal"
)

// errNotLoggedIn is returned by commands that need a session when none is saved
var errNotLoggedIn = errors.New("not logged in: run 'portal login' first")

// NewClient creates the backend client for the configured server. Verbose
// mode logs every request to stderr, passwords redacted.
func NewClient(cfg *Config, stderr io.Writer) (*portal.Client, error) {
	pcfg := portal.DefaultConfig()
	pcfg.BaseURL = cfg.ServerURL
	pcfg.Timeout = 30 * time.Second
	pcfg.UserAgent = "portal-cli"

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client, err := portal.New(pcfg, portal.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("invalid --server: %w", err)
	}
	return client, nil
}

// requireSession returns the saved session or errNotLoggedIn
func requireSession() (portal.Session, error) {
	sess := cfg.Session()
	if sess.IsZero() {
		return sess, errNotLoggedIn
	}
	return sess, nil
}

// describeError turns a backend failure into a one-line message
func describeError(err error) error {
	switch {
	case portal.IsTransport(err):
		return fmt.Errorf("cannot reach %s: %w", cfg.ServerURL, err)
	case portal.IsUnauthorized(err):
		return fmt.Errorf("%s (session missing or expired: run 'portal login')", portal.Message(err))
	case portal.StatusCode(err) != 0:
		return fmt.Errorf("%s (HTTP %d)", portal.Message(err), portal.StatusCode(err))
	default:
		return err
	}
}
