package portal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DevelopmentOrigin is the backend origin used during local development
const DevelopmentOrigin = "http://127.0.0.1:9000"

// DefaultCookieName is the cookie the backend stores its session token in
const DefaultCookieName = "token"

// Config is the immutable configuration of a Client. It is copied into the
// client on construction; changing a Config afterwards has no effect.
type Config struct {
	// BaseURL is the backend origin, e.g. http://127.0.0.1:9000
	BaseURL string
	// CookieName is the name of the backend's session cookie
	CookieName string
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration
	// UserAgent is sent on every request when set
	UserAgent string
}

// DefaultConfig returns the configuration for the local development backend
func DefaultConfig() Config {
	return Config{
		BaseURL:    DevelopmentOrigin,
		CookieName: DefaultCookieName,
		Timeout:    30 * time.Second,
		UserAgent:  "gameportal",
	}
}

// Validate checks that the configuration can be used to build a client
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("portal: base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("portal: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("portal: base URL must be http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("portal: base URL has no host: %q", c.BaseURL)
	}
	if c.CookieName == "" {
		return errors.New("portal: cookie name is required")
	}
	return nil
}

func (c Config) origin() string {
	return strings.TrimSuffix(c.BaseURL, "/")
}
