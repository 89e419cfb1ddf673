package client

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authcore/pkg/csrf"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport. A cookie jar is
// attached if the supplied client has none: cookies are always sent.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithGuard replaces the default CSRF guard.
func WithGuard(g *csrf.Guard) Option {
	return func(c *Client) {
		if g != nil {
			c.guard = g
		}
	}
}

// WithAuthFailureHandler registers the collaborator notified when a
// response classifies as Unauthenticated.
func WithAuthFailureHandler(h AuthFailureHandler) Option {
	return func(c *Client) {
		c.onAuthFailure = h
	}
}
