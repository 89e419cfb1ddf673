package csrf

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/authcore/pkg/logger"
	"github.com/dmitrymomot/authcore/pkg/validator"
)

const (
	// HeaderName is the fixed request header the token is attached under.
	HeaderName = "X-CSRF-Token"

	// DefaultCookieName is the cookie the server plants the token in.
	DefaultCookieName = "csrf_token"

	// minTokenLen is the policy floor; anything shorter is noise, not a token.
	minTokenLen = 8

	// tokenPattern restricts tokens to the URL-safe alphabet.
	tokenPattern = `^[A-Za-z0-9_-]+$`
)

// Option configures a Guard.
type Option func(*Guard)

// WithCookieName overrides the cookie the token is read from.
func WithCookieName(name string) Option {
	return func(g *Guard) {
		if name != "" {
			g.cookieName = name
		}
	}
}

// WithLogger sets a custom logger for policy-violation warnings.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// Guard extracts and validates anti-forgery tokens from the cookie store.
type Guard struct {
	cookieName string
	log        *slog.Logger
}

// New creates a guard with the default cookie name.
func New(opts ...Option) *Guard {
	g := &Guard{
		cookieName: DefaultCookieName,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Extract reads the raw token for the target URL from the cookie store.
// It reads fresh on every call - values are never cached across requests,
// so rotation by the server is respected immediately.
func (g *Guard) Extract(jar http.CookieJar, target *url.URL) (string, bool) {
	if jar == nil || target == nil {
		return "", false
	}
	for _, c := range jar.Cookies(target) {
		if c.Name == g.cookieName && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

// Validate checks the token against the length and character-set policy.
// An invalid token is treated as absent and logged as a warning; the
// request proceeds without the header.
func (g *Guard) Validate(token string) (string, bool) {
	err := validator.Apply(
		validator.MinLenString("csrf_token", token, minTokenLen),
		validator.MatchesRegex("csrf_token", token, tokenPattern, "url-safe token"),
	)
	if err != nil {
		g.log.Warn("csrf token rejected by policy, proceeding without header", "error", err)
		return "", false
	}
	return token, true
}

// Token extracts and validates in one step, returning the header value to
// attach, if any.
func (g *Guard) Token(jar http.CookieJar, target *url.URL) (string, bool) {
	raw, ok := g.Extract(jar, target)
	if !ok {
		return "", false
	}
	return g.Validate(raw)
}
