package credential

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/authcore/pkg/config"
	"github.com/dmitrymomot/authcore/pkg/logger"
)

// InteractiveFlow performs the interactive part of enterprise sign-in
// (popup, redirect, device code - whatever the host environment supports).
// It is only invoked after silent refresh has failed.
type InteractiveFlow func(ctx context.Context) (*oauth2.Token, error)

// Option configures an EnterpriseProvider.
type Option func(*EnterpriseProvider)

// WithLogger sets a custom logger for the provider.
func WithLogger(log *slog.Logger) Option {
	return func(p *EnterpriseProvider) {
		if log != nil {
			p.log = log
		}
	}
}

// WithInteractiveFlow supplies the host's interactive sign-in capability.
func WithInteractiveFlow(flow InteractiveFlow) Option {
	return func(p *EnterpriseProvider) {
		p.interactive = flow
	}
}

// WithInitialToken seeds the cached identity-provider session, typically
// from a completed login flow, so the first Acquire can refresh silently.
func WithInitialToken(tok *oauth2.Token) Option {
	return func(p *EnterpriseProvider) {
		p.current = tok
	}
}

// WithEndpoint overrides the identity provider endpoints. Used by tests and
// by hosts pointing at a non-default authority.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(p *EnterpriseProvider) {
		p.endpoint = &endpoint
	}
}

// EnterpriseProvider acquires bearer tokens from the enterprise identity
// provider. Silent refresh from the cached session is always attempted
// first; the interactive flow is a fallback only.
type EnterpriseProvider struct {
	clientID    string
	tenantID    string
	redirectURI string
	endpoint    *oauth2.Endpoint
	interactive InteractiveFlow
	log         *slog.Logger

	// The OAuth2 client is built lazily on first acquisition; constructing
	// the provider itself stays cheap and side-effect free.
	initOnce sync.Once
	oauth    *oauth2.Config

	mu      sync.Mutex
	current *oauth2.Token
}

// NewEnterprise creates the enterprise credential provider from resolved
// configuration.
func NewEnterprise(cfg config.Config, opts ...Option) *EnterpriseProvider {
	p := &EnterpriseProvider{
		clientID:    cfg.AuthClientID,
		tenantID:    cfg.AuthTenantID,
		redirectURI: cfg.AuthRedirectURI,
		log:         logger.Discard(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Acquire returns a bearer credential, suspending on identity-provider
// interaction. Order: silent refresh from the cached session, then the
// interactive flow, then graceful degradation to (nil, nil).
func (p *EnterpriseProvider) Acquire(ctx context.Context) (*Credential, error) {
	p.init()

	if cred := p.acquireSilent(ctx); cred != nil {
		return cred, nil
	}

	if p.interactive != nil {
		tok, err := p.interactive(ctx)
		if err == nil && tok != nil {
			p.store(tok)
			return tokenCredential(tok), nil
		}
		if err != nil {
			p.log.WarnContext(ctx, "interactive credential flow failed", "error", err)
		}
	}

	// No credential: the request proceeds without an Authorization header
	// and the server's rejection is classified downstream.
	p.log.WarnContext(ctx, "credential acquisition failed, proceeding unauthenticated")
	return nil, nil
}

// acquireSilent renews the cached token without user interaction. Returns
// nil when there is no cached session or the refresh is rejected.
func (p *EnterpriseProvider) acquireSilent(ctx context.Context) *Credential {
	p.mu.Lock()
	cached := p.current
	p.mu.Unlock()

	if cached == nil {
		return nil
	}

	// TokenSource reuses the cached token while valid and exchanges the
	// refresh token otherwise. Concurrent refresh races are tolerated:
	// tokens are immutable once issued, a duplicate network call is cheaper
	// than a shared lock across requests.
	tok, err := p.oauth.TokenSource(ctx, cached).Token()
	if err != nil {
		p.log.WarnContext(ctx, "silent token refresh failed", "error", err)
		return nil
	}

	p.store(tok)
	return tokenCredential(tok)
}

func (p *EnterpriseProvider) init() {
	p.initOnce.Do(func() {
		endpoint := p.authorityEndpoint()
		if p.endpoint != nil {
			endpoint = *p.endpoint
		}
		p.oauth = &oauth2.Config{
			ClientID:    p.clientID,
			RedirectURL: p.redirectURI,
			Endpoint:    endpoint,
			Scopes:      []string{"openid", "profile", "email", "offline_access"},
		}
	})
}

// authorityEndpoint derives the tenant-scoped identity provider endpoints.
func (p *EnterpriseProvider) authorityEndpoint() oauth2.Endpoint {
	base := fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0", p.tenantID)
	return oauth2.Endpoint{
		AuthURL:  base + "/authorize",
		TokenURL: base + "/token",
	}
}

func (p *EnterpriseProvider) store(tok *oauth2.Token) {
	p.mu.Lock()
	p.current = tok
	p.mu.Unlock()
}

func tokenCredential(tok *oauth2.Token) *Credential {
	return &Credential{Token: tok.AccessToken, ExpiresAt: tok.Expiry}
}
