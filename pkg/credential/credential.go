package credential

import (
	"context"
	"time"

	"github.com/dmitrymomot/authcore/pkg/config"
)

// Credential is an opaque bearer token with optional expiry. It is owned by
// the Provider that issued it and is never written to durable storage.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the credential has a known expiry in the past.
// Credentials without expiry metadata never report expired.
func (c *Credential) Expired() bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}

// Provider supplies a bearer credential per request. Acquire may suspend the
// caller on network or identity-provider interaction. A (nil, nil) return
// means "no credential": the request proceeds unauthenticated and is left to
// the server to reject.
type Provider interface {
	Acquire(ctx context.Context) (*Credential, error)
}

// NewFromConfig constructs the single Provider instance for the process,
// selected by the resolved auth mode. The variant never changes at runtime;
// a restart with different configuration is the only way to switch.
func NewFromConfig(cfg config.Config, opts ...Option) Provider {
	if cfg.IsEnterprise() {
		return NewEnterprise(cfg, opts...)
	}
	return NewMock(DefaultMockToken)
}
