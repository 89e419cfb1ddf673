package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/authcore/pkg/validator"
)

// Mode selects which credential backend the pipeline uses.
type Mode string

const (
	// ModeMock uses a fixed development token.
	ModeMock Mode = "mock"
	// ModeEnterprise acquires bearer tokens from the enterprise identity provider.
	ModeEnterprise Mode = "enterprise"
)

// Config is the process-wide configuration. It is a value type: once
// resolved it is copied around and never mutated.
type Config struct {
	// APIBaseURL is the backend API root. Required unless PreviewPort is
	// set, in which case the derived local URL replaces it unconditionally.
	APIBaseURL string `env:"API_BASE_URL"`

	// APIMocking enables the host's mock API layer. Informational for the
	// host shell; the pipeline itself does not branch on it.
	APIMocking bool `env:"API_MOCKING" envDefault:"false"`

	// AppBaseURL is the address the application shell itself is served from.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	// PreviewPort is set by the local preview tool. When present, the API
	// base URL is always derived from it, overriding API_BASE_URL.
	PreviewPort string `env:"PREVIEW_PORT"`

	// AuthMode selects the credential backend.
	AuthMode Mode `env:"AUTH_MODE" envDefault:"mock"`

	// Enterprise identity parameters. Required only in enterprise mode.
	AuthClientID    string `env:"AUTH_CLIENT_ID"`
	AuthTenantID    string `env:"AUTH_TENANT_ID"`
	AuthRedirectURI string `env:"AUTH_REDIRECT_URI"`

	// LoginPath is the route the session core redirects to after an
	// authentication failure.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`
}

// IsEnterprise reports whether the enterprise credential backend is active.
func (c Config) IsEnterprise() bool {
	return c.AuthMode == ModeEnterprise
}

// Validate checks every field and returns a single ErrInvalidConfig wrapping
// the aggregated validator.ValidationErrors, never just the first violation.
func (c Config) Validate() error {
	rules := []validator.Rule{
		validator.When(c.PreviewPort == "", validator.RequiredString("API_BASE_URL", c.APIBaseURL)),
		validator.When(c.APIBaseURL != "", validator.ValidURL("API_BASE_URL", c.APIBaseURL)),
		validator.When(c.PreviewPort != "", validator.ValidPort("PREVIEW_PORT", c.PreviewPort)),
		validator.ValidURL("APP_BASE_URL", c.AppBaseURL),
		validator.OneOfString("AUTH_MODE", string(c.AuthMode), string(ModeMock), string(ModeEnterprise)),
		validator.When(c.IsEnterprise(), validator.RequiredString("AUTH_CLIENT_ID", c.AuthClientID)),
		validator.When(c.IsEnterprise(), validator.RequiredString("AUTH_TENANT_ID", c.AuthTenantID)),
		validator.When(c.IsEnterprise(), validator.RequiredString("AUTH_REDIRECT_URI", c.AuthRedirectURI)),
		validator.When(c.IsEnterprise() && c.AuthRedirectURI != "", validator.ValidURL("AUTH_REDIRECT_URI", c.AuthRedirectURI)),
		validator.MatchesRegex("LOGIN_PATH", c.LoginPath, `^/`, "absolute path"),
	}

	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// Resolve parses the supplied environment into a validated Config. It is a
// pure function: the result depends only on environ, and no process state is
// touched. The preview-port precedence rule is applied before validation: a
// non-empty PREVIEW_PORT always produces a derived local API URL, regardless
// of any explicit API_BASE_URL.
func Resolve(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, errors.Join(ErrParsingEnv, err)
	}

	cfg = applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyOverrides derives the API base URL from the preview-tool port. The
// override is unconditional: an explicitly supplied API_BASE_URL never wins
// over a running preview tool.
func applyOverrides(cfg Config) Config {
	if cfg.PreviewPort != "" {
		cfg.APIBaseURL = fmt.Sprintf("http://localhost:%s/api", cfg.PreviewPort)
	}
	return cfg
}
