package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/authcore/pkg/apierror"
	"github.com/dmitrymomot/authcore/pkg/config"
	"github.com/dmitrymomot/authcore/pkg/credential"
	"github.com/dmitrymomot/authcore/pkg/csrf"
	"github.com/dmitrymomot/authcore/pkg/logger"
)

// AuthFailureHandler reacts to responses classified as Unauthenticated.
// session.Manager satisfies it.
type AuthFailureHandler interface {
	HandleUnauthenticated(ctx context.Context)
}

// Client dispatches authenticated API requests and normalizes the outcome.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	provider      credential.Provider
	guard         *csrf.Guard
	onAuthFailure AuthFailureHandler
	log           *slog.Logger
}

// New creates the request pipeline from resolved configuration and the
// process-wide credential provider.
func New(cfg config.Config, provider credential.Provider, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}

	c := &Client{
		baseURL:  base,
		provider: provider,
		guard:    csrf.New(),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.http.Jar == nil {
		// Cookies always travel with requests; the jar is not optional.
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}

	return c, nil
}

// Get issues a GET request and returns the unwrapped payload.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do runs the full pipeline for one request: decorate, dispatch, normalize.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if err := c.decorate(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apierror.Network(err)
	}
	defer resp.Body.Close()

	return c.normalize(ctx, resp)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	target := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// decorate attaches the bearer credential and the anti-forgery token.
// Acquisition and extraction are independent and run concurrently; dispatch
// waits for both to settle.
func (c *Client) decorate(ctx context.Context, req *http.Request) error {
	var (
		cred      *credential.Credential
		csrfToken string
		csrfOK    bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		acquired, err := c.provider.Acquire(gctx)
		if err != nil {
			// Providers degrade gracefully; an error here still only means
			// "no credential", never a failed request.
			c.log.WarnContext(gctx, "credential acquisition failed", "error", err)
			return nil
		}
		cred = acquired
		return nil
	})
	g.Go(func() error {
		csrfToken, csrfOK = c.guard.Token(c.http.Jar, req.URL)
		return nil
	})
	if err := g.Wait(); err != nil {
		return apierror.Network(err)
	}

	if cred != nil && cred.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}
	if csrfOK {
		req.Header.Set(csrf.HeaderName, csrfToken)
	}
	return nil
}

// envelope is the transport wrapper successful responses may arrive in.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorEnvelope is the transport wrapper failed responses may arrive in.
type errorEnvelope struct {
	Error struct {
		Message string              `json:"message"`
		Fields  map[string][]string `json:"fields"`
	} `json:"error"`
}

// normalize unwraps successful payloads and classifies failures into the
// apierror taxonomy, triggering session invalidation on an authentication
// failure.
func (c *Client) normalize(ctx context.Context, resp *http.Response) (json.RawMessage, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierror.Network(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return unwrap(raw), nil
	}

	var body errorEnvelope
	_ = json.Unmarshal(raw, &body) // a non-JSON error body is fine, classification falls back to the status

	apiErr := apierror.FromStatus(resp.StatusCode, body.Error.Message, body.Error.Fields)
	if apiErr.Kind == apierror.KindUnauthenticated && c.onAuthFailure != nil {
		c.onAuthFailure.HandleUnauthenticated(ctx)
	}

	c.log.DebugContext(ctx, "request failed",
		"method", resp.Request.Method,
		"url", resp.Request.URL.String(),
		"status", resp.StatusCode,
		"kind", apiErr.Kind,
	)
	return nil, apiErr
}

// unwrap discards the `{"data": ...}` envelope when present; any other
// shape passes through unmodified.
func unwrap(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		return env.Data
	}
	return raw
}

// Decode unmarshals an unwrapped payload into a typed value.
func Decode[T any](payload json.RawMessage) (T, error) {
	var v T
	if len(payload) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, fmt.Errorf("decode payload: %w", err)
	}
	return v, nil
}
