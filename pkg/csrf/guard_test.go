package csrf_test

import (
	"bytes"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authcore/pkg/csrf"
	"github.com/dmitrymomot/authcore/pkg/logger"
)

func jarWithCookie(t *testing.T, target *url.URL, name, value string) http.CookieJar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	jar.SetCookies(target, []*http.Cookie{{Name: name, Value: value}})
	return jar
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestGuard_Validate(t *testing.T) {
	guard := csrf.New()

	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{"valid 12-char token", "abC12345-xyz", true},
		{"valid with underscore", "tok_en-123", true},
		{"too short", "ab", false},
		{"exactly at minimum", "abcd1234", true},
		{"one below minimum", "abcd123", false},
		{"disallowed character", "abc123!@#$%", false},
		{"embedded space", "abc 12345678", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := guard.Validate(tt.token)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.token, got, "a valid token is passed through verbatim")
			} else {
				assert.Empty(t, got, "an invalid token is treated as absent")
			}
		})
	}
}

func TestGuard_Extract(t *testing.T) {
	target := mustURL(t, "https://api.example.com/api")

	t.Run("finds the token cookie", func(t *testing.T) {
		jar := jarWithCookie(t, target, csrf.DefaultCookieName, "abC12345-xyz")
		guard := csrf.New()

		raw, ok := guard.Extract(jar, target)
		require.True(t, ok)
		assert.Equal(t, "abC12345-xyz", raw)
	})

	t.Run("absent cookie", func(t *testing.T) {
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)

		_, ok := csrf.New().Extract(jar, target)
		assert.False(t, ok)
	})

	t.Run("custom cookie name", func(t *testing.T) {
		jar := jarWithCookie(t, target, "XSRF-TOKEN", "abC12345-xyz")
		guard := csrf.New(csrf.WithCookieName("XSRF-TOKEN"))

		raw, ok := guard.Extract(jar, target)
		require.True(t, ok)
		assert.Equal(t, "abC12345-xyz", raw)
	})

	t.Run("nil jar is tolerated", func(t *testing.T) {
		_, ok := csrf.New().Extract(nil, target)
		assert.False(t, ok)
	})
}

func TestGuard_Token(t *testing.T) {
	target := mustURL(t, "https://api.example.com/api")

	t.Run("valid cookie produces the header value", func(t *testing.T) {
		jar := jarWithCookie(t, target, csrf.DefaultCookieName, "abC12345-xyz")

		tok, ok := csrf.New().Token(jar, target)
		require.True(t, ok)
		assert.Equal(t, "abC12345-xyz", tok)
	})

	t.Run("policy-violating cookie is treated as absent and logged", func(t *testing.T) {
		jar := jarWithCookie(t, target, csrf.DefaultCookieName, "ab")

		var buf bytes.Buffer
		guard := csrf.New(csrf.WithLogger(logger.New(logger.WithTextFormatter(), logger.WithOutput(&buf))))

		_, ok := guard.Token(jar, target)
		assert.False(t, ok)
		assert.Contains(t, buf.String(), "csrf token rejected", "rejection should be logged as a warning")
	})
}

func TestHeaderName(t *testing.T) {
	assert.Equal(t, "X-CSRF-Token", csrf.HeaderName)
}
