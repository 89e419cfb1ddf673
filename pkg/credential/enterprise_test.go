package credential_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/authcore/pkg/config"
	"github.com/dmitrymomot/authcore/pkg/credential"
)

func enterpriseConfig() config.Config {
	return config.Config{
		AuthMode:        config.ModeEnterprise,
		AuthClientID:    "client-123",
		AuthTenantID:    "tenant-456",
		AuthRedirectURI: "https://app.example.com/callback",
	}
}

// tokenServer fakes the identity provider token endpoint. Each exchange
// issues a distinct access token so refreshes are observable.
func tokenServer(t *testing.T, status int, expiresIn int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if status != http.StatusOK {
			http.Error(w, `{"error":"invalid_grant"}`, status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":%d,"refresh_token":"refresh-%d"}`, n, expiresIn, n)
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func expiredSeed() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-0",
		Expiry:       time.Now().Add(-time.Minute),
	}
}

func TestEnterprise_SilentRefresh(t *testing.T) {
	srv, calls := tokenServer(t, http.StatusOK, 3600)

	provider := credential.NewEnterprise(enterpriseConfig(),
		credential.WithEndpoint(oauth2.Endpoint{TokenURL: srv.URL}),
		credential.WithInitialToken(expiredSeed()),
	)

	cred, err := provider.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "token-1", cred.Token)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, cred.Expired())
}

func TestEnterprise_ValidCachedTokenReusedWithoutNetwork(t *testing.T) {
	srv, calls := tokenServer(t, http.StatusOK, 3600)

	provider := credential.NewEnterprise(enterpriseConfig(),
		credential.WithEndpoint(oauth2.Endpoint{TokenURL: srv.URL}),
		credential.WithInitialToken(&oauth2.Token{
			AccessToken: "still-valid",
			Expiry:      time.Now().Add(time.Hour),
		}),
	)

	cred, err := provider.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "still-valid", cred.Token)
	assert.Equal(t, int32(0), calls.Load(), "a valid cached token must not hit the network")
}

func TestEnterprise_TokensDifferAcrossRefresh(t *testing.T) {
	// expires_in of 1s is inside the client's expiry skew window, so every
	// acquisition triggers a fresh exchange.
	srv, _ := tokenServer(t, http.StatusOK, 1)

	provider := credential.NewEnterprise(enterpriseConfig(),
		credential.WithEndpoint(oauth2.Endpoint{TokenURL: srv.URL}),
		credential.WithInitialToken(expiredSeed()),
	)

	first, err := provider.Acquire(context.Background())
	require.NoError(t, err)
	second, err := provider.Acquire(context.Background())
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotEqual(t, first.Token, second.Token,
		"two requests separated by a token refresh may carry different tokens")
}

func TestEnterprise_InteractiveFallback(t *testing.T) {
	srv, _ := tokenServer(t, http.StatusBadRequest, 0)

	var interactiveCalls int
	provider := credential.NewEnterprise(enterpriseConfig(),
		credential.WithEndpoint(oauth2.Endpoint{TokenURL: srv.URL}),
		credential.WithInitialToken(expiredSeed()),
		credential.WithInteractiveFlow(func(ctx context.Context) (*oauth2.Token, error) {
			interactiveCalls++
			return &oauth2.Token{AccessToken: "interactive-token", Expiry: time.Now().Add(time.Hour)}, nil
		}),
	)

	cred, err := provider.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "interactive-token", cred.Token)
	assert.Equal(t, 1, interactiveCalls, "interactive flow runs only after silent refresh fails")
}

func TestEnterprise_NoCachedSessionGoesInteractive(t *testing.T) {
	provider := credential.NewEnterprise(enterpriseConfig(),
		credential.WithInteractiveFlow(func(ctx context.Context) (*oauth2.Token, error) {
			return &oauth2.Token{AccessToken: "first-login"}, nil
		}),
	)

	cred, err := provider.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "first-login", cred.Token)
}

func TestEnterprise_DegradesGracefully(t *testing.T) {
	srv, _ := tokenServer(t, http.StatusBadRequest, 0)

	t.Run("no interactive flow configured", func(t *testing.T) {
		provider := credential.NewEnterprise(enterpriseConfig(),
			credential.WithEndpoint(oauth2.Endpoint{TokenURL: srv.URL}),
			credential.WithInitialToken(expiredSeed()),
		)

		cred, err := provider.Acquire(context.Background())
		assert.NoError(t, err, "acquisition failure must not surface as an error")
		assert.Nil(t, cred, "no credential means the request proceeds unauthenticated")
	})

	t.Run("interactive flow also fails", func(t *testing.T) {
		provider := credential.NewEnterprise(enterpriseConfig(),
			credential.WithEndpoint(oauth2.Endpoint{TokenURL: srv.URL}),
			credential.WithInitialToken(expiredSeed()),
			credential.WithInteractiveFlow(func(ctx context.Context) (*oauth2.Token, error) {
				return nil, errors.New("user closed the popup")
			}),
		)

		cred, err := provider.Acquire(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, cred)
	})
}

func TestEnterprise_ConcurrentAcquire(t *testing.T) {
	srv, _ := tokenServer(t, http.StatusOK, 3600)

	provider := credential.NewEnterprise(enterpriseConfig(),
		credential.WithEndpoint(oauth2.Endpoint{TokenURL: srv.URL}),
		credential.WithInitialToken(expiredSeed()),
	)

	const n = 8
	results := make(chan *credential.Credential, n)
	for range n {
		go func() {
			cred, err := provider.Acquire(context.Background())
			assert.NoError(t, err)
			results <- cred
		}()
	}

	for range n {
		cred := <-results
		require.NotNil(t, cred, "duplicate refreshes are tolerated, every caller gets a credential")
		assert.NotEmpty(t, cred.Token)
	}
}
