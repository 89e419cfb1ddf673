package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authcore/pkg/config"
)

// Load caches process-wide, so a single test exercises both the initial
// resolve and the resolve-once guarantee.
func TestLoad_ResolvesOnceAndCaches(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("AUTH_MODE", "mock")

	first, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", first.APIBaseURL)

	// Changing the environment after the first resolve must have no effect.
	t.Setenv("API_BASE_URL", "https://other.example.com")

	second, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, first, second, "configuration is immutable once resolved")

	assert.NotPanics(t, func() {
		cached := config.MustLoad()
		assert.Equal(t, first, cached)
	})
}
