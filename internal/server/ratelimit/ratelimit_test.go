package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/api/analyze", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
			{Path: "/api/export/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 5},
		},
	}
}

func TestLimiter_BurstThenLimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/api/analyze", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/api/analyze", "POST")
	assert.True(t, allowed)

	allowed, info := l.Allow("1.2.3.4", "/api/analyze", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/analyze", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.2.3.4", "/api/analyze", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("5.6.7.8", "/api/analyze", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiter_PrefixMatch(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	_, info := l.Allow("1.2.3.4", "/api/export/xlsx", "POST")
	assert.Equal(t, 60, info.Limit)
}

func TestLimiter_DefaultLimitForUnknownRoute(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	_, info := l.Allow("1.2.3.4", "/api/status", "GET")
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 500; i++ {
		allowed, info := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
		require.Zero(t, info.Limit)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/analyze", "POST")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := testConfig().Endpoints

	assert.Equal(t, 10, MatchEndpoint("/api/analyze", "POST", configs).Limit)
	assert.Equal(t, 60, MatchEndpoint("/api/export/xlsx", "POST", configs).Limit)
	assert.Nil(t, MatchEndpoint("/api/analyze", "GET", configs))
	assert.Nil(t, MatchEndpoint("/api/status", "GET", configs))
	assert.Zero(t, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.Endpoints)
}
