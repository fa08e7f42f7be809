package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CLERK_PUBLISHABLE_KEY", "")
	t.Setenv("NOTIFICATION_POLL_INTERVAL", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.NotificationPollInterval)
	assert.Equal(t, "https://api-adresse.data.gouv.fr", cfg.AddressAPIURL)
	assert.False(t, cfg.IdentityEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("NOTIFICATION_POLL_INTERVAL", "5s")
	t.Setenv("RATE_LIMIT_REQUESTS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 5*time.Second, cfg.NotificationPollInterval)
	assert.Equal(t, 120, cfg.RateLimitRequests)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.TracingEnabled)
}

func TestIdentityEnabled_BlankKey(t *testing.T) {
	cfg := &Config{ClerkPublishableKey: "   "}
	assert.False(t, cfg.IdentityEnabled())

	cfg.ClerkPublishableKey = "pk_test_123"
	assert.True(t, cfg.IdentityEnabled())
}
