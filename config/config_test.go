package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "host=db user=catalog dbname=catalog")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("ADMIN_EMAIL", "  Sales@Example.com ")
	t.Setenv("SMTP_NOTIFY_TO", "a@example.com, b@example.com,,")
	t.Setenv("ENQUIRY_RATE_LIMIT", "not-a-number")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, "sales@example.com", cfg.Admin.Email)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.SMTP.NotifyTo)
	assert.Equal(t, 10, cfg.RateLimit.EnquiryLimit)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "")
	assert.Nil(t, Load().Server.TrustedProxies)
}

func TestValidate(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD_HASH")

	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	assert.NoError(t, Load().Validate())
}

func TestLoad_MetricsToggle(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "false")
	assert.False(t, Load().Metrics.Enabled)

	t.Setenv("METRICS_ENABLED", "garbage")
	assert.True(t, Load().Metrics.Enabled)
}
