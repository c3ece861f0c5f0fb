package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "STORAGE_KEY", "LOAD_DELAY", "TOAST_TTL", "RABBITMQ_URL", "ELASTICSEARCH_ADDRS"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "user_profiles_v1", cfg.StorageKey)
	assert.Equal(t, 450*time.Millisecond, cfg.LoadDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.SaveDelay)
	assert.Equal(t, 350*time.Millisecond, cfg.DeleteDelay)
	assert.Equal(t, 3*time.Second, cfg.ToastTTL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.ESAddrs())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("SAVE_DELAY", "0s")
	t.Setenv("MEMORY_QUOTA_BYTES", "1024")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("RATE_LIMIT_PER_MIN", "not-a-number")
	t.Setenv("TOAST_TTL", "soon")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	cfg := Load()

	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Zero(t, cfg.SaveDelay)
	assert.Equal(t, 1024, cfg.MemoryQuotaBytes)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, 120, cfg.RateLimitPerMin, "invalid ints fall back")
	assert.Equal(t, 3*time.Second, cfg.ToastTTL, "invalid durations fall back")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "profiles", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5433/profiles?sslmode=disable", cfg.PostgresDSN())
}
