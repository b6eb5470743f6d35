package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "CORS_ORIGINS", "DB_DSN", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "STORE_BACKEND",
		"FIREBASE_CREDENTIALS_PATH", "AUTH_MODE", "GEMINI_API_KEY", "GEMINI_MODEL",
		"GEMINI_TIMEOUT", "SUGGEST_RATE_PER_MIN", "SYNC_FLUSH_SPEC",
		"APP_ENV", "LOG_LEVEL", "APP_VERSION",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, AuthModeHeader, cfg.Firebase.AuthMode)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "@every 2s", cfg.Sync.FlushSpec)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("SUGGEST_RATE_PER_MIN", "nope")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, StoreBackendRedis, cfg.Store.Backend)
	assert.Equal(t, 15*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 10, cfg.Gemini.RatePerMinute)
}

func TestLoad_BackendPrefersPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://localhost/smeta")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreBackendPostgres, cfg.Store.Backend)
}

func TestLoad_ProductionAuth(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "FIREBASE_CREDENTIALS_PATH")

	t.Setenv("AUTH_MODE", "header")
	_, err = Load()
	assert.ErrorContains(t, err, "not allowed in production")

	t.Setenv("AUTH_MODE", "")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/etc/smeta/firebase.json")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, AuthModeFirebase, cfg.Firebase.AuthMode)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Store:    StoreConfig{Backend: StoreBackendMemory},
			Firebase: FirebaseConfig{AuthMode: AuthModeHeader},
		}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.Store.Backend = StoreBackendPostgres
	assert.Error(t, c.Validate())

	c = base()
	c.Store.Backend = StoreBackendRedis
	assert.Error(t, c.Validate())

	c = base()
	c.Store.Backend = "sqlite"
	assert.Error(t, c.Validate())

	c = base()
	c.Firebase.AuthMode = "basic"
	assert.Error(t, c.Validate())

	c = base()
	c.Server.Port = ""
	assert.Error(t, c.Validate())
}
