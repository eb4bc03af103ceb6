package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/civic")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("LOG_RETENTION_DAYS", "30")
	t.Setenv("RATING_REQUIRES_RESOLVED", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	assert.Equal(t, "civicreport", cfg.JWTIssuer)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7, cfg.LogRetentionDays)
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.True(t, cfg.RatingRequiresResolved)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
}

func TestLoadPanicsWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	require.PanicsWithValue(t, "missing env var: DATABASE_URL", func() { Load() })
}

func TestEnvOrFallbacks(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_BOOL", "maybe")
	assert.Equal(t, 5, envOrInt("SOME_INT", 5))
	assert.True(t, envOrBool("SOME_BOOL", true))
	assert.Equal(t, "x", envOr("UNSET_KEY_FOR_TEST", "x"))
}
