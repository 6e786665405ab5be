package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDotenv(t *testing.T, files ...string) {
	t.Helper()
	orig := dotenvFiles
	dotenvFiles = files
	t.Cleanup(func() { dotenvFiles = orig })
}

func TestParseEnv_Variables(t *testing.T) {
	withDotenv(t)

	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DSN", "postgres://db")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("ALLOWED_ORIGINS", "http://a, http://b,")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("S3_BUCKET", "garden")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://db", c.DatabaseDSN)
	assert.Equal(t, "jwt", c.SecretKey)
	assert.Equal(t, 90*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, []string{"http://a", "http://b"}, c.AllowedOrigins)
	assert.Equal(t, "redis:6379", c.RedisAddr)
	assert.Equal(t, "garden", c.S3Bucket)
}

func TestParseEnv_HTTPAddrBeatsPort(t *testing.T) {
	withDotenv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9999")

	c := &Config{}
	parseEnv(c)

	assert.Equal(t, "127.0.0.1:9999", c.EndpointAddrHTTP)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GROWFLOW_TEST_ONLY=1\nLOG_LEVEL=debug\n"), 0o600))
	withDotenv(t, path)

	// real environment wins over the file
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("GROWFLOW_TEST_ONLY") })

	c := &Config{}
	parseEnv(c)

	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "1", os.Getenv("GROWFLOW_TEST_ONLY"))
}

func TestParseEnv_MissingDotenvIgnored(t *testing.T) {
	withDotenv(t, filepath.Join(t.TempDir(), "absent.env"))
	assert.NotPanics(t, func() { parseEnv(&Config{}) })
}

func TestParseEnv_InvalidValuesPanic(t *testing.T) {
	withDotenv(t)

	t.Run("port", func(t *testing.T) {
		t.Setenv("PORT", "http")
		assert.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("ttl", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "forever")
		assert.Panics(t, func() { parseEnv(&Config{}) })
	})
}
