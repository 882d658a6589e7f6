package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"JWT_SECRET", "JWT_ACCESS_EXPIRY", "JWT_REFRESH_EXPIRY",
		"UPLOAD_BASE_URL", "NATS_URL", "PORT", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "jalanma_db", cfg.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, "https://storage.jalanma.app", cfg.UploadBaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Empty(t, cfg.NATSURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("UPLOAD_BASE_URL", "https://cdn.example.com")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg := Load()
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, "https://cdn.example.com", cfg.UploadBaseURL)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "jalanma_db",
		DBSSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=jalanma_db port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, 15*time.Minute, parseDuration("not-a-duration"))
	assert.Equal(t, 2*time.Hour, parseDuration("2h"))
}
