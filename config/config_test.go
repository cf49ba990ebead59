package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:3002", cfg.Addr())
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, []string{"https://*", "http://*"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, 15*time.Minute, cfg.Storage.Postgres.ConnMaxLifetime)
	require.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigPostgresFromNeonURL(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("NEON_DATABASE_URL", "postgres://u:p@ep-neon.example/db?sslmode=require")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Storage.Type)
	require.Equal(t, "postgres://u:p@ep-neon.example/db?sslmode=require", cfg.Storage.Postgres.URL)
}

func TestLoadConfigRequiresBackendSettings(t *testing.T) {
	for _, storageType := range []string{"postgres", "mongodb", "redis", "s3", "minio"} {
		t.Run(storageType, func(t *testing.T) {
			t.Setenv("STORAGE_TYPE", storageType)
			t.Setenv("DATABASE_URL", "")
			t.Setenv("NEON_DATABASE_URL", "")
			t.Setenv("MONGODB_URI", "")
			t.Setenv("REDIS_ADDR", "")
			t.Setenv("S3_BUCKET_NAME", "")
			t.Setenv("MINIO_ENDPOINT", "")

			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestLoadConfigRejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "floppy")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "floppy")
}

func TestLoadConfigRateLimit(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	require.Nil(t, splitList(""))
}
