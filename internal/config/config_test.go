package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "profile-registry", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, int64(5000000), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, "profile/", cfg.Upload.KeyPrefix)
	assert.Equal(t, "https://restcountries.com/v3.1/all?fields=name", cfg.Countries.Endpoint)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("UPLOAD_MAX_SIZE_BYTES", "1024")
	t.Setenv("COUNTRIES_CACHE_TTL_MINUTES", "5")
	t.Setenv("BLOB_BUCKET", "profiles")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, int64(1024), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, float64(5), cfg.Countries.CacheTTL().Minutes())
	assert.Equal(t, "profiles", cfg.Blob.Bucket)
}

func TestLoadRejectsBadNumerics(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
