package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EVM_API_BASE_URL", "")
	t.Setenv("EVM_BID_POLL_INTERVAL", "")
	t.Setenv("EVM_PROFILE_STORE", "")
	t.Setenv("PORT", "")

	cfg := Load()

	require.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	require.Equal(t, 3*time.Second, cfg.BidPollInterval)
	require.Equal(t, StoreFile, cfg.ProfileStore)
	require.Equal(t, ":8080", cfg.ServerPort)
	require.Equal(t, 300*1024, cfg.ImageMaxBytes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EVM_API_BASE_URL", "http://api.test")
	t.Setenv("EVM_BID_POLL_INTERVAL", "500ms")
	t.Setenv("EVM_PROFILE_STORE", "redis")
	t.Setenv("EVM_REDIS_DB", "3")
	t.Setenv("PORT", "9090")

	cfg := Load()

	require.Equal(t, "http://api.test", cfg.APIBaseURL)
	require.Equal(t, 500*time.Millisecond, cfg.BidPollInterval)
	require.Equal(t, StoreRedis, cfg.ProfileStore)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, ":9090", cfg.ServerPort)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "bad_duration",
			key:   "EVM_BID_POLL_INTERVAL",
			value: "soon",
			check: func(t *testing.T, cfg *Config) { require.Equal(t, 3*time.Second, cfg.BidPollInterval) },
		},
		{
			name:  "negative_interval",
			key:   "EVM_BID_POLL_INTERVAL",
			value: "-1s",
			check: func(t *testing.T, cfg *Config) { require.Equal(t, 3*time.Second, cfg.BidPollInterval) },
		},
		{
			name:  "bad_int",
			key:   "EVM_IMAGE_MAX_BYTES",
			value: "lots",
			check: func(t *testing.T, cfg *Config) { require.Equal(t, 300*1024, cfg.ImageMaxBytes) },
		},
		{
			name:  "unknown_store",
			key:   "EVM_PROFILE_STORE",
			value: "s3",
			check: func(t *testing.T, cfg *Config) { require.Equal(t, StoreFile, cfg.ProfileStore) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			tc.check(t, Load())
		})
	}
}
