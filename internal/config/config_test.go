package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(t *testing.T, cfg *Config)
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "https://identitytoolkit.googleapis.com/v1", cfg.Firebase.SignInBaseURL)
				assert.Equal(t, "https://api.frankfurter.app", cfg.FrankfurterBaseURL)
				assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
				assert.Equal(t, 4, cfg.MaxConcurrentRequests)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 100, cfg.RateLimitRequests)
				assert.Equal(t, 60*time.Second, cfg.RateLimitWindow)
				assert.Equal(t, 10, cfg.RateLimitBurst)
				assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
				assert.Empty(t, cfg.TrustedProxies)
			},
		},
		{
			name: "custom configuration",
			envVars: map[string]string{
				"PORT":                      "9090",
				"LOG_LEVEL":                 "debug",
				"FIREBASE_API_KEY":          "key-123",
				"FIREBASE_PROJECT_ID":       "demo-project",
				"FIREBASE_SIGN_IN_BASE_URL": "http://localhost:9099/identitytoolkit.googleapis.com/v1/",
				"FRANKFURTER_API_BASE_URL":  "http://localhost:8000/",
				"UPSTREAM_TIMEOUT_SECONDS":  "3",
				"MAX_CONCURRENT_REQUESTS":   "8",
				"RATE_LIMIT_ENABLED":        "false",
				"RATE_LIMIT_REQUESTS":       "200",
				"RATE_LIMIT_WINDOW_SECONDS": "120",
				"RATE_LIMIT_BURST":          "20",
				"CORS_ALLOWED_ORIGINS":      "http://localhost:5173, https://app.example.com",
				"TRUSTED_PROXIES":           "10.0.0.0/8, 192.168.1.10",
			},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9090", cfg.Port)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "key-123", cfg.Firebase.APIKey)
				assert.Equal(t, "demo-project", cfg.Firebase.ProjectID)
				assert.Equal(t, "http://localhost:9099/identitytoolkit.googleapis.com/v1", cfg.Firebase.SignInBaseURL)
				assert.Equal(t, "http://localhost:8000", cfg.FrankfurterBaseURL)
				assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
				assert.Equal(t, 8, cfg.MaxConcurrentRequests)
				assert.False(t, cfg.RateLimitEnabled)
				assert.Equal(t, 200, cfg.RateLimitRequests)
				assert.Equal(t, 120*time.Second, cfg.RateLimitWindow)
				assert.Equal(t, 20, cfg.RateLimitBurst)
				assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSAllowedOrigins)
				assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.TrustedProxies)
			},
		},
		{
			name: "non-positive durations fall back",
			envVars: map[string]string{
				"UPSTREAM_TIMEOUT_SECONDS":  "0",
				"RATE_LIMIT_WINDOW_SECONDS": "-5",
			},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
				assert.Equal(t, 60*time.Second, cfg.RateLimitWindow)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			require.NoError(t, err)
			tt.expected(t, cfg)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
	assert.Empty(t, splitList(""))
}
