package testutils

import (
	"time"

	"github.com/dalfonso89/auth-currency-gateway/internal/config"
	"github.com/dalfonso89/auth-currency-gateway/internal/logger"

	"github.com/sirupsen/logrus"
)

// TestProjectID is the Firebase project used by test tokens and configs
const TestProjectID = "demo-gateway"

// MockLogger creates a silent logger for testing
func MockLogger() *logrus.Logger {
	return logger.Discard()
}

// MockConfig creates a mock configuration for testing
func MockConfig() *config.Config {
	return &config.Config{
		Port:     "8080",
		LogLevel: "debug",

		Firebase: config.FirebaseConfig{
			APIKey:        "test-api-key",
			ProjectID:     TestProjectID,
			SignInBaseURL: "https://identitytoolkit.test/v1",
			JWKSURL:       "https://keys.test/jwks",
		},

		FrankfurterBaseURL:    "https://frankfurter.test",
		UpstreamTimeout:       5 * time.Second,
		MaxConcurrentRequests: 4,

		RateLimitEnabled:  true,
		RateLimitRequests: 100,
		RateLimitWindow:   60 * time.Second,
		RateLimitBurst:    10,

		CORSAllowedOrigins: []string{"*"},
	}
}

// MockConfigWithServers points the upstream base URLs at test servers
func MockConfigWithServers(identityURL, frankfurterURL string) *config.Config {
	cfg := MockConfig()
	if identityURL != "" {
		cfg.Firebase.SignInBaseURL = identityURL + "/v1"
		cfg.Firebase.AdminEndpoint = identityURL + "/admin/"
	}
	if frankfurterURL != "" {
		cfg.FrankfurterBaseURL = frankfurterURL
	}
	return cfg
}
