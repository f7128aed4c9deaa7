package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FirebaseConfig holds the identity provider settings
type FirebaseConfig struct {
	APIKey          string
	ProjectID       string
	CredentialsFile string
	SignInBaseURL   string
	AdminEndpoint   string // empty = library default
	JWKSURL         string
}

// Config holds all configuration for the application
type Config struct {
	Port     string
	LogLevel string

	Firebase FirebaseConfig

	FrankfurterBaseURL    string
	UpstreamTimeout       time.Duration
	MaxConcurrentRequests int

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitBurst    int

	CORSAllowedOrigins []string

	// Forwarding headers are only honored from these addresses or CIDRs
	TrustedProxies []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return fromViper(newViper()), nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("FIREBASE_API_KEY", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FIREBASE_SIGN_IN_BASE_URL", "https://identitytoolkit.googleapis.com/v1")
	v.SetDefault("FIREBASE_ADMIN_ENDPOINT", "")
	v.SetDefault("FIREBASE_JWKS_URL", "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com")

	v.SetDefault("FRANKFURTER_API_BASE_URL", "https://api.frankfurter.app")
	v.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	v.SetDefault("MAX_CONCURRENT_REQUESTS", 4)

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("TRUSTED_PROXIES", "")

	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),

		Firebase: FirebaseConfig{
			APIKey:          v.GetString("FIREBASE_API_KEY"),
			ProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
			CredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
			SignInBaseURL:   strings.TrimRight(v.GetString("FIREBASE_SIGN_IN_BASE_URL"), "/"),
			AdminEndpoint:   v.GetString("FIREBASE_ADMIN_ENDPOINT"),
			JWKSURL:         v.GetString("FIREBASE_JWKS_URL"),
		},

		FrankfurterBaseURL:    strings.TrimRight(v.GetString("FRANKFURTER_API_BASE_URL"), "/"),
		UpstreamTimeout:       positiveSeconds(v.GetInt("UPSTREAM_TIMEOUT_SECONDS"), 10),
		MaxConcurrentRequests: v.GetInt("MAX_CONCURRENT_REQUESTS"),

		RateLimitEnabled:  v.GetBool("RATE_LIMIT_ENABLED"),
		RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:   positiveSeconds(v.GetInt("RATE_LIMIT_WINDOW_SECONDS"), 60),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:     splitList(v.GetString("TRUSTED_PROXIES")),
	}
}

// positiveSeconds converts a seconds setting, falling back when it is not positive
func positiveSeconds(seconds, fallback int) time.Duration {
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}

func splitList(raw string) []string {
	values := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
