// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, conversation storage, rate limits, and LLM providers.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Conversation store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	ServerName      string
	InstanceID      string

	// Data Configuration
	DataDir  string // Data directory for the SQLite catalog database
	SeedFile string // Optional JSON seed file applied at startup (empty = skip)

	// Conversation Configuration
	ConversationTTL   time.Duration // Idle TTL before a conversation state is discarded
	ConversationStore string        // "memory" or "redis"
	RedisURL          string        // Redis connection URL (required when store is "redis")

	// Message Processing
	MessageTimeout time.Duration // Timeout for handling a single inbound message

	// Twilio WhatsApp Channel
	TwilioEnabled    bool
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// LLM Configuration
	LLMEnabled     bool
	LLMProviders   []string // Provider order for fallback: "gemini", "groq", "cerebras"
	GeminiAPIKey   string
	GroqAPIKey     string
	CerebrasAPIKey string

	// LLM Model Configuration (comma-separated, first is primary; empty = package defaults)
	GeminiIntentModels      []string
	GeminiResponderModels   []string
	GroqIntentModels        []string
	GroqResponderModels     []string
	CerebrasIntentModels    []string
	CerebrasResponderModels []string

	// Rate Limits (Token Bucket Algorithm)
	GlobalRateRPS  float64 // Global rate limit in requests per second
	UserRateBurst  float64 // Maximum burst tokens per user
	UserRateRefill float64 // Tokens refilled per second per user
	LLMRateBurst   float64 // Maximum burst tokens for LLM calls
	LLMRateRefill  float64 // LLM tokens refilled per hour
	LLMRateDaily   int     // Maximum LLM requests per day (0 = disabled)

	// Sentry
	SentryEnabled          bool
	SentryDSN              string
	SentryEnvironment      string
	SentryRelease          string
	SentrySampleRate       float64
	SentryTracesSampleRate float64

	// Better Stack log shipping
	BetterStackEnabled  bool
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics Authentication
	MetricsAuthEnabled bool
	MetricsUsername    string // Username for /metrics endpoint Basic Auth
	MetricsPassword    string // Password for /metrics endpoint Basic Auth
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Server Configuration
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),
		ServerName:      getEnv(EnvServerName, "campus-chatbot"),
		InstanceID:      getEnv(EnvInstanceID, ""),

		// Data Configuration
		DataDir:  getEnv(EnvDataDir, getDefaultDataDir()),
		SeedFile: getEnv(EnvSeedFile, ""),

		// Conversation Configuration
		ConversationTTL:   getDurationEnv(EnvConversationTTL, 30*time.Minute),
		ConversationStore: getEnv(EnvConversationStore, StoreMemory),
		RedisURL:          getEnv(EnvRedisURL, ""),

		// Message Processing
		MessageTimeout: getDurationEnv(EnvMessageTimeout, MessageProcessing),

		// Twilio WhatsApp Channel
		TwilioEnabled:    getBoolEnv(EnvTwilioEnabled, false),
		TwilioAccountSID: getEnv(EnvTwilioAccountSID, ""),
		TwilioAuthToken:  getEnv(EnvTwilioAuthToken, ""),
		TwilioFromNumber: getEnv(EnvTwilioFromNumber, ""),

		// LLM Configuration
		LLMEnabled:     getBoolEnv(EnvLLMEnabled, true),
		LLMProviders:   getListEnv(EnvLLMProviders, []string{"gemini", "groq"}),
		GeminiAPIKey:   getEnv(EnvGeminiAPIKey, ""),
		GroqAPIKey:     getEnv(EnvGroqAPIKey, ""),
		CerebrasAPIKey: getEnv(EnvCerebrasAPIKey, ""),

		// LLM Model Configuration (empty = use defaults from nlu package)
		GeminiIntentModels:      getListEnv(EnvGeminiIntentModels, nil),
		GeminiResponderModels:   getListEnv(EnvGeminiResponderModels, nil),
		GroqIntentModels:        getListEnv(EnvGroqIntentModels, nil),
		GroqResponderModels:     getListEnv(EnvGroqResponderModels, nil),
		CerebrasIntentModels:    getListEnv(EnvCerebrasIntentModels, nil),
		CerebrasResponderModels: getListEnv(EnvCerebrasResponderModels, nil),

		// Rate Limits
		GlobalRateRPS:  getFloatEnv(EnvGlobalRateRPS, 100.0),
		UserRateBurst:  getFloatEnv(EnvUserRateBurst, 15.0),
		UserRateRefill: getFloatEnv(EnvUserRateRefill, 0.5), // 1 per 2s
		LLMRateBurst:   getFloatEnv(EnvLLMRateBurst, 40.0),
		LLMRateRefill:  getFloatEnv(EnvLLMRateRefill, 20.0),
		LLMRateDaily:   getIntEnv(EnvLLMRateDaily, 200),

		// Sentry
		SentryEnabled:          getBoolEnv(EnvSentryEnabled, false),
		SentryDSN:              getEnv(EnvSentryDSN, ""),
		SentryEnvironment:      getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:          getEnv(EnvSentryRelease, ""),
		SentrySampleRate:       getFloatEnv(EnvSentrySampleRate, 1.0),
		SentryTracesSampleRate: getFloatEnv(EnvSentryTracesSampleRate, 0.1),

		// Better Stack
		BetterStackEnabled:  getBoolEnv(EnvBetterStackEnabled, false),
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		// Metrics Authentication
		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if c.ConversationTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvConversationTTL, c.ConversationTTL))
	}
	if c.MessageTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvMessageTimeout, c.MessageTimeout))
	}

	switch c.ConversationStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New(EnvRedisURL+" is required when conversation store is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q",
			EnvConversationStore, StoreMemory, StoreRedis, c.ConversationStore))
	}

	if c.TwilioEnabled {
		if c.TwilioAccountSID == "" {
			errs = append(errs, errors.New(EnvTwilioAccountSID+" is required when Twilio is enabled"))
		}
		if c.TwilioAuthToken == "" {
			errs = append(errs, errors.New(EnvTwilioAuthToken+" is required when Twilio is enabled"))
		}
		if c.TwilioFromNumber == "" {
			errs = append(errs, errors.New(EnvTwilioFromNumber+" is required when Twilio is enabled"))
		}
	}

	if c.LLMEnabled && !c.HasLLMProvider() {
		errs = append(errs, errors.New("at least one LLM API key is required when LLM is enabled"))
	}
	for _, p := range c.LLMProviders {
		switch p {
		case "gemini", "groq", "cerebras":
		default:
			errs = append(errs, fmt.Errorf("%s contains unknown provider %q", EnvLLMProviders, p))
		}
	}

	if c.UserRateBurst <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %f", EnvUserRateBurst, c.UserRateBurst))
	}
	if c.UserRateRefill <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %f", EnvUserRateRefill, c.UserRateRefill))
	}
	if c.GlobalRateRPS <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %f", EnvGlobalRateRPS, c.GlobalRateRPS))
	}
	if c.LLMRateDaily < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", EnvLLMRateDaily, c.LLMRateDaily))
	}

	if c.MetricsAuthEnabled && c.MetricsPassword == "" {
		errs = append(errs, errors.New(EnvMetricsPassword+" is required when metrics auth is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getListEnv retrieves a comma-separated environment variable as a slice.
// Whitespace around elements is trimmed and empty elements are dropped.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite catalog database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "campus.db")
}

// HasLLMProvider returns true if at least one LLM provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != "" || c.CerebrasAPIKey != ""
}
