// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "CAMPUS_PORT"
	EnvLogLevel        = "CAMPUS_LOG_LEVEL"
	EnvShutdownTimeout = "CAMPUS_SHUTDOWN_TIMEOUT"
	EnvServerName      = "CAMPUS_SERVER_NAME"
	EnvInstanceID      = "CAMPUS_INSTANCE_ID"

	// Data
	EnvDataDir  = "CAMPUS_DATA_DIR"
	EnvSeedFile = "CAMPUS_SEED_FILE"

	// Conversations
	EnvConversationTTL   = "CAMPUS_CONVERSATION_TTL"
	EnvConversationStore = "CAMPUS_CONVERSATION_STORE"
	EnvRedisURL          = "CAMPUS_REDIS_URL"

	// Message processing
	EnvMessageTimeout = "CAMPUS_MESSAGE_TIMEOUT"

	// Twilio WhatsApp channel
	EnvTwilioEnabled    = "CAMPUS_TWILIO_ENABLED"
	EnvTwilioAccountSID = "CAMPUS_TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken  = "CAMPUS_TWILIO_AUTH_TOKEN"
	EnvTwilioFromNumber = "CAMPUS_TWILIO_FROM_NUMBER"

	// Rate Limits
	EnvGlobalRateRPS  = "CAMPUS_GLOBAL_RATE_RPS"
	EnvUserRateBurst  = "CAMPUS_USER_RATE_BURST"
	EnvUserRateRefill = "CAMPUS_USER_RATE_REFILL"
	EnvLLMRateBurst   = "CAMPUS_LLM_RATE_BURST"
	EnvLLMRateRefill  = "CAMPUS_LLM_RATE_REFILL"
	EnvLLMRateDaily   = "CAMPUS_LLM_RATE_DAILY"

	// LLM Feature
	EnvLLMEnabled              = "CAMPUS_LLM_ENABLED"
	EnvLLMProviders            = "CAMPUS_LLM_PROVIDERS"
	EnvGeminiAPIKey            = "CAMPUS_GEMINI_API_KEY"
	EnvGroqAPIKey              = "CAMPUS_GROQ_API_KEY"
	EnvCerebrasAPIKey          = "CAMPUS_CEREBRAS_API_KEY"
	EnvGeminiIntentModels      = "CAMPUS_GEMINI_INTENT_MODELS"
	EnvGeminiResponderModels   = "CAMPUS_GEMINI_RESPONDER_MODELS"
	EnvGroqIntentModels        = "CAMPUS_GROQ_INTENT_MODELS"
	EnvGroqResponderModels     = "CAMPUS_GROQ_RESPONDER_MODELS"
	EnvCerebrasIntentModels    = "CAMPUS_CEREBRAS_INTENT_MODELS"
	EnvCerebrasResponderModels = "CAMPUS_CEREBRAS_RESPONDER_MODELS"

	// Sentry Feature
	EnvSentryEnabled          = "CAMPUS_SENTRY_ENABLED"
	EnvSentryDSN              = "CAMPUS_SENTRY_DSN"
	EnvSentryEnvironment      = "CAMPUS_SENTRY_ENVIRONMENT"
	EnvSentryRelease          = "CAMPUS_SENTRY_RELEASE"
	EnvSentrySampleRate       = "CAMPUS_SENTRY_SAMPLE_RATE"
	EnvSentryTracesSampleRate = "CAMPUS_SENTRY_TRACES_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackEnabled  = "CAMPUS_BETTERSTACK_ENABLED"
	EnvBetterStackToken    = "CAMPUS_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "CAMPUS_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "CAMPUS_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "CAMPUS_METRICS_USERNAME"
	EnvMetricsPassword    = "CAMPUS_METRICS_PASSWORD"
)
