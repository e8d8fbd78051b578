package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Message metrics
	MessagesTotal          *prometheus.CounterVec
	MessageDurationSeconds *prometheus.HistogramVec
	ResponsesTotal         *prometheus.CounterVec

	// Intent metrics
	IntentsTotal        *prometheus.CounterVec
	IntentFallbackTotal *prometheus.CounterVec

	// Conversation metrics
	ConversationsStarted *prometheus.CounterVec
	ConversationPivots   prometheus.Counter
	ConversationResets   *prometheus.CounterVec
	ConversationTurns    prometheus.Histogram
	PendingActionsTotal  *prometheus.CounterVec

	// Catalog metrics
	CatalogQueriesTotal    *prometheus.CounterVec
	CatalogDurationSeconds *prometheus.HistogramVec

	// LLM metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMDurationSeconds *prometheus.HistogramVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped     *prometheus.CounterVec
	RateLimiterActiveUsers *prometheus.GaugeVec

	// Catalog size gauges, updated by a background job
	CatalogRows *prometheus.GaugeVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Message metrics
		MessagesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_messages_total",
				Help: "Total number of inbound messages by channel and status",
			},
			[]string{"channel", "status"}, // status: success, error, rate_limited
		),

		MessageDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campus_message_duration_seconds",
				Help:    "End-to-end message handling duration in seconds by channel",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"channel"}, // channel: web, whatsapp
		),

		ResponsesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_responses_total",
				Help: "Total number of responses by kind",
			},
			[]string{"kind"}, // kind: answer, prompt, clarification, fallback
		),

		// Intent metrics
		IntentsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_intents_total",
				Help: "Total number of classified intents by intent name",
			},
			[]string{"intent"},
		),

		IntentFallbackTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_intent_fallback_total",
				Help: "Total number of intent classifications served by a fallback provider",
			},
			[]string{"provider"},
		),

		// Conversation metrics
		ConversationsStarted: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_conversations_started_total",
				Help: "Total number of slot-filling conversations started by intent",
			},
			[]string{"intent"},
		),

		ConversationPivots: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "campus_conversation_pivots_total",
				Help: "Total number of in-family intent pivots that preserved filled slots",
			},
		),

		ConversationResets: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_conversation_resets_total",
				Help: "Total number of conversation resets by reason",
			},
			[]string{"reason"}, // reason: completed, abandoned, expired, error
		),

		ConversationTurns: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campus_conversation_turns",
				Help:    "Number of turns taken to complete a slot-filling conversation",
				Buckets: []float64{1, 2, 3, 4, 5, 7, 10},
			},
		),

		PendingActionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_pending_actions_total",
				Help: "Total number of pending side-actions by action and outcome",
			},
			[]string{"action", "outcome"}, // outcome: confirmed, rejected, resolved
		),

		// Catalog metrics
		CatalogQueriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_catalog_queries_total",
				Help: "Total number of catalog queries by table and status",
			},
			[]string{"table", "status"}, // status: hit, miss, error
		),

		CatalogDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campus_catalog_duration_seconds",
				Help:    "Catalog query duration in seconds by table",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"table"},
		),

		// LLM metrics
		LLMRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_llm_requests_total",
				Help: "Total number of LLM requests by provider, operation and status",
			},
			[]string{"provider", "operation", "status"}, // operation: intent, respond
		),

		LLMDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campus_llm_duration_seconds",
				Help:    "LLM request duration in seconds by provider and operation",
				Buckets: []float64{0.5, 1, 2, 5, 10, 15, 30},
			},
			[]string{"provider", "operation"},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_http_errors_total",
				Help: "Total HTTP errors by type and module",
			},
			[]string{"error_type", "module"}, // error_type: timeout, rate_limit, invalid_signature, etc.
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: user, llm
		),

		RateLimiterActiveUsers: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "campus_rate_limiter_active_users",
				Help: "Current number of tracked per-user limiters by limiter type",
			},
			[]string{"limiter_type"},
		),

		CatalogRows: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "campus_catalog_rows",
				Help: "Current number of rows per catalog table",
			},
			[]string{"table"},
		),
	}

	return m
}

// RecordMessage records an inbound message with handling status
func (m *Metrics) RecordMessage(channel, status string, duration float64) {
	m.MessagesTotal.WithLabelValues(channel, status).Inc()
	m.MessageDurationSeconds.WithLabelValues(channel).Observe(duration)
}

// RecordResponse records an outbound response by kind
func (m *Metrics) RecordResponse(kind string) {
	m.ResponsesTotal.WithLabelValues(kind).Inc()
}

// RecordIntent records a classified intent
func (m *Metrics) RecordIntent(intent string) {
	m.IntentsTotal.WithLabelValues(intent).Inc()
}

// RecordIntentFallback records an intent classification served by a fallback provider
func (m *Metrics) RecordIntentFallback(provider string) {
	m.IntentFallbackTotal.WithLabelValues(provider).Inc()
}

// RecordConversationStarted records a new slot-filling conversation
func (m *Metrics) RecordConversationStarted(intent string) {
	m.ConversationsStarted.WithLabelValues(intent).Inc()
}

// RecordConversationPivot records an in-family intent pivot
func (m *Metrics) RecordConversationPivot() {
	m.ConversationPivots.Inc()
}

// RecordConversationReset records a conversation reset with its reason
func (m *Metrics) RecordConversationReset(reason string) {
	m.ConversationResets.WithLabelValues(reason).Inc()
}

// RecordConversationTurns records how many turns a completed conversation took
func (m *Metrics) RecordConversationTurns(turns float64) {
	m.ConversationTurns.Observe(turns)
}

// RecordPendingAction records a pending side-action resolution
func (m *Metrics) RecordPendingAction(action, outcome string) {
	m.PendingActionsTotal.WithLabelValues(action, outcome).Inc()
}

// RecordCatalogQuery records a catalog query with status
func (m *Metrics) RecordCatalogQuery(table, status string, duration float64) {
	m.CatalogQueriesTotal.WithLabelValues(table, status).Inc()
	m.CatalogDurationSeconds.WithLabelValues(table).Observe(duration)
}

// RecordLLMRequest records an LLM request with status
func (m *Metrics) RecordLLMRequest(provider, operation, status string, duration float64) {
	m.LLMRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	m.LLMDurationSeconds.WithLabelValues(provider, operation).Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, module string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, module).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// SetRateLimiterUsers updates the tracked per-user limiter count for a limiter type
func (m *Metrics) SetRateLimiterUsers(limiterType string, count int) {
	m.RateLimiterActiveUsers.WithLabelValues(limiterType).Set(float64(count))
}

// SetCatalogRows updates the row count gauge for a catalog table
func (m *Metrics) SetCatalogRows(table string, count int) {
	m.CatalogRows.WithLabelValues(table).Set(float64(count))
}
