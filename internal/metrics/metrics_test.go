package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.MessagesTotal == nil {
		t.Error("MessagesTotal is nil")
	}
	if m.MessageDurationSeconds == nil {
		t.Error("MessageDurationSeconds is nil")
	}
	if m.ResponsesTotal == nil {
		t.Error("ResponsesTotal is nil")
	}
	if m.IntentsTotal == nil {
		t.Error("IntentsTotal is nil")
	}
	if m.IntentFallbackTotal == nil {
		t.Error("IntentFallbackTotal is nil")
	}
	if m.ConversationsStarted == nil {
		t.Error("ConversationsStarted is nil")
	}
	if m.ConversationPivots == nil {
		t.Error("ConversationPivots is nil")
	}
	if m.ConversationResets == nil {
		t.Error("ConversationResets is nil")
	}
	if m.ConversationTurns == nil {
		t.Error("ConversationTurns is nil")
	}
	if m.PendingActionsTotal == nil {
		t.Error("PendingActionsTotal is nil")
	}
	if m.CatalogQueriesTotal == nil {
		t.Error("CatalogQueriesTotal is nil")
	}
	if m.LLMRequestsTotal == nil {
		t.Error("LLMRequestsTotal is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
	if m.RateLimiterDropped == nil {
		t.Error("RateLimiterDropped is nil")
	}
}

func TestRecordMessage(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordMessage("web", "success", 0.5)
	m.RecordMessage("whatsapp", "error", 2.0)
	m.RecordMessage("web", "rate_limited", 0.001)
}

func TestRecordIntent(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordIntent("get_timetable")
	m.RecordIntent("get_faculty_availability")
	m.RecordIntent("unknown")
}

func TestRecordConversationLifecycle(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordConversationStarted("get_timetable")
	m.RecordConversationPivot()
	m.RecordConversationTurns(3)
	m.RecordConversationReset("completed")
	m.RecordConversationReset("abandoned")
	m.RecordPendingAction("confirm_faculty_name", "confirmed")
	m.RecordPendingAction("clarify_faculty_name", "resolved")
}

func TestRecordCatalogQuery(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordCatalogQuery("faculty", "hit", 0.002)
	m.RecordCatalogQuery("timetable_slots", "miss", 0.001)
	m.RecordCatalogQuery("placements", "error", 0.1)
}

func TestRecordLLMRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordLLMRequest("gemini", "intent", "success", 1.2)
	m.RecordLLMRequest("groq", "intent", "error", 5.0)
	m.RecordLLMRequest("gemini", "respond", "success", 2.5)
}

func TestRecordHTTPError(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordHTTPError("timeout", "webhook")
	m.RecordHTTPError("rate_limit", "chat")
	m.RecordHTTPError("invalid_signature", "webhook")
}

func TestRecordRateLimiterDrop(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordRateLimiterDrop("user")
	m.RecordRateLimiterDrop("global")
	m.RecordRateLimiterDrop("llm")
}

func TestMetrics_WithDefaultRegistry(t *testing.T) {
	// Test that metrics can be created with a new registry
	// without conflicting with default registry
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Record some metrics
	m.RecordMessage("web", "success", 1.0)
	m.RecordIntent("get_timetable")
	m.RecordCatalogQuery("faculty", "hit", 0.002)

	// Gather metrics to verify they were recorded
	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Should have metrics registered
	if len(metricFamilies) == 0 {
		t.Error("No metrics were gathered")
	}

	// Check for specific metric names
	expectedMetrics := map[string]bool{
		"campus_messages_total":           false,
		"campus_message_duration_seconds": false,
		"campus_intents_total":            false,
		"campus_catalog_queries_total":    false,
		"campus_catalog_duration_seconds": false,
	}

	for _, mf := range metricFamilies {
		if _, ok := expectedMetrics[mf.GetName()]; ok {
			expectedMetrics[mf.GetName()] = true
		}
	}

	for name, found := range expectedMetrics {
		if !found {
			t.Errorf("Expected metric %q not found", name)
		}
	}
}
