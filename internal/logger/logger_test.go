package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/campus-chatbot-go/internal/ctxutil"
)

func parseLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestNewWithWriterLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug passes everything", "debug", true, true},
		{"info drops debug", "info", false, true},
		{"warn drops info", "warn", false, false},
		{"unknown defaults to info", "chatty", false, true},
		{"empty defaults to info", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.level, &buf)

			log.Debug("debug line")
			debugSeen := buf.Len() > 0
			buf.Reset()
			log.Info("info line")
			infoSeen := buf.Len() > 0

			assert.Equal(t, tt.debugSeen, debugSeen, "debug visibility")
			assert.Equal(t, tt.infoSeen, infoSeen, "info visibility")
		})
	}
}

func TestJSONFieldRenames(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Warn("low disk")
	entry := parseLine(t, &buf)

	assert.Equal(t, "low disk", entry["message"])
	assert.Equal(t, "warning", entry["level"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, entry, "msg")
}

func TestWithModuleAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("webhook").WithRequestID("req-1").Info("handled")
	entry := parseLine(t, &buf)

	assert.Equal(t, "webhook", entry["module"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestWithErrorAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithError(assert.AnError).WithFields(map[string]any{
		"user_id": "web_user",
		"turns":   3,
	}).Error("turn failed")
	entry := parseLine(t, &buf)

	assert.Equal(t, assert.AnError.Error(), entry["error"])
	assert.Equal(t, "web_user", entry["user_id"])
	assert.Equal(t, float64(3), entry["turns"])
	assert.Equal(t, "error", entry["level"])
}

func TestContextValuesReachRecords(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	ctx := ctxutil.WithUserID(t.Context(), "whatsapp:+100")
	ctx = ctxutil.WithChannel(ctx, "whatsapp")
	log.InfoContext(ctx, "message received")
	entry := parseLine(t, &buf)

	assert.Equal(t, "whatsapp:+100", entry["user_id"])
	assert.Equal(t, "whatsapp", entry["channel"])
}

func TestFormattedHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Infof("seeded %d tables", 4)
	entry := parseLine(t, &buf)
	assert.Equal(t, "seeded 4 tables", entry["message"])
}

func TestNewWithOptionsPlainWhenNoToken(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions("info", &buf, Options{})

	log.Info("hello")
	entry := parseLine(t, &buf)
	assert.Equal(t, "hello", entry["message"])
}
