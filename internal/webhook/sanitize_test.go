package webhook

import (
	"strings"
	"testing"
)

func TestSanitizeMessage(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"plain", "where is the library", "where is the library", true},
		{"collapses whitespace", "  show \t me\n\nthe   timetable  ", "show me the timetable", true},
		{"strips control chars", "hi\x00the\x1bre", "hithere", true},
		{"empty", "", "", false},
		{"whitespace only", " \n\t ", "", false},
		{"control only", "\x00\x07", "", false},
		{"unicode kept", "café schedule", "café schedule", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sanitizeMessage(tt.in, defaultMaxMessageLength)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("sanitizeMessage(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSanitizeMessageTruncates(t *testing.T) {
	long := strings.Repeat("a", 600)
	got, ok := sanitizeMessage(long, 100)
	if !ok {
		t.Fatal("truncated message should still be ok")
	}
	if len([]rune(got)) != 100 {
		t.Errorf("length = %d, want 100", len([]rune(got)))
	}
}
