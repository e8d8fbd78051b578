package webhook

import (
	"strings"
	"unicode"
)

// defaultMaxMessageLength caps inbound message length in runes. Long
// pastes would only waste LLM tokens; no supported question needs more.
const defaultMaxMessageLength = 500

// sanitizeMessage collapses runs of whitespace into single spaces,
// strips other control characters, trims, and truncates to maxLen runes.
// Returns ok=false when nothing usable remains.
func sanitizeMessage(text string, maxLen int) (string, bool) {
	var b strings.Builder
	b.Grow(len(text))

	prevWasSpace := true // trims leading whitespace
	count := 0
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevWasSpace {
				b.WriteRune(' ')
				prevWasSpace = true
				count++
			}
		case unicode.IsControl(r):
			// Dropped entirely; NUL and escape bytes have shown up in
			// webhook payloads from broken clients.
		default:
			b.WriteRune(r)
			prevWasSpace = false
			count++
		}
		if count >= maxLen {
			break
		}
	}

	result := strings.TrimRight(b.String(), " ")
	if result == "" {
		return "", false
	}
	return result, true
}
