// Package respond turns catalog rows into user-facing chat messages.
// Formatters are pure functions over storage models; they never query,
// never return errors, and always return non-empty text so the
// orchestrator can send whatever comes back. Bold markers use the
// WhatsApp/Markdown double-asterisk style.
package respond

import (
	"fmt"
	"strings"
)

// Reply is one outbound message. MediaURL is set only when a formatter
// has an image worth attaching, such as a faculty photo or a campus map.
type Reply struct {
	Text     string
	MediaURL string
}

// Text wraps plain text in a Reply.
func Text(s string) Reply {
	return Reply{Text: s}
}

func bold(s string) string {
	return "**" + s + "**"
}

// capitalize uppercases the first rune only, leaving the rest alone.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// trimFloat renders a CTC amount without trailing zeros, so 10 stays
// "10" and 4.5 stays "4.5".
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
