package normalize

import "strings"

// Word lists for reply polarity. Matching is exact on the trimmed,
// lower-cased message; substring matching would misfire on inputs like
// "no classes tomorrow?".
var (
	affirmativeReplies = map[string]bool{
		"yes": true, "yep": true, "ya": true, "yeah": true, "correct": true,
		"y": true, "that is right": true, "that's right": true, "ok": true,
		"okay": true, "yes please": true, "sure": true,
	}

	negativeReplies = map[string]bool{
		"no": true, "nope": true, "n": true, "nah": true, "wrong": true,
		"that is wrong": true, "that's wrong": true, "no thanks": true,
		"no thank you": true,
	}
)

// IsAffirmative reports whether the message is a bare "yes" style answer.
func IsAffirmative(message string) bool {
	return affirmativeReplies[strings.ToLower(strings.TrimSpace(message))]
}

// IsNegative reports whether the message is a bare "no" style answer.
func IsNegative(message string) bool {
	return negativeReplies[strings.ToLower(strings.TrimSpace(message))]
}
