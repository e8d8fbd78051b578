// Package config provides campus working-hours constants.
// Free-slot computation and availability answers treat anything outside
// these windows as non-teaching time.
package config

// College working hours, expressed as minutes since midnight.
const (
	// CollegeOpenMinute is when teaching hours begin (9:00).
	CollegeOpenMinute = 9 * 60

	// CollegeCloseMinute is when teaching hours end (16:30).
	CollegeCloseMinute = 16*60 + 30

	// MorningBreakStartMinute is the start of the short morning break (11:00).
	MorningBreakStartMinute = 11 * 60

	// MorningBreakEndMinute is the end of the short morning break (11:30).
	MorningBreakEndMinute = 11*60 + 30

	// LunchStartMinute is the start of the lunch break (13:30).
	LunchStartMinute = 13*60 + 30

	// LunchEndMinute is the end of the lunch break (14:30).
	LunchEndMinute = 14*60 + 30
)

// User-facing fallback messages. Kept here so every layer that must
// guarantee a non-empty reply uses the same wording.
const (
	// FallbackReply is sent when processing fails in a way the user cannot fix.
	FallbackReply = "Sorry, something went wrong on my end. Please try asking again."

	// RateLimitedReply is sent when a user exceeds their message budget.
	RateLimitedReply = "You're sending messages a bit too quickly. Give me a few seconds and try again."

	// UnknownReply is sent when the bot cannot make sense of a message outside a conversation.
	UnknownReply = "I'm not sure I understood that. You can ask me about timetables, faculty, placements, clubs, hostels, or campus facilities."
)
