package agent

import (
	"regexp"
	"strings"

	"yumres/models"
)

// Extraction output keys.
const (
	FieldPartySize  = "partySize"
	FieldTime       = "time"
	FieldDate       = "date"
	FieldGuestName  = "guestName"
	FieldGuestPhone = "guestPhone"
)

// Pattern order matters: within each field the first matching pattern wins.
var (
	partySizePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:people|persons|guests|of us|pax)\b`),
		regexp.MustCompile(`(?i)\b(?:party of|table for|for)\s+(\d{1,3})\b`),
	}

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\b(?:at|around)\b|@)\s*(\d{1,2}(?::[0-5]\d)?\s*(?:am|pm))\b`),
		regexp.MustCompile(`(?i),\s*(\d{1,2}(?::[0-5]\d)?\s*(?:am|pm))\b`),
		regexp.MustCompile(`(?i)\b(\d{1,2}:[0-5]\d\s*(?:am|pm))\b`),
		regexp.MustCompile(`(?i)\b(\d{1,2}\s*(?:am|pm))\b`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(today|tomorrow)\b`),
		regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
		regexp.MustCompile(`(?i)\b(\d{1,2}(?:st|nd|rd|th)?\s+(?:january|february|march|april|may|june|july|august|september|october|november|december))\b`),
		regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
	}

	guestNamePattern = regexp.MustCompile(`(?:(?i:my name is|name is|i am|i'm|call me))\s+([A-Z][a-z]+)`)

	guestPhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:phone|number|contact)[^0-9+]{0,20}(\+?\d[\d\s-]{7,}\d)`),
		regexp.MustCompile(`(\+\d{10,15})`),
	}

	phoneWhitespace = regexp.MustCompile(`\s+`)
)

// Extract scans user turns for reservation slot-filling facts. Only
// role == "user" turns are read; assistant text is excluded so the bot echoing
// back draft values cannot produce false positives. Absent fields are omitted
// from the result. The function is pure: it never consults the clock, and
// relative tokens like "today" are returned literally.
func Extract(turns []models.ChatTurn) map[string]string {
	var parts []string
	for _, turn := range turns {
		if turn.Role == "user" {
			parts = append(parts, turn.Content)
		}
	}
	text := strings.Join(parts, "\n")

	out := make(map[string]string)
	if v := firstMatch(partySizePatterns, text); v != "" {
		out[FieldPartySize] = v
	}
	if v := firstMatch(timePatterns, text); v != "" {
		out[FieldTime] = v
	}
	if v := firstMatch(datePatterns, text); v != "" {
		out[FieldDate] = v
	}
	if m := guestNamePattern.FindStringSubmatch(text); m != nil {
		out[FieldGuestName] = m[1]
	}
	if v := firstMatch(guestPhonePatterns, text); v != "" {
		out[FieldGuestPhone] = phoneWhitespace.ReplaceAllString(v, "")
	}
	return out
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
