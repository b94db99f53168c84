package models

// ChatTurn is one prior conversation turn handed to the LLM or the heuristic
// extractor. Role is "user" or "assistant".
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SlotAvailability is one 30-minute candidate slot within operating hours.
type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// AvailabilityResult is the availability engine's answer for one query.
// For a specific-time query Slots is empty and Available answers for that
// time; for an open-ended query Slots carries the whole grid unless the day
// is fully booked or closed.
type AvailabilityResult struct {
	Open      bool               `json:"open"`
	Available bool               `json:"available"`
	Message   string             `json:"message"`
	Slots     []SlotAvailability `json:"slots,omitempty"`
}
