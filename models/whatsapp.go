package models

import "time"

// InboundMessage is the vendor-neutral shape every webhook payload is
// normalized into before it reaches the conversation pipeline.
type InboundMessage struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Body        string    `json:"body"`
	MessageID   string    `json:"messageId"`
	ProfileName string    `json:"profileName,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// TemplateComponent is one component of a vendor template message, passed
// through to the vendor API as-is.
type TemplateComponent map[string]interface{}

// ReminderPayload is the asynq task payload for a scheduled reservation
// reminder.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	RestaurantID  string `json:"restaurantId"`
	GuestPhone    string `json:"guestPhone"`
	GuestName     string `json:"guestName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"partySize"`
}
