package models

import "time"

// Reservation lifecycle statuses.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationSeated    = "SEATED"
	ReservationCompleted = "COMPLETED"
	ReservationCancelled = "CANCELLED"
	ReservationNoShow    = "NO_SHOW"
)

// Reservation creation sources.
const (
	SourceDashboard = "DASHBOARD"
	SourceWhatsApp  = "WHATSAPP"
)

// Reservation holds one booking. Date is "2006-01-02" and Time is a 24h
// "HH:MM" string; slot matching compares the Time string exactly.
type Reservation struct {
	ID               string    `bson:"id" json:"id"`
	RestaurantID     string    `bson:"restaurantId" json:"restaurantId"`
	CustomerID       string    `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Date             string    `bson:"date" json:"date"`
	Time             string    `bson:"time" json:"time"`
	PartySize        int       `bson:"partySize" json:"partySize"`
	GuestName        string    `bson:"guestName" json:"guestName"`
	GuestPhone       string    `bson:"guestPhone,omitempty" json:"guestPhone,omitempty"`
	GuestEmail       string    `bson:"guestEmail,omitempty" json:"guestEmail,omitempty"`
	SpecialRequests  string    `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	Status           string    `bson:"status" json:"status"`
	Source           string    `bson:"source" json:"source"`
	ConfirmationCode string    `bson:"confirmationCode,omitempty" json:"confirmationCode,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReservationFilter narrows reservation listings. Zero-valued fields are
// ignored.
type ReservationFilter struct {
	Date       string
	Status     string
	CustomerID string
}
