package models

import "time"

// OperatingWindow describes one weekday's opening window. A missing Open or
// Close means the hours were never configured for that day.
type OperatingWindow struct {
	Open   string `bson:"open,omitempty" json:"open,omitempty"`
	Close  string `bson:"close,omitempty" json:"close,omitempty"`
	Closed bool   `bson:"closed" json:"closed"`
}

// Restaurant is the tenant profile. OperatingHours is keyed by lowercase
// weekday name ("monday".."sunday").
type Restaurant struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Address     string   `bson:"address,omitempty" json:"address,omitempty"`
	City        string   `bson:"city,omitempty" json:"city,omitempty"`
	Country     string   `bson:"country,omitempty" json:"country,omitempty"`
	Phone       string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string   `bson:"email,omitempty" json:"email,omitempty"`
	Cuisine     []string `bson:"cuisine,omitempty" json:"cuisine,omitempty"`

	OperatingHours map[string]OperatingWindow `bson:"operatingHours,omitempty" json:"operatingHours,omitempty"`

	// AIPrompt and AdditionalContext are appended verbatim to the booking
	// assistant's system prompt.
	AIPrompt          string `bson:"aiPrompt,omitempty" json:"aiPrompt,omitempty"`
	AdditionalContext string `bson:"additionalContext,omitempty" json:"additionalContext,omitempty"`

	// WhatsAppProvider selects the transport vendor ("twilio" or "meta").
	WhatsAppProvider string `bson:"whatsappProvider,omitempty" json:"whatsappProvider,omitempty"`
	WhatsAppNumber   string `bson:"whatsappNumber,omitempty" json:"whatsappNumber,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Table is used only to estimate seating capacity; reservations are not
// assigned to individual tables.
type Table struct {
	ID           string    `bson:"id" json:"id"`
	RestaurantID string    `bson:"restaurantId" json:"restaurantId"`
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	Capacity     int       `bson:"capacity" json:"capacity"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
