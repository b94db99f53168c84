package models

import "time"

// Conversation statuses.
const (
	ConversationActive   = "ACTIVE"
	ConversationResolved = "RESOLVED"
	ConversationArchived = "ARCHIVED"
)

// Conversation assignees. AssigneeAgent is a hard gate: the bot never
// generates or sends a message for a conversation assigned to a human.
const (
	AssigneeBot   = "BOT"
	AssigneeAgent = "AGENT"
)

// Message senders.
const (
	SenderCustomer = "CUSTOMER"
	SenderBot      = "BOT"
	SenderAgent    = "AGENT"
)

// Message directions.
const (
	DirectionInbound  = "INBOUND"
	DirectionOutbound = "OUTBOUND"
)

// Customer is a WhatsApp contact, identified by phone number.
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	Phone     string    `bson:"phone" json:"phone"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Conversation is one customer's thread with one restaurant. At most one
// non-resolved conversation exists per (customer, restaurant); the most
// recently updated one wins when duplicates slip in.
type Conversation struct {
	ID           string    `bson:"id" json:"id"`
	RestaurantID string    `bson:"restaurantId" json:"restaurantId"`
	CustomerID   string    `bson:"customerId" json:"customerId"`
	Status       string    `bson:"status" json:"status"`
	AssignedTo   string    `bson:"assignedTo" json:"assignedTo"`
	Source       string    `bson:"source" json:"source"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Message ordering is strictly by CreatedAt; it is the only history ordering
// key the agent loop relies on.
type Message struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversationId" json:"conversationId"`
	Sender         string    `bson:"sender" json:"sender"`
	Direction      string    `bson:"direction" json:"direction"`
	Body           string    `bson:"body" json:"body"`
	ExternalID     string    `bson:"externalId,omitempty" json:"externalId,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
