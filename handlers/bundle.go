package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all the endpoint handlers into one struct.
type HandlerBundle struct {
	// Restaurant endpoints.
	GetRestaurantHandler    gin.HandlerFunc
	UpdateRestaurantHandler gin.HandlerFunc
	ListTablesHandler       gin.HandlerFunc
	CreateTableHandler      gin.HandlerFunc
	UpdateTableHandler      gin.HandlerFunc
	DeleteTableHandler      gin.HandlerFunc

	// Reservation endpoints.
	ListReservationsHandler        gin.HandlerFunc
	GetReservationHandler          gin.HandlerFunc
	CreateReservationHandler       gin.HandlerFunc
	UpdateReservationHandler       gin.HandlerFunc
	UpdateReservationStatusHandler gin.HandlerFunc
	DeleteReservationHandler       gin.HandlerFunc
	CheckAvailabilityHandler       gin.HandlerFunc

	// Conversation endpoints.
	ListConversationsHandler    gin.HandlerFunc
	GetConversationHandler      gin.HandlerFunc
	AssignConversationHandler   gin.HandlerFunc
	ResolveConversationHandler  gin.HandlerFunc
	ArchiveConversationHandler  gin.HandlerFunc
	SendAgentReplyHandler       gin.HandlerFunc

	// Webhook endpoints.
	VerifyWebhookHandler  gin.HandlerFunc
	ReceiveWebhookHandler gin.HandlerFunc
}
