package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yumres/config"
	"yumres/models"
	"yumres/services/whatsapp"
)

// RestaurantSource provides the restaurant profile (cached read path).
type RestaurantSource interface {
	GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error)
}

// WebhookHandler receives vendor webhooks and feeds them into the inbound
// pipeline.
type WebhookHandler struct {
	Inbound     *whatsapp.InboundService
	Restaurants RestaurantSource
}

func NewWebhookHandler(inbound *whatsapp.InboundService, restaurants RestaurantSource) *WebhookHandler {
	return &WebhookHandler{Inbound: inbound, Restaurants: restaurants}
}

// VerifyWebhookHandler answers the Meta Cloud API subscription handshake
// (GET with hub.mode/hub.verify_token/hub.challenge).
func (h *WebhookHandler) VerifyWebhookHandler(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == config.AppConfig.MetaVerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "verification failed")
}

// ReceiveWebhookHandler handles an inbound message webhook for one
// restaurant. The webhook is always acknowledged with 200 once the payload is
// parseable; agent failures must not cause vendor redelivery storms.
func (h *WebhookHandler) ReceiveWebhookHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.Param("restaurantId")

	restaurant, err := h.Restaurants.GetProfile(c.Request.Context(), restaurantID)
	if err != nil {
		logger.Warn("webhook for unknown restaurant", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	provider, err := whatsapp.ProviderFor(restaurant.WhatsAppProvider)
	if err != nil {
		logger.Error("restaurant has invalid provider configuration",
			zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Provider misconfigured"})
		return
	}

	if err := provider.ValidateWebhook(c); err != nil {
		logger.Warn("webhook validation failed",
			zap.String("restaurantID", restaurantID),
			zap.String("provider", provider.Name()),
			zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid webhook signature"})
		return
	}

	msg, err := provider.ParseWebhookPayload(c)
	if err != nil {
		// Status callbacks and other non-message payloads land here; ack them.
		logger.Debug("ignoring non-message webhook", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	if err := h.Inbound.HandleInbound(c.Request.Context(), restaurantID, msg); err != nil {
		logger.Error("inbound pipeline failed",
			zap.String("restaurantID", restaurantID),
			zap.String("messageID", msg.MessageID),
			zap.Error(err))
	}
	c.Status(http.StatusOK)
}
