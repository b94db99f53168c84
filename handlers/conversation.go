package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	conversationSvc "yumres/services/conversation"
)

// ConversationHandler exposes the dashboard inbox: conversation listing,
// transcripts, assignment, and manual agent replies.
type ConversationHandler struct {
	Service *conversationSvc.Service
}

func NewConversationHandler(service *conversationSvc.Service) *ConversationHandler {
	return &ConversationHandler{Service: service}
}

// ListConversationsHandler returns the restaurant's conversations, newest
// activity first. Pass ?status= to filter.
func (h *ConversationHandler) ListConversationsHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")

	conversations, err := h.Service.List(c.Request.Context(), restaurantID, c.Query("status"))
	if err != nil {
		logger.Error("Failed to list conversations", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetConversationHandler returns one conversation with its full transcript.
func (h *ConversationHandler) GetConversationHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	conversation, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error("Conversation not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	messages, err := h.Service.Messages(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to load messages", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conversation, "messages": messages})
}

// AssignConversationHandler hands a conversation to the bot or to a human
// agent. While assigned to an agent the bot stays silent.
func (h *ConversationHandler) AssignConversationHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var input struct {
		AssignedTo string `json:"assignedTo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.Assign(c.Request.Context(), id, input.AssignedTo); err != nil {
		logger.Error("Failed to assign conversation",
			zap.String("id", id), zap.String("assignedTo", input.AssignedTo), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation assigned"})
}

// ResolveConversationHandler marks a conversation resolved.
func (h *ConversationHandler) ResolveConversationHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.Service.Resolve(c.Request.Context(), id); err != nil {
		logger.Error("Failed to resolve conversation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation resolved"})
}

// ArchiveConversationHandler archives a conversation.
func (h *ConversationHandler) ArchiveConversationHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.Service.Archive(c.Request.Context(), id); err != nil {
		logger.Error("Failed to archive conversation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation archived"})
}

// SendAgentReplyHandler sends a human-typed reply over WhatsApp and records
// it in the transcript.
func (h *ConversationHandler) SendAgentReplyHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var input struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.Service.SendAgentReply(c.Request.Context(), id, input.Body)
	if err != nil {
		logger.Error("Failed to send agent reply", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reply"})
		return
	}
	c.JSON(http.StatusOK, message)
}
