package conversation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	conversationRepo "yumres/database/repository/conversation"
	customerRepo "yumres/database/repository/customer"
	"yumres/models"
	"yumres/utils"
)

// TextSender delivers an outbound text to a customer channel address;
// satisfied by the WhatsApp provider adapters.
type TextSender interface {
	SendText(ctx context.Context, to, body string) error
}

// SenderResolver picks the transport for a restaurant's configured vendor tag.
type SenderResolver func(providerTag string) (TextSender, error)

// RestaurantSource provides the restaurant profile (cached).
type RestaurantSource interface {
	GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error)
}

// Service is the dashboard side of conversations: listing threads, flipping
// the bot/human assignment, and letting a human agent reply.
type Service struct {
	Repo        conversationRepo.ConversationRepository
	Customers   customerRepo.CustomerRepository
	Restaurants RestaurantSource
	Sender      SenderResolver
}

func (s *Service) List(ctx context.Context, restaurantID, status string) ([]models.Conversation, error) {
	return s.Repo.List(ctx, restaurantID, status)
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) Messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	return s.Repo.Messages(ctx, conversationID)
}

// Assign hands the conversation to the bot or a human agent. Assigning to
// AGENT is the gate that silences the bot for the thread.
func (s *Service) Assign(ctx context.Context, conversationID, assignee string) error {
	if assignee != models.AssigneeBot && assignee != models.AssigneeAgent {
		return fmt.Errorf("invalid assignee %q", assignee)
	}
	return s.Repo.SetAssignment(ctx, conversationID, assignee)
}

// Resolve closes a conversation; the next inbound message starts a fresh one.
func (s *Service) Resolve(ctx context.Context, conversationID string) error {
	return s.Repo.SetStatus(ctx, conversationID, models.ConversationResolved)
}

// Archive hides a resolved conversation from the default listing.
func (s *Service) Archive(ctx context.Context, conversationID string) error {
	return s.Repo.SetStatus(ctx, conversationID, models.ConversationArchived)
}

// SendAgentReply delivers a human agent's reply through the restaurant's
// WhatsApp transport and records it on the thread. Like the bot path, the
// message record is only written after a successful send.
func (s *Service) SendAgentReply(ctx context.Context, conversationID, body string) (*models.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("reply body is required")
	}

	conversation, err := s.Repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("conversation not found: %w", err)
	}
	customer, err := s.Customers.GetByID(ctx, conversation.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	restaurant, err := s.Restaurants.GetProfile(ctx, conversation.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("restaurant not found: %w", err)
	}

	sender, err := s.Sender(restaurant.WhatsAppProvider)
	if err != nil {
		return nil, err
	}
	if err := sender.SendText(ctx, customer.Phone, body); err != nil {
		return nil, fmt.Errorf("failed to send reply: %w", err)
	}

	message := &models.Message{
		ConversationID: conversationID,
		Sender:         models.SenderAgent,
		Direction:      models.DirectionOutbound,
		Body:           body,
	}
	if err := s.Repo.AppendMessage(ctx, message); err != nil {
		utils.GetLogger().Error("agent reply sent but not recorded",
			zap.String("conversationID", conversationID), zap.Error(err))
		return nil, err
	}
	if err := s.Repo.Touch(ctx, conversationID); err != nil {
		utils.GetLogger().Warn("failed to touch conversation",
			zap.String("conversationID", conversationID), zap.Error(err))
	}
	return message, nil
}
