package whatsapp

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	conversationRepo "yumres/database/repository/conversation"
	customerRepo "yumres/database/repository/customer"
	"yumres/models"
)

// RestaurantSource provides the restaurant profile (cached read path).
type RestaurantSource interface {
	GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error)
}

// AgentLoop produces the bot's reply for one inbound message.
type AgentLoop interface {
	Reply(ctx context.Context, restaurant *models.Restaurant, customerID string, history []models.ChatTurn, userText string) (string, error)
}

// InboundService runs the webhook-to-reply pipeline: normalize, persist the
// inbound message, gate on assignment, run the agent loop, send, persist the
// outbound message.
type InboundService struct {
	Restaurants   RestaurantSource
	Customers     customerRepo.CustomerRepository
	Conversations conversationRepo.ConversationRepository
	Agent         AgentLoop
	// Providers resolves a vendor tag to a transport; defaults to ProviderFor.
	Providers     func(tag string) (Provider, error)
	HistoryWindow int
	Logger        *zap.Logger
}

// HandleInbound processes one normalized inbound message for a restaurant.
func (s *InboundService) HandleInbound(ctx context.Context, restaurantID string, msg *models.InboundMessage) error {
	restaurant, err := s.Restaurants.GetProfile(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("restaurant not found: %w", err)
	}

	customer, err := s.Customers.UpsertByPhone(ctx, msg.From, msg.ProfileName)
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}

	conversation, err := s.findOrCreateConversation(ctx, restaurant, customer)
	if err != nil {
		return err
	}

	inbound := &models.Message{
		ConversationID: conversation.ID,
		Sender:         models.SenderCustomer,
		Direction:      models.DirectionInbound,
		Body:           msg.Body,
		ExternalID:     msg.MessageID,
	}
	if err := s.Conversations.AppendMessage(ctx, inbound); err != nil {
		return fmt.Errorf("failed to store inbound message: %w", err)
	}
	if err := s.Conversations.Touch(ctx, conversation.ID); err != nil {
		s.Logger.Warn("failed to touch conversation", zap.String("conversationID", conversation.ID), zap.Error(err))
	}

	// Hard gate: a human owns this thread, the bot stays silent.
	if conversation.AssignedTo == models.AssigneeAgent {
		s.Logger.Debug("conversation assigned to a human agent, skipping bot",
			zap.String("conversationID", conversation.ID))
		return nil
	}

	history, err := s.historyBefore(ctx, conversation.ID, inbound.ID)
	if err != nil {
		return err
	}

	reply, err := s.Agent.Reply(ctx, restaurant, customer.ID, history, msg.Body)
	if err != nil {
		return err
	}
	if reply == "" {
		// The model had nothing to say; no outbound message is produced.
		return nil
	}

	provider, err := s.provider(restaurant.WhatsAppProvider)
	if err != nil {
		return err
	}
	if err := provider.SendText(ctx, msg.From, reply); err != nil {
		// The reply is lost on send failure: no outbound record is written.
		return fmt.Errorf("failed to send reply: %w", err)
	}

	outbound := &models.Message{
		ConversationID: conversation.ID,
		Sender:         models.SenderBot,
		Direction:      models.DirectionOutbound,
		Body:           reply,
	}
	if err := s.Conversations.AppendMessage(ctx, outbound); err != nil {
		return fmt.Errorf("failed to store outbound message: %w", err)
	}
	if err := s.Conversations.Touch(ctx, conversation.ID); err != nil {
		s.Logger.Warn("failed to touch conversation", zap.String("conversationID", conversation.ID), zap.Error(err))
	}
	return nil
}

func (s *InboundService) findOrCreateConversation(ctx context.Context, restaurant *models.Restaurant, customer *models.Customer) (*models.Conversation, error) {
	conversation, err := s.Conversations.FindActive(ctx, restaurant.ID, customer.ID)
	if err == nil {
		return conversation, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}

	conversation = &models.Conversation{
		RestaurantID: restaurant.ID,
		CustomerID:   customer.ID,
		Status:       models.ConversationActive,
		AssignedTo:   models.AssigneeBot,
		Source:       models.SourceWhatsApp,
	}
	if err := s.Conversations.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

// historyBefore returns the most recent HistoryWindow messages, excluding the
// just-stored inbound one, re-ordered oldest first for the LLM.
func (s *InboundService) historyBefore(ctx context.Context, conversationID, excludeID string) ([]models.ChatTurn, error) {
	messages, err := s.Conversations.RecentMessages(ctx, conversationID, s.HistoryWindow+1)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// messages are newest first; walk backwards to build oldest-first turns.
	var turns []models.ChatTurn
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.ID == excludeID {
			continue
		}
		role := "assistant"
		if m.Sender == models.SenderCustomer {
			role = "user"
		}
		turns = append(turns, models.ChatTurn{Role: role, Content: m.Body})
	}
	if len(turns) > s.HistoryWindow {
		turns = turns[len(turns)-s.HistoryWindow:]
	}
	return turns, nil
}

func (s *InboundService) provider(tag string) (Provider, error) {
	if s.Providers != nil {
		return s.Providers(tag)
	}
	return ProviderFor(tag)
}
