package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"yumres/models"
)

type fakeRestaurants struct {
	restaurant *models.Restaurant
}

func (f *fakeRestaurants) GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	if f.restaurant == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.restaurant, nil
}

type fakeCustomers struct {
	customer *models.Customer
}

func (f *fakeCustomers) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return f.customer, nil
}

func (f *fakeCustomers) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return f.customer, nil
}

func (f *fakeCustomers) UpsertByPhone(ctx context.Context, phone, name string) (*models.Customer, error) {
	if f.customer == nil {
		f.customer = &models.Customer{ID: "cust-1", Phone: phone, Name: name}
	}
	return f.customer, nil
}

// memConversations is an in-memory ConversationRepository.
type memConversations struct {
	active   *models.Conversation
	created  []*models.Conversation
	messages []models.Message
	nextID   int
}

func (m *memConversations) Create(ctx context.Context, conversation *models.Conversation) error {
	conversation.ID = fmt.Sprintf("conv-%d", len(m.created)+1)
	m.created = append(m.created, conversation)
	m.active = conversation
	return nil
}

func (m *memConversations) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	if m.active != nil && m.active.ID == id {
		return m.active, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memConversations) FindActive(ctx context.Context, restaurantID, customerID string) (*models.Conversation, error) {
	if m.active == nil {
		return nil, mongo.ErrNoDocuments
	}
	return m.active, nil
}

func (m *memConversations) List(ctx context.Context, restaurantID, status string) ([]models.Conversation, error) {
	return nil, nil
}

func (m *memConversations) SetAssignment(ctx context.Context, id, assignedTo string) error {
	m.active.AssignedTo = assignedTo
	return nil
}

func (m *memConversations) SetStatus(ctx context.Context, id, status string) error {
	m.active.Status = status
	return nil
}

func (m *memConversations) Touch(ctx context.Context, id string) error { return nil }

func (m *memConversations) AppendMessage(ctx context.Context, message *models.Message) error {
	m.nextID++
	message.ID = fmt.Sprintf("msg-%d", m.nextID)
	m.messages = append(m.messages, *message)
	return nil
}

func (m *memConversations) RecentMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	var out []models.Message
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.messages[i])
	}
	return out, nil
}

func (m *memConversations) Messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	return m.messages, nil
}

type fakeAgent struct {
	reply   string
	err     error
	calls   int
	history []models.ChatTurn
}

func (f *fakeAgent) Reply(ctx context.Context, restaurant *models.Restaurant, customerID string, history []models.ChatTurn, userText string) (string, error) {
	f.calls++
	f.history = history
	return f.reply, f.err
}

type fakeProvider struct {
	sent    []string
	sendErr error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ValidateWebhook(c *gin.Context) error { return nil }

func (f *fakeProvider) ParseWebhookPayload(c *gin.Context) (*models.InboundMessage, error) {
	return nil, errors.New("not a webhook transport")
}

func (f *fakeProvider) SendText(ctx context.Context, to, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, body)
	return nil
}

func (f *fakeProvider) SendTemplate(ctx context.Context, to, templateName string, components []models.TemplateComponent) error {
	return nil
}

func inboundRestaurant() *models.Restaurant {
	return &models.Restaurant{ID: "rest-1", Name: "Trattoria Nonna", WhatsAppProvider: ProviderMeta}
}

func inboundMessage(body string) *models.InboundMessage {
	return &models.InboundMessage{
		From:        "+351910000001",
		Body:        body,
		MessageID:   "wamid.1",
		ProfileName: "Ana",
	}
}

func newInboundService(conversations *memConversations, agent *fakeAgent, provider *fakeProvider) *InboundService {
	return &InboundService{
		Restaurants:   &fakeRestaurants{restaurant: inboundRestaurant()},
		Customers:     &fakeCustomers{},
		Conversations: conversations,
		Agent:         agent,
		Providers:     func(tag string) (Provider, error) { return provider, nil },
		HistoryWindow: 10,
		Logger:        zap.NewNop(),
	}
}

func TestHandleInboundCreatesConversationAndReplies(t *testing.T) {
	conversations := &memConversations{}
	agent := &fakeAgent{reply: "With pleasure! What day suits you?"}
	provider := &fakeProvider{}
	svc := newInboundService(conversations, agent, provider)

	err := svc.HandleInbound(context.Background(), "rest-1", inboundMessage("I'd like a table"))
	require.NoError(t, err)

	require.Len(t, conversations.created, 1)
	assert.Equal(t, models.AssigneeBot, conversations.created[0].AssignedTo)
	assert.Equal(t, models.SourceWhatsApp, conversations.created[0].Source)

	require.Len(t, conversations.messages, 2)
	assert.Equal(t, models.DirectionInbound, conversations.messages[0].Direction)
	assert.Equal(t, models.SenderCustomer, conversations.messages[0].Sender)
	assert.Equal(t, "wamid.1", conversations.messages[0].ExternalID)
	assert.Equal(t, models.DirectionOutbound, conversations.messages[1].Direction)
	assert.Equal(t, models.SenderBot, conversations.messages[1].Sender)
	assert.Equal(t, []string{"With pleasure! What day suits you?"}, provider.sent)
}

func TestHandleInboundSkipsBotWhenAgentOwnsThread(t *testing.T) {
	conversations := &memConversations{active: &models.Conversation{
		ID:         "conv-1",
		AssignedTo: models.AssigneeAgent,
		Status:     models.ConversationActive,
	}}
	agent := &fakeAgent{reply: "should never be sent"}
	provider := &fakeProvider{}
	svc := newInboundService(conversations, agent, provider)

	err := svc.HandleInbound(context.Background(), "rest-1", inboundMessage("hello?"))
	require.NoError(t, err)

	// The inbound message is still on record, but the bot never ran.
	require.Len(t, conversations.messages, 1)
	assert.Equal(t, models.DirectionInbound, conversations.messages[0].Direction)
	assert.Zero(t, agent.calls)
	assert.Empty(t, provider.sent)
}

func TestHandleInboundEmptyReplyStaysSilent(t *testing.T) {
	conversations := &memConversations{}
	agent := &fakeAgent{reply: ""}
	provider := &fakeProvider{}
	svc := newInboundService(conversations, agent, provider)

	err := svc.HandleInbound(context.Background(), "rest-1", inboundMessage("..."))
	require.NoError(t, err)

	assert.Equal(t, 1, agent.calls)
	assert.Empty(t, provider.sent)
	require.Len(t, conversations.messages, 1)
	assert.Equal(t, models.DirectionInbound, conversations.messages[0].Direction)
}

func TestHandleInboundSendFailureDropsOutboundRecord(t *testing.T) {
	conversations := &memConversations{}
	agent := &fakeAgent{reply: "hello there"}
	provider := &fakeProvider{sendErr: errors.New("vendor 503")}
	svc := newInboundService(conversations, agent, provider)

	err := svc.HandleInbound(context.Background(), "rest-1", inboundMessage("hi"))
	require.Error(t, err)

	// Only the inbound message was persisted.
	require.Len(t, conversations.messages, 1)
	assert.Equal(t, models.DirectionInbound, conversations.messages[0].Direction)
}

func TestHandleInboundHistoryWindowAndOrdering(t *testing.T) {
	conversations := &memConversations{active: &models.Conversation{
		ID:         "conv-1",
		AssignedTo: models.AssigneeBot,
		Status:     models.ConversationActive,
	}}
	// Seed 12 prior messages alternating customer/bot, oldest first.
	for i := 0; i < 12; i++ {
		sender := models.SenderCustomer
		if i%2 == 1 {
			sender = models.SenderBot
		}
		_ = conversations.AppendMessage(context.Background(), &models.Message{
			ConversationID: "conv-1",
			Sender:         sender,
			Body:           fmt.Sprintf("msg %d", i),
		})
	}

	agent := &fakeAgent{reply: "noted"}
	provider := &fakeProvider{}
	svc := newInboundService(conversations, agent, provider)
	svc.HistoryWindow = 10

	err := svc.HandleInbound(context.Background(), "rest-1", inboundMessage("latest"))
	require.NoError(t, err)

	// The just-stored inbound message is excluded, the rest trimmed to the
	// window, oldest first.
	require.Len(t, agent.history, 10)
	assert.Equal(t, "msg 2", agent.history[0].Content)
	assert.Equal(t, "user", agent.history[0].Role)
	assert.Equal(t, "msg 11", agent.history[9].Content)
	assert.Equal(t, "assistant", agent.history[9].Role)
}

func TestHandleInboundUnknownRestaurant(t *testing.T) {
	svc := newInboundService(&memConversations{}, &fakeAgent{}, &fakeProvider{})
	svc.Restaurants = &fakeRestaurants{}

	err := svc.HandleInbound(context.Background(), "missing", inboundMessage("hi"))
	assert.Error(t, err)
}
