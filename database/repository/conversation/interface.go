// File: database/repository/conversation/interface.go
package conversationRepo

import (
	"context"
	"fmt"

	"yumres/database"
	"yumres/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *models.Conversation) error
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	// FindActive returns the most recently updated non-resolved conversation
	// for the given (restaurant, customer) pair, or mongo.ErrNoDocuments.
	FindActive(ctx context.Context, restaurantID, customerID string) (*models.Conversation, error)
	List(ctx context.Context, restaurantID, status string) ([]models.Conversation, error)
	SetAssignment(ctx context.Context, id, assignedTo string) error
	SetStatus(ctx context.Context, id, status string) error
	Touch(ctx context.Context, id string) error

	AppendMessage(ctx context.Context, message *models.Message) error
	// RecentMessages returns up to limit messages ordered newest first.
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	// Messages returns the full thread ordered oldest first.
	Messages(ctx context.Context, conversationID string) ([]models.Message, error)
}

type mongoConversationRepo struct {
	coll         *mongo.Collection
	messagesColl *mongo.Collection
}

// NewMongoConversationRepo constructs a new MongoDB ConversationRepository.
func NewMongoConversationRepo() ConversationRepository {
	db := database.MongoClient.Database("yumres")
	repo := &mongoConversationRepo{
		coll:         db.Collection("conversations"),
		messagesColl: db.Collection("messages"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create conversation indexes: %v\n", err)
	}
	return repo
}
