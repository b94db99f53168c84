// FILE: database/repository/conversation/indexes.go
package conversationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the conversations and
// messages collections.
func (r *mongoConversationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conversationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Active-conversation lookups filter by restaurant and customer and
		// sort by recency.
		{
			Keys:    bson.D{{Key: "restaurantId", Value: 1}, {Key: "customerId", Value: 1}, {Key: "updatedAt", Value: -1}},
			Options: options.Index().SetName("restaurant_customer_updated_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, conversationIndexes); err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}

	messageIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("conversation_created_idx"),
		},
	}
	if _, err := r.messagesColl.Indexes().CreateMany(ctx, messageIndexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
