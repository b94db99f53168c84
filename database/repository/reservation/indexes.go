// FILE: database/repository/reservation/indexes.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the reservations collection.
func (r *mongoReservationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Availability queries always filter by restaurant and date.
		{
			Keys:    bson.D{{Key: "restaurantId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("restaurant_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "restaurantId", Value: 1}, {Key: "customerId", Value: 1}},
			Options: options.Index().SetName("restaurant_customer_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
