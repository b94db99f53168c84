// File: database/repository/restaurant/crud.go
package restaurantRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"yumres/models"
)

func (r *mongoRestaurantRepo) Create(ctx context.Context, restaurant *models.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}
	now := time.Now()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, restaurant)
	return err
}

func (r *mongoRestaurantRepo) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var restaurant models.Restaurant
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *mongoRestaurantRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	updateFields := bson.M{}
	for k, v := range updates {
		updateFields[k] = v
	}
	updateFields["updatedAt"] = time.Now()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateFields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoRestaurantRepo) CreateTable(ctx context.Context, table *models.Table) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if table.ID == "" {
		table.ID = uuid.New().String()
	}
	now := time.Now()
	table.CreatedAt = now
	table.UpdatedAt = now

	_, err := r.tablesColl.InsertOne(ctx, table)
	return err
}

func (r *mongoRestaurantRepo) GetTables(ctx context.Context, restaurantID string, activeOnly bool) ([]models.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"restaurantId": restaurantID}
	if activeOnly {
		filter["isActive"] = true
	}
	cursor, err := r.tablesColl.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tables []models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *mongoRestaurantRepo) UpdateTable(ctx context.Context, restaurantID, tableID string, updates map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	updateFields := bson.M{}
	for k, v := range updates {
		updateFields[k] = v
	}
	updateFields["updatedAt"] = time.Now()

	filter := bson.M{"id": tableID, "restaurantId": restaurantID}
	res, err := r.tablesColl.UpdateOne(ctx, filter, bson.M{"$set": updateFields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoRestaurantRepo) DeleteTable(ctx context.Context, restaurantID, tableID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": tableID, "restaurantId": restaurantID}
	res, err := r.tablesColl.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
