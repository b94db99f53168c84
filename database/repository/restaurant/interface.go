// File: database/repository/restaurant/interface.go
package restaurantRepo

import (
	"context"

	"yumres/database"
	"yumres/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error

	CreateTable(ctx context.Context, table *models.Table) error
	GetTables(ctx context.Context, restaurantID string, activeOnly bool) ([]models.Table, error)
	UpdateTable(ctx context.Context, restaurantID, tableID string, updates map[string]interface{}) error
	DeleteTable(ctx context.Context, restaurantID, tableID string) error
}

type mongoRestaurantRepo struct {
	coll       *mongo.Collection
	tablesColl *mongo.Collection
}

// NewMongoRestaurantRepo constructs a new MongoDB RestaurantRepository.
func NewMongoRestaurantRepo() RestaurantRepository {
	db := database.MongoClient.Database("yumres")
	return &mongoRestaurantRepo{
		coll:       db.Collection("restaurants"),
		tablesColl: db.Collection("tables"),
	}
}
