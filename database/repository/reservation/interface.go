// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"fmt"

	"yumres/database"
	"yumres/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, restaurantID, id string) (*models.Reservation, error)
	List(ctx context.Context, restaurantID string, filter models.ReservationFilter) ([]models.Reservation, error)
	Update(ctx context.Context, restaurantID, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, restaurantID, id string) error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database("yumres")
	repo := &mongoReservationRepo{
		coll: db.Collection("reservations"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reservation indexes: %v\n", err)
	}
	return repo
}
