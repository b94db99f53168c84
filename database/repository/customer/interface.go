// File: database/repository/customer/interface.go
package customerRepo

import (
	"context"

	"yumres/database"
	"yumres/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	// UpsertByPhone finds the customer with the given phone number, creating
	// one if none exists, and refreshes the profile name when provided.
	UpsertByPhone(ctx context.Context, phone, name string) (*models.Customer, error)
}

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo constructs a new MongoDB CustomerRepository.
func NewMongoCustomerRepo() CustomerRepository {
	db := database.MongoClient.Database("yumres")
	return &mongoCustomerRepo{
		coll: db.Collection("customers"),
	}
}
