// File: database/repository/customer/crud.go
package customerRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yumres/models"
)

func upsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}

func (r *mongoCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *mongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *mongoCustomerRepo) UpsertByPhone(ctx context.Context, phone, name string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	setFields := bson.M{"updatedAt": now}
	if name != "" {
		setFields["name"] = name
	}
	update := bson.M{
		"$set": setFields,
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"phone":     phone,
			"createdAt": now,
		},
	}

	if _, err := r.coll.UpdateOne(ctx, bson.M{"phone": phone}, update, upsert()); err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
