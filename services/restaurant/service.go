package restaurant

import (
	"context"
	"fmt"

	restaurantRepo "yumres/database/repository/restaurant"
	"yumres/models"
	"yumres/utils"
)

// Service exposes the restaurant profile with a cached read path. Profiles
// are read on every inbound WhatsApp message, so they are cached with a TTL
// and invalidated on update.
type Service struct {
	Repo restaurantRepo.RestaurantRepository
}

func cacheKey(restaurantID string) string {
	return utils.RestaurantCachePrefix + restaurantID
}

// GetProfile returns the restaurant, from cache when possible.
func (s *Service) GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := utils.GetOrSetJSON(ctx, cacheKey(restaurantID), utils.RestaurantCacheTTL, &restaurant, func() (interface{}, error) {
		return s.Repo.GetByID(ctx, restaurantID)
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Create registers a new restaurant.
func (s *Service) Create(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error) {
	if restaurant.Name == "" {
		return nil, fmt.Errorf("restaurant name is required")
	}
	if err := s.Repo.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return restaurant, nil
}

// Update applies patch-style updates and drops the cached profile.
func (s *Service) Update(ctx context.Context, restaurantID string, updates map[string]interface{}) (*models.Restaurant, error) {
	allowed := map[string]bool{
		"name": true, "description": true, "address": true, "city": true,
		"country": true, "phone": true, "email": true, "cuisine": true,
		"operatingHours": true, "aiPrompt": true, "additionalContext": true,
		"whatsappProvider": true, "whatsappNumber": true,
	}
	fields := map[string]interface{}{}
	for k, v := range updates {
		if allowed[k] {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	if err := s.Repo.Update(ctx, restaurantID, fields); err != nil {
		return nil, err
	}
	if err := utils.InvalidateCache(ctx, cacheKey(restaurantID)); err != nil {
		utils.GetLogger().Sugar().Warnf("failed to invalidate restaurant cache for %s: %v", restaurantID, err)
	}
	return s.Repo.GetByID(ctx, restaurantID)
}

// GetTables lists the restaurant's tables.
func (s *Service) GetTables(ctx context.Context, restaurantID string, activeOnly bool) ([]models.Table, error) {
	return s.Repo.GetTables(ctx, restaurantID, activeOnly)
}

// CreateTable adds a table to the seating inventory.
func (s *Service) CreateTable(ctx context.Context, restaurantID string, table *models.Table) (*models.Table, error) {
	if table.Capacity < 1 {
		return nil, fmt.Errorf("table capacity must be at least 1")
	}
	table.RestaurantID = restaurantID
	if err := s.Repo.CreateTable(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return table, nil
}

// UpdateTable applies patch-style updates to a table.
func (s *Service) UpdateTable(ctx context.Context, restaurantID, tableID string, updates map[string]interface{}) error {
	allowed := map[string]bool{"name": true, "capacity": true, "isActive": true}
	fields := map[string]interface{}{}
	for k, v := range updates {
		if allowed[k] {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("no updatable fields provided")
	}
	return s.Repo.UpdateTable(ctx, restaurantID, tableID, fields)
}

// DeleteTable removes a table from the inventory.
func (s *Service) DeleteTable(ctx context.Context, restaurantID, tableID string) error {
	return s.Repo.DeleteTable(ctx, restaurantID, tableID)
}
