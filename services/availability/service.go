package availability

import (
	"context"
	"fmt"

	"yumres/models"
)

// RestaurantSource provides the profile and tables the engine needs. The
// restaurant service satisfies it with its cached read path.
type RestaurantSource interface {
	GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error)
	GetTables(ctx context.Context, restaurantID string, activeOnly bool) ([]models.Table, error)
}

// ReservationSource lists stored reservations for usage counting.
type ReservationSource interface {
	List(ctx context.Context, restaurantID string, filter models.ReservationFilter) ([]models.Reservation, error)
}

// Service wires the pure availability computation to the stores.
type Service struct {
	Restaurants   RestaurantSource
	Reservations  ReservationSource
	DefaultTables int
}

// CheckAvailability loads operating hours, active tables and the day's
// reservations, then delegates to ComputeDayAvailability.
func (s *Service) CheckAvailability(ctx context.Context, restaurantID, date, timeOfDay string, partySize int) (*models.AvailabilityResult, error) {
	if partySize < 1 {
		return nil, fmt.Errorf("party size must be at least 1, got %d", partySize)
	}

	restaurant, err := s.Restaurants.GetProfile(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("restaurant not found: %w", err)
	}

	tables, err := s.Restaurants.GetTables(ctx, restaurantID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}

	reservations, err := s.Reservations.List(ctx, restaurantID, models.ReservationFilter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	result := ComputeDayAvailability(date, timeOfDay, partySize, restaurant.OperatingHours, tables, reservations, s.DefaultTables)
	return &result, nil
}
