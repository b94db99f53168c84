package reservation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reservationRepo "yumres/database/repository/reservation"
	"yumres/models"
	"yumres/utils"
)

// confirmationPrefix is the human-shareable code prefix guests quote at the
// door.
const confirmationPrefix = "YR"

// ReminderScheduler enqueues a reservation reminder; nil disables reminders.
type ReminderScheduler interface {
	Schedule(ctx context.Context, reservation *models.Reservation) error
}

// Service owns the reservation lifecycle for both the dashboard and the bot.
type Service struct {
	Repo      reservationRepo.ReservationRepository
	Reminders ReminderScheduler
}

// Create persists a new reservation, filling defaults: CONFIRMED status, a
// confirmation code and a dashboard source tag unless the caller set one.
// Capacity is NOT re-validated here; callers are expected to have checked
// availability first (check-then-act, see DESIGN.md).
func (s *Service) Create(ctx context.Context, restaurantID string, reservation *models.Reservation) (*models.Reservation, error) {
	if reservation.Date == "" || reservation.Time == "" {
		return nil, fmt.Errorf("reservation date and time are required")
	}
	if reservation.PartySize < 1 {
		return nil, fmt.Errorf("party size must be at least 1")
	}
	if reservation.GuestName == "" {
		return nil, fmt.Errorf("guest name is required")
	}

	reservation.RestaurantID = restaurantID
	if reservation.Status == "" {
		reservation.Status = models.ReservationConfirmed
	}
	if reservation.Source == "" {
		reservation.Source = models.SourceDashboard
	}
	if reservation.ConfirmationCode == "" {
		reservation.ConfirmationCode = NewConfirmationCode()
	}

	if err := s.Repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if s.Reminders != nil {
		if err := s.Reminders.Schedule(ctx, reservation); err != nil {
			// A reminder is best-effort; the booking itself stands.
			utils.GetLogger().Warn("failed to schedule reservation reminder",
				zap.String("reservationID", reservation.ID), zap.Error(err))
		}
	}

	return reservation, nil
}

func (s *Service) GetByID(ctx context.Context, restaurantID, id string) (*models.Reservation, error) {
	return s.Repo.GetByID(ctx, restaurantID, id)
}

func (s *Service) List(ctx context.Context, restaurantID string, filter models.ReservationFilter) ([]models.Reservation, error) {
	return s.Repo.List(ctx, restaurantID, filter)
}

// Update applies patch-style updates to the allowed fields.
func (s *Service) Update(ctx context.Context, restaurantID, id string, updates map[string]interface{}) (*models.Reservation, error) {
	allowed := map[string]bool{
		"date": true, "time": true, "partySize": true,
		"guestName": true, "guestPhone": true, "guestEmail": true,
		"specialRequests": true,
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
	if err := s.Repo.Update(ctx, restaurantID, id, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, restaurantID, id)
}

// validTransitions gates the reservation status lifecycle.
var validTransitions = map[string][]string{
	models.ReservationPending:   {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed: {models.ReservationSeated, models.ReservationCancelled, models.ReservationNoShow},
	models.ReservationSeated:    {models.ReservationCompleted},
}

// UpdateStatus moves a reservation through its lifecycle, rejecting
// transitions the lifecycle does not allow.
func (s *Service) UpdateStatus(ctx context.Context, restaurantID, id, status string) (*models.Reservation, error) {
	existing, err := s.Repo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, fmt.Errorf("reservation not found: %w", err)
	}

	permitted := false
	for _, next := range validTransitions[existing.Status] {
		if next == status {
			permitted = true
			break
		}
	}
	if !permitted {
		return nil, fmt.Errorf("cannot move reservation from %s to %s", existing.Status, status)
	}

	if err := s.Repo.Update(ctx, restaurantID, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	existing.Status = status
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, restaurantID, id string) error {
	return s.Repo.Delete(ctx, restaurantID, id)
}

// NewConfirmationCode generates a short "YR"-prefixed code.
func NewConfirmationCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return confirmationPrefix + suffix
}
