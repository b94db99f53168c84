package reservation

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"yumres/models"
)

// memReservations is an in-memory ReservationRepository.
type memReservations struct {
	stored map[string]*models.Reservation
	nextID int
}

func newMemReservations() *memReservations {
	return &memReservations{stored: map[string]*models.Reservation{}}
}

func (m *memReservations) Create(ctx context.Context, reservation *models.Reservation) error {
	m.nextID++
	reservation.ID = fmt.Sprintf("res-%d", m.nextID)
	copied := *reservation
	m.stored[reservation.ID] = &copied
	return nil
}

func (m *memReservations) GetByID(ctx context.Context, restaurantID, id string) (*models.Reservation, error) {
	r, ok := m.stored[id]
	if !ok || r.RestaurantID != restaurantID {
		return nil, mongo.ErrNoDocuments
	}
	copied := *r
	return &copied, nil
}

func (m *memReservations) List(ctx context.Context, restaurantID string, filter models.ReservationFilter) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.stored {
		if r.RestaurantID == restaurantID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReservations) Update(ctx context.Context, restaurantID, id string, updates map[string]interface{}) error {
	r, ok := m.stored[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if status, ok := updates["status"].(string); ok {
		r.Status = status
	}
	if date, ok := updates["date"].(string); ok {
		r.Date = date
	}
	if name, ok := updates["guestName"].(string); ok {
		r.GuestName = name
	}
	return nil
}

func (m *memReservations) Delete(ctx context.Context, restaurantID, id string) error {
	delete(m.stored, id)
	return nil
}

type recordingScheduler struct {
	scheduled []*models.Reservation
	err       error
}

func (r *recordingScheduler) Schedule(ctx context.Context, reservation *models.Reservation) error {
	if r.err != nil {
		return r.err
	}
	r.scheduled = append(r.scheduled, reservation)
	return nil
}

func validReservation() *models.Reservation {
	return &models.Reservation{
		Date:      "2025-06-20",
		Time:      "19:00",
		PartySize: 4,
		GuestName: "Ana",
	}
}

func TestCreateFillsDefaults(t *testing.T) {
	svc := &Service{Repo: newMemReservations()}

	created, err := svc.Create(context.Background(), "rest-1", validReservation())
	require.NoError(t, err)

	assert.Equal(t, "rest-1", created.RestaurantID)
	assert.Equal(t, models.ReservationConfirmed, created.Status)
	assert.Equal(t, models.SourceDashboard, created.Source)
	assert.Regexp(t, regexp.MustCompile(`^YR[0-9A-F]{6}$`), created.ConfirmationCode)
}

func TestCreateKeepsCallerProvidedSource(t *testing.T) {
	svc := &Service{Repo: newMemReservations()}

	reservation := validReservation()
	reservation.Source = models.SourceWhatsApp
	created, err := svc.Create(context.Background(), "rest-1", reservation)
	require.NoError(t, err)
	assert.Equal(t, models.SourceWhatsApp, created.Source)
}

func TestCreateValidation(t *testing.T) {
	svc := &Service{Repo: newMemReservations()}
	ctx := context.Background()

	missingDate := validReservation()
	missingDate.Date = ""
	_, err := svc.Create(ctx, "rest-1", missingDate)
	assert.Error(t, err)

	zeroParty := validReservation()
	zeroParty.PartySize = 0
	_, err = svc.Create(ctx, "rest-1", zeroParty)
	assert.Error(t, err)

	noName := validReservation()
	noName.GuestName = ""
	_, err = svc.Create(ctx, "rest-1", noName)
	assert.Error(t, err)
}

func TestCreateSchedulesReminder(t *testing.T) {
	scheduler := &recordingScheduler{}
	svc := &Service{Repo: newMemReservations(), Reminders: scheduler}

	created, err := svc.Create(context.Background(), "rest-1", validReservation())
	require.NoError(t, err)
	require.Len(t, scheduler.scheduled, 1)
	assert.Equal(t, created.ID, scheduler.scheduled[0].ID)
}

func TestCreateSurvivesReminderFailure(t *testing.T) {
	scheduler := &recordingScheduler{err: fmt.Errorf("queue down")}
	svc := &Service{Repo: newMemReservations(), Reminders: scheduler}

	_, err := svc.Create(context.Background(), "rest-1", validReservation())
	assert.NoError(t, err)
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc := &Service{Repo: newMemReservations()}
	ctx := context.Background()

	created, err := svc.Create(ctx, "rest-1", validReservation())
	require.NoError(t, err)

	seated, err := svc.UpdateStatus(ctx, "rest-1", created.ID, models.ReservationSeated)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationSeated, seated.Status)

	completed, err := svc.UpdateStatus(ctx, "rest-1", created.ID, models.ReservationCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCompleted, completed.Status)

	// COMPLETED is terminal.
	_, err = svc.UpdateStatus(ctx, "rest-1", created.ID, models.ReservationCancelled)
	assert.Error(t, err)
}

func TestUpdateStatusRejectsSkippingStates(t *testing.T) {
	svc := &Service{Repo: newMemReservations()}
	ctx := context.Background()

	created, err := svc.Create(ctx, "rest-1", validReservation())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "rest-1", created.ID, models.ReservationCompleted)
	assert.Error(t, err)
}

func TestUpdateAllowlist(t *testing.T) {
	svc := &Service{Repo: newMemReservations()}
	ctx := context.Background()

	created, err := svc.Create(ctx, "rest-1", validReservation())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "rest-1", created.ID, map[string]interface{}{
		"guestName": "Beatriz",
		"status":    models.ReservationCancelled, // not patchable here
	})
	require.NoError(t, err)
	assert.Equal(t, "Beatriz", updated.GuestName)
	assert.Equal(t, models.ReservationConfirmed, updated.Status)

	_, err = svc.Update(ctx, "rest-1", created.ID, map[string]interface{}{"status": "CANCELLED"})
	assert.Error(t, err, "status alone leaves nothing to patch")
}

func TestNewConfirmationCodeShape(t *testing.T) {
	seen := map[string]bool{}
	pattern := regexp.MustCompile(`^YR[0-9A-F]{6}$`)
	for i := 0; i < 50; i++ {
		code := NewConfirmationCode()
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}
