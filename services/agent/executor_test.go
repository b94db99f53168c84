package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yumres/models"
)

type panickingProfileSource struct{}

func (panickingProfileSource) GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	panic("boom")
}

func infoRestaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:          "rest-1",
		Name:        "Trattoria Nonna",
		Description: "Family-run Italian kitchen.",
		Cuisine:     []string{"Italian"},
		Address:     "12 Via Roma",
		City:        "Lisbon",
		Country:     "Portugal",
		Phone:       "+351210000000",
		Email:       "ciao@nonna.example",
		OperatingHours: map[string]models.OperatingWindow{
			"monday": {Open: "12:00", Close: "22:00"},
			"sunday": {Closed: true},
		},
		AdditionalContext: "No dogs except guide dogs.",
	}
}

func newExecutor(profile RestaurantInfoSource, availability AvailabilityChecker, creator ReservationCreator) *ToolExecutor {
	return &ToolExecutor{
		Restaurants:  profile,
		Availability: availability,
		Reservations: creator,
		Logger:       zap.NewNop(),
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	exec := newExecutor(&stubProfileSource{restaurant: infoRestaurant()}, nil, nil)

	result := exec.Execute(context.Background(), "rest-1", "cust-1", "deleteAllReservations", nil)
	assert.Equal(t, map[string]interface{}{"error": "Unknown tool: deleteAllReservations"}, result)
}

func TestExecuteRecoversFromPanic(t *testing.T) {
	exec := newExecutor(panickingProfileSource{}, nil, nil)

	result := exec.Execute(context.Background(), "rest-1", "cust-1", toolGetRestaurantInfo, map[string]interface{}{"infoType": "hours"})
	assert.Equal(t, "tool getRestaurantInfo failed unexpectedly", result["error"])
}

func TestGetRestaurantInfoVariants(t *testing.T) {
	exec := newExecutor(&stubProfileSource{restaurant: infoRestaurant()}, nil, nil)
	ctx := context.Background()

	hours := exec.Execute(ctx, "rest-1", "cust-1", toolGetRestaurantInfo, map[string]interface{}{"infoType": "hours"})
	assert.Contains(t, hours["message"], "Monday: 12:00 - 22:00")
	assert.Contains(t, hours["message"], "Sunday: Closed")

	location := exec.Execute(ctx, "rest-1", "cust-1", toolGetRestaurantInfo, map[string]interface{}{"infoType": "location"})
	assert.Equal(t, "12 Via Roma, Lisbon, Portugal", location["address"])

	policies := exec.Execute(ctx, "rest-1", "cust-1", toolGetRestaurantInfo, map[string]interface{}{"infoType": "policies"})
	assert.Equal(t, "No dogs except guide dogs.", policies["message"])

	// Unknown infoType falls back to the general summary.
	general := exec.Execute(ctx, "rest-1", "cust-1", toolGetRestaurantInfo, map[string]interface{}{"infoType": "parking"})
	assert.Equal(t, "Trattoria Nonna", general["name"])
	assert.Contains(t, general["message"], "Trattoria Nonna")

	// Missing infoType behaves the same.
	noType := exec.Execute(ctx, "rest-1", "cust-1", toolGetRestaurantInfo, nil)
	assert.Equal(t, "Trattoria Nonna", noType["name"])
}

func TestCheckAvailabilityPayload(t *testing.T) {
	availability := &recordingAvailability{result: &models.AvailabilityResult{
		Open:      true,
		Available: false,
		Message:   "19:00 is taken; 19:30 and 20:00 are free.",
		Slots:     []models.SlotAvailability{{Time: "19:30", Available: true}, {Time: "20:00", Available: true}},
	}}
	exec := newExecutor(nil, availability, nil)

	result := exec.Execute(context.Background(), "rest-1", "cust-1", toolCheckAvailability, map[string]interface{}{
		"date":      "2025-06-20",
		"time":      "19:00",
		"partySize": float64(4), // JSON numbers decode as float64
	})
	assert.Equal(t, false, result["available"])
	assert.Equal(t, "19:00 is taken; 19:30 and 20:00 are free.", result["message"])
	assert.Len(t, result["slots"], 2)
	assert.Equal(t, 1, availability.calls)
}

func TestCheckAvailabilityErrorBecomesPayload(t *testing.T) {
	availability := &recordingAvailability{err: errors.New("party size must be at least 1, got 0")}
	exec := newExecutor(nil, availability, nil)

	result := exec.Execute(context.Background(), "rest-1", "cust-1", toolCheckAvailability, map[string]interface{}{
		"date": "2025-06-20",
	})
	assert.Equal(t, "party size must be at least 1, got 0", result["error"])
}

func TestCreateReservationTagsSourceAndCustomer(t *testing.T) {
	creator := &stubCreator{created: &models.Reservation{
		ID:               "res-9",
		GuestName:        "Atif",
		Date:             "2025-06-20",
		Time:             "19:00",
		PartySize:        4,
		ConfirmationCode: "YR3F9A2B",
	}}
	exec := newExecutor(nil, nil, creator)

	result := exec.Execute(context.Background(), "rest-1", "cust-7", toolCreateReservation, map[string]interface{}{
		"date":       "2025-06-20",
		"time":       "19:00",
		"partySize":  float64(4),
		"guestName":  "Atif",
		"guestPhone": "+923078526944",
	})

	require.NotNil(t, creator.got)
	assert.Equal(t, "cust-7", creator.got.CustomerID)
	assert.Equal(t, models.SourceWhatsApp, creator.got.Source)
	assert.Equal(t, models.ReservationConfirmed, creator.got.Status)
	assert.Equal(t, 4, creator.got.PartySize)

	assert.Equal(t, "YR3F9A2B", result["confirmationCode"])
	assert.Contains(t, result["message"], "YR3F9A2B")
}

func TestCreateReservationFailure(t *testing.T) {
	creator := &stubCreator{err: errors.New("reservation date and time are required")}
	exec := newExecutor(nil, nil, creator)

	result := exec.Execute(context.Background(), "rest-1", "cust-7", toolCreateReservation, map[string]interface{}{
		"guestName": "Atif",
	})
	assert.Contains(t, result["error"], "failed to create reservation")
}
