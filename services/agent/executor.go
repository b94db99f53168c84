package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"yumres/models"
)

// RestaurantInfoSource provides the cached restaurant profile.
type RestaurantInfoSource interface {
	GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error)
}

// AvailabilityChecker answers slot queries; satisfied by the availability
// service.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, restaurantID, date, timeOfDay string, partySize int) (*models.AvailabilityResult, error)
}

// ReservationCreator persists a new reservation; satisfied by the reservation
// service.
type ReservationCreator interface {
	Create(ctx context.Context, restaurantID string, reservation *models.Reservation) (*models.Reservation, error)
}

// ToolExecutor dispatches tool invocations requested by the model. Every call
// returns a result payload; failures of any kind become {"error": ...} so the
// model can react instead of the loop crashing.
type ToolExecutor struct {
	Restaurants  RestaurantInfoSource
	Availability AvailabilityChecker
	Reservations ReservationCreator
	Logger       *zap.Logger
}

// Execute runs one named tool against the given restaurant. customerID tags
// reservations the bot creates with the WhatsApp contact they came from.
func (e *ToolExecutor) Execute(ctx context.Context, restaurantID, customerID, name string, args map[string]interface{}) (result map[string]interface{}) {
	defer func() {
		if r := recover(); r != nil {
			e.Logger.Error("tool execution panicked",
				zap.String("tool", name), zap.Any("panic", r))
			result = map[string]interface{}{"error": fmt.Sprintf("tool %s failed unexpectedly", name)}
		}
	}()

	switch name {
	case toolGetRestaurantInfo:
		return e.getRestaurantInfo(ctx, restaurantID, args)
	case toolCheckAvailability:
		return e.checkAvailability(ctx, restaurantID, args)
	case toolCreateReservation:
		return e.createReservation(ctx, restaurantID, customerID, args)
	default:
		return map[string]interface{}{"error": fmt.Sprintf("Unknown tool: %s", name)}
	}
}

func (e *ToolExecutor) getRestaurantInfo(ctx context.Context, restaurantID string, args map[string]interface{}) map[string]interface{} {
	restaurant, err := e.Restaurants.GetProfile(ctx, restaurantID)
	if err != nil {
		return map[string]interface{}{"error": fmt.Sprintf("failed to load restaurant: %v", err)}
	}

	infoType, _ := args["infoType"].(string)
	switch infoType {
	case "hours":
		schedule := FormatSchedule(restaurant.OperatingHours)
		return map[string]interface{}{
			"hours":   restaurant.OperatingHours,
			"message": fmt.Sprintf("Our opening hours:\n%s", schedule),
		}
	case "location":
		location := joinNonEmpty(", ", restaurant.Address, restaurant.City, restaurant.Country)
		return map[string]interface{}{
			"address": location,
			"message": fmt.Sprintf("You can find us at %s.", location),
		}
	case "contact":
		return map[string]interface{}{
			"phone":   restaurant.Phone,
			"email":   restaurant.Email,
			"message": fmt.Sprintf("You can reach us on %s or %s.", restaurant.Phone, restaurant.Email),
		}
	case "services":
		cuisine := strings.Join(restaurant.Cuisine, ", ")
		return map[string]interface{}{
			"cuisine": restaurant.Cuisine,
			"message": fmt.Sprintf("We serve %s cuisine. %s", cuisine, restaurant.Description),
		}
	case "policies":
		return map[string]interface{}{
			"policies": restaurant.AdditionalContext,
			"message":  restaurant.AdditionalContext,
		}
	default:
		// Unknown infoType falls through to a general summary.
		return map[string]interface{}{
			"name":        restaurant.Name,
			"description": restaurant.Description,
			"cuisine":     restaurant.Cuisine,
			"message":     fmt.Sprintf("%s — %s", restaurant.Name, restaurant.Description),
		}
	}
}

func (e *ToolExecutor) checkAvailability(ctx context.Context, restaurantID string, args map[string]interface{}) map[string]interface{} {
	date, _ := args["date"].(string)
	timeOfDay, _ := args["time"].(string)
	partySize := intArg(args, "partySize")

	result, err := e.Availability.CheckAvailability(ctx, restaurantID, date, timeOfDay, partySize)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	payload := map[string]interface{}{
		"available": result.Available,
		"message":   result.Message,
	}
	if len(result.Slots) > 0 {
		payload["slots"] = result.Slots
	}
	return payload
}

func (e *ToolExecutor) createReservation(ctx context.Context, restaurantID, customerID string, args map[string]interface{}) map[string]interface{} {
	reservation := &models.Reservation{
		CustomerID:      customerID,
		Date:            stringArg(args, "date"),
		Time:            stringArg(args, "time"),
		PartySize:       intArg(args, "partySize"),
		GuestName:       stringArg(args, "guestName"),
		GuestPhone:      stringArg(args, "guestPhone"),
		SpecialRequests: stringArg(args, "specialRequests"),
		Status:          models.ReservationConfirmed,
		Source:          models.SourceWhatsApp,
	}

	created, err := e.Reservations.Create(ctx, restaurantID, reservation)
	if err != nil {
		return map[string]interface{}{"error": fmt.Sprintf("failed to create reservation: %v", err)}
	}

	e.Logger.Info("reservation created by booking agent",
		zap.String("restaurantID", restaurantID),
		zap.String("reservationID", created.ID),
		zap.String("confirmationCode", created.ConfirmationCode))

	return map[string]interface{}{
		"reservationId":    created.ID,
		"confirmationCode": created.ConfirmationCode,
		"date":             created.Date,
		"time":             created.Time,
		"partySize":        created.PartySize,
		"message": fmt.Sprintf("Reservation confirmed for %s on %s at %s, party of %d. Confirmation code: %s.",
			created.GuestName, created.Date, created.Time, created.PartySize, created.ConfirmationCode),
	}
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// intArg tolerates the JSON number decoding of tool arguments.
func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
