package availability

import (
	"fmt"
	"strings"
	"time"

	"yumres/models"
)

// slotInterval is the fixed width of a candidate reservation slot.
const slotInterval = 30 * time.Minute

// maxAlternatives caps how many open alternatives a specific-time answer lists.
const maxAlternatives = 5

// ComputeDayAvailability answers whether the restaurant is open on the given
// date and which slots are bookable for the given party size. timeOfDay is
// optional; when set ("HH:MM") the result answers for that slot only and lists
// open alternatives when it is unavailable. The computation is pure: identical
// inputs always yield identical results.
func ComputeDayAvailability(
	date string,
	timeOfDay string,
	partySize int,
	hours map[string]models.OperatingWindow,
	tables []models.Table,
	reservations []models.Reservation,
	defaultTables int,
) models.AvailabilityResult {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return models.AvailabilityResult{
			Message: fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD.", date),
		}
	}

	weekday := day.Weekday()
	window, ok := hours[strings.ToLower(weekday.String())]
	if !ok || window.Closed {
		return models.AvailabilityResult{
			Message: fmt.Sprintf("We're closed on %ss.", weekday.String()),
		}
	}

	grid := slotGrid(window.Open, window.Close)
	if len(grid) == 0 {
		return models.AvailabilityResult{
			Message: "Our opening hours are not configured for that day. Please contact the restaurant directly.",
		}
	}

	capacity := totalCapacity(tables, partySize, defaultTables)
	usage := slotUsage(reservations)

	if timeOfDay != "" {
		return specificTimeResult(timeOfDay, grid, usage, capacity)
	}
	return openEndedResult(grid, usage, capacity)
}

// slotGrid generates candidate slot times at 30-minute steps from open
// (inclusive) to close (exclusive). Windows that do not move forward in time,
// including midnight-crossing ones, produce no grid.
func slotGrid(open, close string) []string {
	start, err := time.Parse("15:04", open)
	if err != nil {
		return nil
	}
	end, err := time.Parse("15:04", close)
	if err != nil {
		return nil
	}
	if !start.Before(end) {
		return nil
	}

	var grid []string
	for t := start; t.Before(end); t = t.Add(slotInterval) {
		grid = append(grid, t.Format("15:04"))
	}
	return grid
}

// totalCapacity counts active tables that can seat the party. A restaurant
// with no matching tables falls back to a configured number of virtual tables
// rather than reporting zero capacity.
func totalCapacity(tables []models.Table, partySize, defaultTables int) int {
	count := 0
	for _, table := range tables {
		if table.IsActive && table.Capacity >= partySize {
			count++
		}
	}
	if count == 0 {
		return defaultTables
	}
	return count
}

// slotUsage counts reservations per slot time. The reservation's Time string
// must match the slot exactly.
func slotUsage(reservations []models.Reservation) map[string]int {
	usage := make(map[string]int, len(reservations))
	for _, res := range reservations {
		usage[res.Time]++
	}
	return usage
}

func specificTimeResult(timeOfDay string, grid []string, usage map[string]int, capacity int) models.AvailabilityResult {
	inGrid := false
	for _, slot := range grid {
		if slot == timeOfDay {
			inGrid = true
			break
		}
	}

	if inGrid && usage[timeOfDay] < capacity {
		return models.AvailabilityResult{
			Open:      true,
			Available: true,
			Message:   fmt.Sprintf("%s is available.", timeOfDay),
		}
	}

	var alternatives []string
	for _, slot := range grid {
		if slot != timeOfDay && usage[slot] < capacity {
			alternatives = append(alternatives, slot)
			if len(alternatives) == maxAlternatives {
				break
			}
		}
	}

	message := fmt.Sprintf("%s is not available.", timeOfDay)
	if len(alternatives) > 0 {
		message += " Open alternatives: " + strings.Join(alternatives, ", ") + "."
	} else {
		message += " No other slots are open that day."
	}
	return models.AvailabilityResult{
		Open:    true,
		Message: message,
	}
}

func openEndedResult(grid []string, usage map[string]int, capacity int) models.AvailabilityResult {
	slots := make([]models.SlotAvailability, 0, len(grid))
	anyOpen := false
	for _, slot := range grid {
		available := usage[slot] < capacity
		if available {
			anyOpen = true
		}
		slots = append(slots, models.SlotAvailability{Time: slot, Available: available})
	}

	if !anyOpen {
		return models.AvailabilityResult{
			Open:    true,
			Message: "We're fully booked that day.",
		}
	}
	return models.AvailabilityResult{
		Open:      true,
		Available: true,
		Message:   fmt.Sprintf("We have %d slots that day.", len(slots)),
		Slots:     slots,
	}
}
