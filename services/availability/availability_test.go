package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yumres/models"
)

func standardHours() map[string]models.OperatingWindow {
	return map[string]models.OperatingWindow{
		"monday":    {Open: "09:00", Close: "22:00"},
		"tuesday":   {Open: "09:00", Close: "22:00"},
		"wednesday": {Open: "09:00", Close: "22:00"},
		"thursday":  {Open: "09:00", Close: "22:00"},
		"friday":    {Open: "09:00", Close: "23:00"},
		"saturday":  {Open: "10:00", Close: "23:00"},
		"sunday":    {Closed: true},
	}
}

func twoTables(capacity int) []models.Table {
	return []models.Table{
		{ID: "t1", Capacity: capacity, IsActive: true},
		{ID: "t2", Capacity: capacity, IsActive: true},
	}
}

func reservationsAt(slot string, count int) []models.Reservation {
	var out []models.Reservation
	for i := 0; i < count; i++ {
		out = append(out, models.Reservation{Time: slot, Status: models.ReservationConfirmed})
	}
	return out
}

func TestSlotGridBoundaries(t *testing.T) {
	// 2025-01-20 is a Monday.
	result := ComputeDayAvailability("2025-01-20", "", 4, standardHours(), nil, nil, 5)

	require.True(t, result.Open)
	require.NotEmpty(t, result.Slots)
	assert.Equal(t, "09:00", result.Slots[0].Time)
	assert.Equal(t, "21:30", result.Slots[len(result.Slots)-1].Time)
	assert.Len(t, result.Slots, 26)
}

func TestOpenEndedNoReservations(t *testing.T) {
	result := ComputeDayAvailability("2025-01-20", "", 4, standardHours(), nil, nil, 5)

	require.True(t, result.Available)
	assert.Equal(t, models.SlotAvailability{Time: "09:00", Available: true}, result.Slots[0])
	for _, slot := range result.Slots {
		assert.True(t, slot.Available, "slot %s should be open", slot.Time)
	}
}

func TestClosedDayShortCircuits(t *testing.T) {
	// 2025-01-19 is a Sunday.
	result := ComputeDayAvailability("2025-01-19", "19:00", 2, standardHours(), twoTables(4), nil, 5)

	assert.False(t, result.Open)
	assert.False(t, result.Available)
	assert.Contains(t, result.Message, "Sunday")
	assert.Empty(t, result.Slots)
}

func TestMissingHoursReported(t *testing.T) {
	hours := map[string]models.OperatingWindow{
		"monday": {}, // present but no open/close times
	}
	result := ComputeDayAvailability("2025-01-20", "", 2, hours, nil, nil, 5)

	assert.False(t, result.Available)
	assert.Contains(t, result.Message, "not configured")
}

func TestMissingDayEntryTreatedAsClosed(t *testing.T) {
	hours := map[string]models.OperatingWindow{
		"tuesday": {Open: "09:00", Close: "22:00"},
	}
	result := ComputeDayAvailability("2025-01-20", "", 2, hours, nil, nil, 5)

	assert.False(t, result.Available)
	assert.Contains(t, result.Message, "Monday")
}

func TestMidnightCrossingHoursRejected(t *testing.T) {
	hours := map[string]models.OperatingWindow{
		"monday": {Open: "20:00", Close: "02:00"},
	}
	result := ComputeDayAvailability("2025-01-20", "", 2, hours, nil, nil, 5)

	assert.False(t, result.Available)
	assert.Contains(t, result.Message, "not configured")
}

func TestCapacityThreshold(t *testing.T) {
	tables := twoTables(4)

	full := ComputeDayAvailability("2025-01-20", "19:00", 2, standardHours(), tables, reservationsAt("19:00", 2), 5)
	assert.False(t, full.Available)
	assert.Contains(t, full.Message, "19:00 is not available")

	oneLeft := ComputeDayAvailability("2025-01-20", "19:00", 2, standardHours(), tables, reservationsAt("19:00", 1), 5)
	assert.True(t, oneLeft.Available)
}

func TestSpecificTimeListsAlternativesInOrder(t *testing.T) {
	tables := []models.Table{{ID: "t1", Capacity: 4, IsActive: true}}

	result := ComputeDayAvailability("2025-01-20", "19:00", 2, standardHours(), tables, reservationsAt("19:00", 1), 5)
	require.False(t, result.Available)
	assert.Contains(t, result.Message, "09:00, 09:30, 10:00, 10:30, 11:00")
}

func TestTimeOutsideGridUnavailable(t *testing.T) {
	result := ComputeDayAvailability("2025-01-20", "08:00", 2, standardHours(), twoTables(4), nil, 5)

	assert.False(t, result.Available)
	assert.Contains(t, result.Message, "08:00 is not available")
}

func TestVirtualTableFallback(t *testing.T) {
	// No tables configured: five virtual tables absorb the first five
	// bookings for a slot.
	result := ComputeDayAvailability("2025-01-20", "19:00", 4, standardHours(), nil, reservationsAt("19:00", 4), 5)
	assert.True(t, result.Available)

	result = ComputeDayAvailability("2025-01-20", "19:00", 4, standardHours(), nil, reservationsAt("19:00", 5), 5)
	assert.False(t, result.Available)
}

func TestOversizedPartyFallsBackToVirtualTables(t *testing.T) {
	// Party larger than any table still gets the virtual-table capacity.
	tables := twoTables(4)
	result := ComputeDayAvailability("2025-01-20", "19:00", 10, standardHours(), tables, nil, 5)

	assert.True(t, result.Available)
}

func TestInactiveTablesIgnored(t *testing.T) {
	tables := []models.Table{
		{ID: "t1", Capacity: 6, IsActive: false},
		{ID: "t2", Capacity: 6, IsActive: true},
	}
	result := ComputeDayAvailability("2025-01-20", "19:00", 4, standardHours(), tables, reservationsAt("19:00", 1), 5)

	// Only the active table counts, and it is taken.
	assert.False(t, result.Available)
}

func TestFullyBookedDayCollapsesGrid(t *testing.T) {
	tables := []models.Table{{ID: "t1", Capacity: 4, IsActive: true}}
	var reservations []models.Reservation
	for _, slot := range slotGrid("09:00", "22:00") {
		reservations = append(reservations, models.Reservation{Time: slot})
	}

	result := ComputeDayAvailability("2025-01-20", "", 2, standardHours(), tables, reservations, 5)
	assert.False(t, result.Available)
	assert.Contains(t, result.Message, "fully booked")
	assert.Empty(t, result.Slots)
}

func TestDeterminism(t *testing.T) {
	tables := twoTables(4)
	reservations := reservationsAt("19:00", 1)

	first := ComputeDayAvailability("2025-01-20", "", 2, standardHours(), tables, reservations, 5)
	second := ComputeDayAvailability("2025-01-20", "", 2, standardHours(), tables, reservations, 5)
	assert.Equal(t, first, second)
}
