package agent

import (
	"fmt"
	"strings"

	"yumres/models"
)

// weekdayOrder fixes the schedule rendering order regardless of map iteration.
var weekdayOrder = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// FormatSchedule renders operating hours day by day, Monday through Sunday.
// Closed days render as "Closed"; days without an entry are skipped.
func FormatSchedule(hours map[string]models.OperatingWindow) string {
	var lines []string
	for _, day := range weekdayOrder {
		window, ok := hours[day]
		if !ok {
			continue
		}
		label := strings.ToUpper(day[:1]) + day[1:]
		if window.Closed {
			lines = append(lines, fmt.Sprintf("%s: Closed", label))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s - %s", label, window.Open, window.Close))
	}
	return strings.Join(lines, "\n")
}

// BuildSystemPrompt assembles the restaurant-specific system prompt for the
// booking assistant: identity and contact details, the weekly schedule, the
// restaurant's own prompt text verbatim, and the fixed booking rules.
func BuildSystemPrompt(restaurant *models.Restaurant) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are the reservation assistant for %s.\n", restaurant.Name)
	if restaurant.Description != "" {
		fmt.Fprintf(&b, "About the restaurant: %s\n", restaurant.Description)
	}
	if len(restaurant.Cuisine) > 0 {
		fmt.Fprintf(&b, "Cuisine: %s\n", strings.Join(restaurant.Cuisine, ", "))
	}
	if location := joinNonEmpty(", ", restaurant.Address, restaurant.City, restaurant.Country); location != "" {
		fmt.Fprintf(&b, "Address: %s\n", location)
	}
	if restaurant.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", restaurant.Phone)
	}
	if restaurant.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", restaurant.Email)
	}

	if schedule := FormatSchedule(restaurant.OperatingHours); schedule != "" {
		b.WriteString("\nOpening hours:\n")
		b.WriteString(schedule)
		b.WriteString("\n")
	}

	if restaurant.AIPrompt != "" {
		b.WriteString("\n")
		b.WriteString(restaurant.AIPrompt)
		b.WriteString("\n")
	}
	if restaurant.AdditionalContext != "" {
		b.WriteString("\n")
		b.WriteString(restaurant.AdditionalContext)
		b.WriteString("\n")
	}

	b.WriteString(`
Rules:
- Collect the guest's name, the date, the time and the party size before booking.
- Always call checkAvailability before confirming a time with the guest.
- Once availability is confirmed and all details are known, call createReservation immediately. Do not ask the guest to confirm again.
- Use getRestaurantInfo for restaurant details you do not already have in context. Never invent opening hours or availability.
- Relay the availability messages you receive; do not make up your own numbers.
- If you get stuck, or the guest asks for a person, tell them a member of our staff will take over shortly.
- Keep replies short and friendly; this is a WhatsApp chat.`)

	return b.String()
}
