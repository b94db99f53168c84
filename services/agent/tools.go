package agent

import "github.com/openai/openai-go"

// Tool names offered to the model.
const (
	toolGetRestaurantInfo = "getRestaurantInfo"
	toolCheckAvailability = "checkAvailability"
	toolCreateReservation = "createReservation"
)

// toolDefinitions describes the three booking tools. The model picks zero,
// one or many per completion; tool choice stays automatic.
func toolDefinitions() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Function: openai.FunctionDefinitionParam{
				Name:        toolGetRestaurantInfo,
				Description: openai.String("Get details about the restaurant such as opening hours, location, contact details, services or policies."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]interface{}{
						"infoType": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"hours", "location", "contact", "services", "policies", "general"},
							"description": "Which kind of information to fetch.",
						},
					},
					"required": []string{"infoType"},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        toolCheckAvailability,
				Description: openai.String("Check whether the restaurant has space on a date, optionally at a specific time. Always call this before confirming a time with the guest."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]interface{}{
						"date": map[string]interface{}{
							"type":        "string",
							"description": "Reservation date in YYYY-MM-DD format.",
						},
						"time": map[string]interface{}{
							"type":        "string",
							"description": "Optional reservation time in 24h HH:MM format.",
						},
						"partySize": map[string]interface{}{
							"type":        "integer",
							"description": "Number of guests.",
						},
					},
					"required": []string{"date", "partySize"},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        toolCreateReservation,
				Description: openai.String("Create a confirmed reservation once availability is verified and the guest's name, date, time and party size are all known."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]interface{}{
						"date": map[string]interface{}{
							"type":        "string",
							"description": "Reservation date in YYYY-MM-DD format.",
						},
						"time": map[string]interface{}{
							"type":        "string",
							"description": "Reservation time in 24h HH:MM format.",
						},
						"partySize": map[string]interface{}{
							"type":        "integer",
							"description": "Number of guests.",
						},
						"guestName": map[string]interface{}{
							"type":        "string",
							"description": "Name the reservation is held under.",
						},
						"guestPhone": map[string]interface{}{
							"type":        "string",
							"description": "Guest phone number.",
						},
						"specialRequests": map[string]interface{}{
							"type":        "string",
							"description": "Optional special requests.",
						},
					},
					"required": []string{"date", "time", "partySize", "guestName", "guestPhone"},
				},
			},
		},
	}
}
