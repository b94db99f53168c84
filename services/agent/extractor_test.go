package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yumres/models"
)

func userTurn(content string) models.ChatTurn {
	return models.ChatTurn{Role: "user", Content: content}
}

func TestExtractFieldIndependence(t *testing.T) {
	turns := []models.ChatTurn{
		userTurn("lets do it 10 PM, my name is Atif and phone number is +923078526944"),
	}

	out := Extract(turns)

	assert.Equal(t, "10 PM", out[FieldTime])
	assert.Equal(t, "Atif", out[FieldGuestName])
	assert.Equal(t, "+923078526944", out[FieldGuestPhone])
	assert.NotContains(t, out, FieldDate)
	assert.NotContains(t, out, FieldPartySize)
}

func TestExtractAssistantTurnsExcluded(t *testing.T) {
	turns := []models.ChatTurn{
		{Role: "assistant", Content: "today"},
	}

	out := Extract(turns)
	assert.NotContains(t, out, FieldDate)
	assert.Empty(t, out)
}

func TestExtractIdempotence(t *testing.T) {
	turns := []models.ChatTurn{
		userTurn("table for 4 tomorrow at 7 pm, I'm Maria"),
	}

	first := Extract(turns)
	second := Extract(turns)
	assert.Equal(t, first, second)
}

func TestExtractPartySize(t *testing.T) {
	cases := map[string]string{
		"we are 6 people":          "6",
		"4 guests please":          "4",
		"there will be 3 of us":    "3",
		"party of 8":               "8",
		"table for 2 please":       "2",
		"a table for 12 guests":    "12",
		"2 pax at your restaurant": "2",
	}
	for text, want := range cases {
		out := Extract([]models.ChatTurn{userTurn(text)})
		assert.Equal(t, want, out[FieldPartySize], "input: %s", text)
	}
}

func TestExtractPartySizePatternPriority(t *testing.T) {
	// "<N> people" outranks "table for <N>" when both appear.
	out := Extract([]models.ChatTurn{userTurn("table for 2, we are 6 people")})
	assert.Equal(t, "6", out[FieldPartySize])
}

func TestExtractTimeVariants(t *testing.T) {
	cases := map[string]string{
		"see you at 7 pm":        "7 pm",
		"around 8:30 PM works":   "8:30 PM",
		"dinner @ 9pm":           "9pm",
		"tomorrow, 6:15 pm then": "6:15 pm",
		"make it 7:45 pm":        "7:45 pm",
		"maybe 11 am":            "11 am",
	}
	for text, want := range cases {
		out := Extract([]models.ChatTurn{userTurn(text)})
		assert.Equal(t, want, out[FieldTime], "input: %s", text)
	}
}

func TestExtractDateVariants(t *testing.T) {
	cases := map[string]string{
		"can we come today":        "today",
		"tomorrow evening please":  "tomorrow",
		"next Friday would suit":   "Friday",
		"the 20th January if open": "20th January",
		"on 2025-01-20 exactly":    "2025-01-20",
	}
	for text, want := range cases {
		out := Extract([]models.ChatTurn{userTurn(text)})
		assert.Equal(t, want, out[FieldDate], "input: %s", text)
	}
}

func TestExtractRelativeDatesKeptLiteral(t *testing.T) {
	// Interpretation of "today" into a calendar date is deliberately not the
	// extractor's job.
	out := Extract([]models.ChatTurn{userTurn("book us in for today")})
	assert.Equal(t, "today", out[FieldDate])
}

func TestExtractGuestName(t *testing.T) {
	cases := map[string]string{
		"my name is Atif":  "Atif",
		"I'm Maria thanks": "Maria",
		"i am Pedro":       "Pedro",
		"call me Sam":      "Sam",
		"name is Lucia":    "Lucia",
	}
	for text, want := range cases {
		out := Extract([]models.ChatTurn{userTurn(text)})
		assert.Equal(t, want, out[FieldGuestName], "input: %s", text)
	}
}

func TestExtractPhoneWhitespaceStripped(t *testing.T) {
	out := Extract([]models.ChatTurn{userTurn("my contact is 0307 852 6944")})
	assert.Equal(t, "03078526944", out[FieldGuestPhone])
}

func TestExtractAcrossMultipleUserTurns(t *testing.T) {
	turns := []models.ChatTurn{
		userTurn("hi, do you have space tomorrow?"),
		{Role: "assistant", Content: "Sure, for how many people?"},
		userTurn("4 people at 8 pm"),
	}

	out := Extract(turns)
	assert.Equal(t, "tomorrow", out[FieldDate])
	assert.Equal(t, "4", out[FieldPartySize])
	assert.Equal(t, "8 pm", out[FieldTime])
}

func TestExtractNoMatchesOmitsKeys(t *testing.T) {
	out := Extract([]models.ChatTurn{userTurn("do you serve vegan food?")})
	assert.Empty(t, out)
}
