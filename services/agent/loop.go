package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/openai/openai-go"
	"go.uber.org/zap"

	"yumres/models"
)

// ApologyMessage is what the guest sees when the LLM backend fails. It is
// used at every completion call site so a transport failure never leaves the
// loop without something to say.
const ApologyMessage = "I'm sorry, I'm having trouble responding right now. Please try again in a little while."

// Loop drives one inbound-message-to-reply cycle: completion, requested tool
// calls, tool results back into history, follow-up completion, until the model
// answers in plain text or the tool-round cap is reached.
type Loop struct {
	Chat          ChatClient
	Model         string
	Executor      *ToolExecutor
	MaxToolRounds int
	Logger        *zap.Logger
}

// Reply produces the assistant's reply to userText given the prior history
// (oldest first). An empty reply with a nil error means the model had nothing
// to say; the caller must not send or persist anything in that case.
func (l *Loop) Reply(ctx context.Context, restaurant *models.Restaurant, customerID string, history []models.ChatTurn, userText string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(BuildSystemPrompt(restaurant)))
	for _, turn := range history {
		if turn.Role == "user" {
			messages = append(messages, openai.UserMessage(turn.Content))
		} else {
			messages = append(messages, openai.AssistantMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(userText))

	// A long chat can push early answers out of the model's attention; the
	// extracted facts are restated so slot-filling survives the window.
	turns := append(append([]models.ChatTurn{}, history...), models.ChatTurn{Role: "user", Content: userText})
	if note := extractionNote(Extract(turns)); note != "" {
		messages = append(messages, openai.SystemMessage(note))
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(l.Model),
		Messages: messages,
		Tools:    toolDefinitions(),
	}

	completion, err := l.Chat.Complete(ctx, params)
	if err != nil {
		l.Logger.Error("completion request failed", zap.Error(err))
		return ApologyMessage, nil
	}

	for round := 0; round < l.MaxToolRounds; round++ {
		if len(completion.Choices) == 0 {
			return "", nil
		}
		message := completion.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			break
		}

		params.Messages = append(params.Messages, message.ToParam())
		for _, call := range message.ToolCalls {
			result := l.executeCall(ctx, restaurant.ID, customerID, call)
			payload, marshalErr := json.Marshal(result)
			if marshalErr != nil {
				payload = []byte(`{"error":"failed to encode tool result"}`)
			}
			params.Messages = append(params.Messages, openai.ToolMessage(string(payload), call.ID))
		}

		completion, err = l.Chat.Complete(ctx, params)
		if err != nil {
			l.Logger.Error("follow-up completion failed", zap.Error(err), zap.Int("round", round))
			return ApologyMessage, nil
		}
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	// At the round cap this may still carry tool-call requests; they are
	// dropped and whatever content came with the last completion is the reply.
	return completion.Choices[0].Message.Content, nil
}

// extractionNote renders the extracted fields in a fixed order so identical
// conversations produce identical prompts.
func extractionNote(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	var parts []string
	for _, key := range []string{FieldGuestName, FieldGuestPhone, FieldDate, FieldTime, FieldPartySize} {
		if v, ok := fields[key]; ok {
			parts = append(parts, key+"="+v)
		}
	}
	return "Details the guest has already mentioned in this chat: " + strings.Join(parts, ", ")
}

func (l *Loop) executeCall(ctx context.Context, restaurantID, customerID string, call openai.ChatCompletionMessageToolCall) map[string]interface{} {
	var args map[string]interface{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			l.Logger.Warn("tool call carried invalid arguments",
				zap.String("tool", call.Function.Name), zap.Error(err))
			return map[string]interface{}{"error": "invalid tool arguments"}
		}
	}
	return l.Executor.Execute(ctx, restaurantID, customerID, call.Function.Name, args)
}
