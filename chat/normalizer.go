// Package chat converts untrusted widget input into Gemini conversations and
// re-frames upstream SSE streams into the stable delta format the widget
// consumes.
package chat

import (
	"strings"

	"github.com/GenZCreation/genz-backend/models"
	"github.com/GenZCreation/genz-backend/models/gemini"
)

// SystemPrompt establishes the assistant persona. Configuration, not user
// data; it travels as the request's systemInstruction.
const SystemPrompt = "Sei l'assistente virtuale di GenZCreation.it. " +
	"Rispondi SEMPRE in italiano, in modo amichevole e professionale. " +
	"Aiuta su: siti web, UI/UX, e-commerce, SEO, web app, landing page e manutenzione. " +
	"Se servono dettagli, fai UNA domanda alla volta. Non inventare."

// historyWindow caps how many prior turns reach the model. Older turns are
// dropped from the front after filtering.
const historyWindow = 12

// Normalize validates an untrusted (message, history) pair into the ordered
// Gemini contents for one completion call: filtered windowed history followed
// by the new user turn.
//
// The message must be a non-empty string after trimming; anything else is a
// *models.ValidationError. The history is permissive: it comes from the chat
// widget, so a non-array value is treated as empty and malformed elements are
// dropped one by one rather than rejecting the request.
func Normalize(message any, history any) ([]gemini.Content, error) {
	text, _ := message.(string)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &models.ValidationError{Message: "Missing message"}
	}

	turns := filter_history(history)
	if len(turns) > historyWindow {
		turns = turns[len(turns)-historyWindow:]
	}

	contents := make([]gemini.Content, 0, len(turns)+1)
	for _, turn := range turns {
		role := "user"
		if turn.Role == "assistant" {
			// Gemini's vocabulary for the assistant side.
			role = "model"
		}
		contents = append(contents, gemini.Content{
			Role:  role,
			Parts: []gemini.Part{{Text: turn.Text}},
		})
	}

	contents = append(contents, gemini.Content{
		Role:  "user",
		Parts: []gemini.Part{{Text: text}},
	})

	return contents, nil
}

// filter_history keeps elements that look like a turn: an object with a
// recognized role and a non-empty string text.
func filter_history(history any) []models.Chat_Turn {
	list, ok := history.([]any)
	if !ok {
		return nil
	}

	turns := make([]models.Chat_Turn, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		role, _ := obj["role"].(string)
		if role != "user" && role != "assistant" {
			continue
		}
		text, _ := obj["text"].(string)
		if strings.TrimSpace(text) == "" {
			continue
		}
		turns = append(turns, models.Chat_Turn{Role: role, Text: text})
	}
	return turns
}
