package chat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/GenZCreation/genz-backend/models"
)

func turn(role, text string) map[string]any {
	return map[string]any{"role": role, "text": text}
}

func TestNormalize_EmptyMessageRejected(t *testing.T) {
	for _, message := range []any{"", "   ", nil, 42} {
		_, err := Normalize(message, nil)
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Message %v: expected ValidationError, got %v", message, err)
		}
	}
}

func TestNormalize_MessageIsLastTurn(t *testing.T) {
	contents, err := Normalize("  Ciao  ", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(contents))
	}
	last := contents[len(contents)-1]
	if last.Role != "user" || last.Parts[0].Text != "Ciao" {
		t.Errorf("Expected trimmed user turn last, got %+v", last)
	}
}

func TestNormalize_RoleMapping(t *testing.T) {
	history := []any{
		turn("user", "domanda"),
		turn("assistant", "risposta"),
	}

	contents, err := Normalize("Ciao", history)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(contents) != 3 {
		t.Fatalf("Expected 3 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" {
		t.Errorf("Expected user role preserved, got %s", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("Expected assistant mapped to model, got %s", contents[1].Role)
	}
}

func TestNormalize_HistoryWindowing(t *testing.T) {
	var history []any
	for i := 0; i < 30; i++ {
		history = append(history, turn("user", fmt.Sprintf("msg-%d", i)))
	}

	contents, err := Normalize("Ciao", history)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 12 history turns plus the new message.
	if len(contents) != historyWindow+1 {
		t.Fatalf("Expected %d contents, got %d", historyWindow+1, len(contents))
	}
	if contents[0].Parts[0].Text != "msg-18" {
		t.Errorf("Expected window to start at msg-18, got %s", contents[0].Parts[0].Text)
	}
	if contents[historyWindow-1].Parts[0].Text != "msg-29" {
		t.Errorf("Expected window to end at msg-29, got %s", contents[historyWindow-1].Parts[0].Text)
	}
}

func TestNormalize_WindowAppliesAfterFiltering(t *testing.T) {
	// Malformed elements must not consume window slots.
	var history []any
	for i := 0; i < 20; i++ {
		history = append(history, turn("user", fmt.Sprintf("valid-%d", i)))
		history = append(history, turn("system", "dropped"))
	}

	contents, err := Normalize("Ciao", history)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(contents) != historyWindow+1 {
		t.Fatalf("Expected %d contents, got %d", historyWindow+1, len(contents))
	}
	if contents[0].Parts[0].Text != "valid-8" {
		t.Errorf("Expected window over valid turns only, got %s", contents[0].Parts[0].Text)
	}
}

func TestNormalize_MalformedHistoryTolerated(t *testing.T) {
	history := []any{
		"not an object",
		42,
		nil,
		map[string]any{"role": "user"},                // no text
		map[string]any{"role": "user", "text": "   "}, // blank text
		map[string]any{"role": "user", "text": 7},     // non-string text
		turn("admin", "unrecognized role"),
		turn("assistant", "kept"),
	}

	contents, err := Normalize("Ciao", history)
	if err != nil {
		t.Fatalf("Malformed history must never error, got %v", err)
	}
	if len(contents) != 2 {
		t.Fatalf("Expected 1 surviving turn plus message, got %d", len(contents))
	}
	if contents[0].Parts[0].Text != "kept" {
		t.Errorf("Expected the valid turn to survive, got %s", contents[0].Parts[0].Text)
	}
}

func TestNormalize_NonArrayHistoryTreatedAsEmpty(t *testing.T) {
	for _, history := range []any{"a string", 42, map[string]any{"role": "user"}} {
		contents, err := Normalize("Ciao", history)
		if err != nil {
			t.Errorf("History %v: expected no error, got %v", history, err)
			continue
		}
		if len(contents) != 1 {
			t.Errorf("History %v: expected message only, got %d contents", history, len(contents))
		}
	}
}
