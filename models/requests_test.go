package models

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func valid_contact() Contact_Request {
	return Contact_Request{
		Name:    "Maria Rossi",
		Email:   "maria@example.com",
		Subject: "Preventivo sito",
		Message: "Vorrei un preventivo per un sito e-commerce.",
	}
}

func TestContactValidate_Valid(t *testing.T) {
	req := valid_contact()
	req.Sanitize()
	if err := req.Validate(); err != nil {
		t.Errorf("Expected valid submission, got %v", err)
	}
}

func TestContactValidate_MissingEmail(t *testing.T) {
	req := valid_contact()
	req.Email = "   "
	req.Sanitize()

	err := req.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if ve.Message != "Email obbligatoria" {
		t.Errorf("Expected Italian reason, got %q", ve.Message)
	}
}

func TestContactValidate_InvalidEmail(t *testing.T) {
	for _, email := range []string{"not-an-email", "a@", "@b.com", "spaces in@mail.com"} {
		req := valid_contact()
		req.Email = email
		req.Sanitize()

		err := req.Validate()
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Email %q: expected ValidationError, got %v", email, err)
		}
	}
}

func TestContactValidate_MissingMessage(t *testing.T) {
	req := valid_contact()
	req.Message = ""
	req.Sanitize()

	err := req.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if ve.Message != "Messaggio obbligatorio" {
		t.Errorf("Expected Italian reason, got %q", ve.Message)
	}
}

func TestContactValidate_MessageTooShort(t *testing.T) {
	// The second message is 9 characters in 18 bytes; the minimum counts
	// characters, not bytes.
	for _, message := range []string{"ciao", "èèèèèèèèè"} {
		req := valid_contact()
		req.Message = message
		req.Sanitize()

		if err := req.Validate(); err == nil {
			t.Errorf("Message %q under 10 characters should be rejected", message)
		}
	}

	req := valid_contact()
	req.Message = "èèèèèèèèèè"
	req.Sanitize()
	if err := req.Validate(); err != nil {
		t.Errorf("A 10-character accented message should pass, got %v", err)
	}
}

func TestContactSanitize_TrimsAndClips(t *testing.T) {
	req := Contact_Request{
		Name:    "  " + strings.Repeat("a", 200) + "  ",
		Email:   "  maria@example.com  ",
		Message: strings.Repeat("b", 7000),
	}
	req.Sanitize()

	if len(req.Name) != 120 {
		t.Errorf("Expected name clipped to 120, got %d", len(req.Name))
	}
	if req.Email != "maria@example.com" {
		t.Errorf("Expected trimmed email, got %q", req.Email)
	}
	if len(req.Message) != 6000 {
		t.Errorf("Expected message clipped to 6000, got %d", len(req.Message))
	}
}

func TestContactSanitize_ClipsOnRuneBoundaries(t *testing.T) {
	req := Contact_Request{
		Email:   "maria@example.com",
		Message: strings.Repeat("è", 7000),
	}
	req.Sanitize()

	if !utf8.ValidString(req.Message) {
		t.Fatal("Clipping must not cut a rune in half")
	}
	if got := utf8.RuneCountInString(req.Message); got != 6000 {
		t.Errorf("Expected 6000 characters, got %d", got)
	}
}
