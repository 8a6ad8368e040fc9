package models

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Chat_Turn is one prior exchange as the widget sends it: role is either
// "user" or "assistant", text is the rendered message content.
type Chat_Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Chat_Request struct {
	Message string      `json:"message"`
	History []Chat_Turn `json:"history,omitempty"`
	// Stream selects the SSE response on the same route.
	Stream bool `json:"stream,omitempty"`
}

// Contact_Request carries the raw contact form payload. Fields are trimmed
// and clipped by Sanitize before any validity check.
type Contact_Request struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

const (
	maxNameLen    = 120
	maxEmailLen   = 200
	maxPhoneLen   = 40
	maxCompanyLen = 120
	maxSubjectLen = 200
	maxMessageLen = 6000
	minMessageLen = 10
)

// clip trims and caps to max characters, never cutting inside a rune.
func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		return string([]rune(s)[:max])
	}
	return s
}

// Sanitize trims and clips every field in place.
func (r *Contact_Request) Sanitize() {
	r.Name = clip(r.Name, maxNameLen)
	r.Email = clip(r.Email, maxEmailLen)
	r.Phone = clip(r.Phone, maxPhoneLen)
	r.Company = clip(r.Company, maxCompanyLen)
	r.Subject = clip(r.Subject, maxSubjectLen)
	r.Message = clip(r.Message, maxMessageLen)
}

// Validate checks the required fields after Sanitize. Optional fields can
// never fail; only email and message reject a submission.
func (r *Contact_Request) Validate() error {
	if r.Email == "" {
		return &ValidationError{Message: "Email obbligatoria"}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &ValidationError{Message: "Email non valida"}
	}
	if r.Message == "" {
		return &ValidationError{Message: "Messaggio obbligatorio"}
	}
	if utf8.RuneCountInString(r.Message) < minMessageLen {
		return &ValidationError{Message: "Messaggio troppo corto"}
	}
	return nil
}
