package server

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GenZCreation/genz-backend/models"
	"github.com/GenZCreation/genz-backend/models/resend"
)

// HandleContact validates a contact submission and relays it as one email
// through Resend, with reply-to set to the submitter.
func (s *Server) HandleContact(c *gin.Context) {
	// Loosely typed on purpose: a non-string field is treated as absent,
	// not as a binding failure.
	var raw map[string]any
	_ = c.ShouldBindJSON(&raw)

	req := models.Contact_Request{
		Name:    str_field(raw, "name"),
		Email:   str_field(raw, "email"),
		Phone:   str_field(raw, "phone"),
		Company: str_field(raw, "company"),
		Subject: str_field(raw, "subject"),
		Message: str_field(raw, "message"),
	}
	req.Sanitize()

	if err := req.Validate(); err != nil {
		error_response(c, err)
		return
	}

	if err := s.cfg.RequireResend(); err != nil {
		error_response(c, err)
		return
	}

	subject := "Nuovo contatto dal sito"
	if req.Subject != "" {
		subject = "Contatto: " + req.Subject
	}

	id, err := s.mailer.Send(c.Request.Context(), resend.Send_Request{
		From:    s.cfg.ResendFrom,
		To:      []string{s.cfg.ResendTo},
		ReplyTo: req.Email,
		Subject: subject,
		HTML:    contact_email_body(&req),
	})
	if err != nil {
		s.logger.Printf("RESEND ERROR: %v", err)
		error_response(c, err)
		return
	}

	resp := models.Contact_Response{OK: true}
	if id != "" {
		resp.ID = &id
	}
	c.JSON(http.StatusOK, resp)
}

func str_field(raw map[string]any, key string) string {
	v, _ := raw[key].(string)
	return v
}

// contact_email_body interpolates the submission into the notification
// email. Every field is escaped first; the form is the injection surface.
func contact_email_body(req *models.Contact_Request) string {
	var sb strings.Builder
	sb.WriteString(`<div style="font-family:system-ui,-apple-system,Segoe UI,Roboto,sans-serif;line-height:1.5">`)
	sb.WriteString("<h2>Nuovo contatto da GenZCreation.it</h2>")
	fmt.Fprintf(&sb, "<p><strong>Nome:</strong> %s</p>", escape_or_dash(req.Name))
	fmt.Fprintf(&sb, "<p><strong>Email:</strong> %s</p>", html.EscapeString(req.Email))
	fmt.Fprintf(&sb, "<p><strong>Telefono:</strong> %s</p>", escape_or_dash(req.Phone))
	fmt.Fprintf(&sb, "<p><strong>Azienda:</strong> %s</p>", escape_or_dash(req.Company))
	fmt.Fprintf(&sb, "<p><strong>Oggetto:</strong> %s</p>", escape_or_dash(req.Subject))
	sb.WriteString("<hr />")
	fmt.Fprintf(&sb, `<p style="white-space:pre-wrap">%s</p>`, html.EscapeString(req.Message))
	sb.WriteString("</div>")
	return sb.String()
}

func escape_or_dash(s string) string {
	if s == "" {
		return "-"
	}
	return html.EscapeString(s)
}
