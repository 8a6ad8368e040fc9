package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is the caller's fault: a missing or malformed required
// field. Always maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError is the operator's fault: a required credential or
// setting is absent. Always maps to 500.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return "Missing " + e.Missing
}

// UpstreamError wraps a third-party API failure. StatusCode is the upstream
// HTTP status; Message is the upstream's own error text when it could be
// parsed, else a generic description.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream error HTTP %d", e.StatusCode)
}

// RateLimitError is this service's own quota, not the upstream's.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return "Troppe richieste. Riprova tra un minuto."
}

// HTTPStatus maps an error to the response status. Upstream 429/402 pass
// through because the widget shows a different message for quota and billing
// failures; every other upstream status collapses to 500.
func HTTPStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return http.StatusTooManyRequests
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		if ue.StatusCode == http.StatusTooManyRequests || ue.StatusCode == http.StatusPaymentRequired {
			return ue.StatusCode
		}
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
