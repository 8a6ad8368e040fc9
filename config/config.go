// Package config holds the process-wide configuration. It is loaded once at
// startup from the environment and read-only afterwards.
package config

import (
	"os"

	"github.com/GenZCreation/genz-backend/models"
)

type Config struct {
	Port string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Resend
	ResendAPIKey string
	ResendFrom   string
	ResendTo     string

	// Rate limiting: "sqlite", "postgres" or "off".
	RateLimitStore string
	RateLimitDSN   string
}

// Load reads the configuration from the environment. Missing credentials are
// not fatal here: each handler checks the credential it needs and answers
// with a configuration error, so the chat endpoint stays up when only the
// email credential is absent and vice versa.
func Load() *Config {
	return &Config{
		Port:           getenv("PORT", "3001"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getenv("GEMINI_MODEL", "gemini-3-flash-preview"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		ResendFrom:     os.Getenv("RESEND_FROM"),
		ResendTo:       os.Getenv("RESEND_TO"),
		RateLimitStore: getenv("RATE_LIMIT_STORE", "off"),
		RateLimitDSN:   getenv("RATE_LIMIT_DSN", "rate_limits.sqlite"),
	}
}

// RequireGemini reports the first missing chat credential.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return &models.ConfigurationError{Missing: "GEMINI_API_KEY"}
	}
	return nil
}

// RequireResend reports the first missing email setting.
func (c *Config) RequireResend() error {
	if c.ResendAPIKey == "" {
		return &models.ConfigurationError{Missing: "RESEND_API_KEY"}
	}
	if c.ResendTo == "" {
		return &models.ConfigurationError{Missing: "RESEND_TO"}
	}
	if c.ResendFrom == "" {
		return &models.ConfigurationError{Missing: "RESEND_FROM"}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
