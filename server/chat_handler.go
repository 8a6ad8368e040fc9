package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GenZCreation/genz-backend/chat"
	"github.com/GenZCreation/genz-backend/models"
	"github.com/GenZCreation/genz-backend/models/gemini"
)

// raw_chat_request keeps the body loosely typed at the boundary. The widget
// is not a trusted API consumer: history may be anything, and the normalizer
// decides what survives.
type raw_chat_request struct {
	Message any  `json:"message"`
	History any  `json:"history"`
	Stream  bool `json:"stream"`
}

// HandleChat proxies one chat completion, buffered by default or re-framed
// SSE when the body asks for stream.
func (s *Server) HandleChat(c *gin.Context) {
	var req raw_chat_request
	// A body that is not JSON at all is treated like an empty one; the
	// missing-message rejection below covers it.
	_ = c.ShouldBindJSON(&req)

	contents, err := chat.Normalize(req.Message, req.History)
	if err != nil {
		error_response(c, err)
		return
	}

	remaining := -1
	if s.limiter != nil {
		result, err := s.limiter.Allow(c.ClientIP(), "chat")
		if err != nil {
			// Fail open: the result already allows the request.
			s.logger.Printf("Rate limit check error: %v", err)
		}
		if !result.Allowed {
			s.logger.Printf("Rate limit exceeded for IP: %s", c.ClientIP())
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      (&models.RateLimitError{RetryAfter: 60}).Error(),
				"retryAfter": 60,
			})
			return
		}
		remaining = result.Remaining
	}

	if err := s.cfg.RequireGemini(); err != nil {
		error_response(c, err)
		return
	}

	if req.Stream {
		s.handle_streaming(c, contents, remaining)
		return
	}

	text, err := s.model.Generate(c.Request.Context(), contents, chat.SystemPrompt)
	if err != nil {
		s.logger.Printf("GEMINI ERROR: %v", err)
		error_response(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Chat_Response{Text: text})
}

// handle_streaming re-frames the upstream SSE stream into OpenAI-style delta
// chunks. Once the stream has started the status is committed, so a later
// upstream failure becomes an error event followed by the terminal marker.
func (s *Server) handle_streaming(c *gin.Context, contents []gemini.Content, remaining int) {
	ctx := c.Request.Context()

	body, err := s.model.StreamGenerate(ctx, contents, chat.SystemPrompt)
	if err != nil {
		s.logger.Printf("GEMINI STREAM ERROR: %v", err)
		error_response(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache, no-transform")
	c.Header("Connection", "keep-alive")
	if remaining >= 0 {
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	}
	c.Status(http.StatusOK)

	chunkID := "chatcmpl-" + uuid.NewString()
	created := time.Now().Unix()
	reframer := chat.NewReframer()
	firstChunk := true

	buf := make([]byte, 4096)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			for _, delta := range reframer.Feed(buf[:n]) {
				chunk := models.ChatCompletionChunk{
					ID:      chunkID,
					Object:  "chat.completion.chunk",
					Created: created,
					Model:   s.model.Model,
					Choices: []models.StreamChoice{{
						Delta: models.StreamDelta{Content: delta},
					}},
				}
				if firstChunk {
					chunk.Choices[0].Delta.Role = "assistant"
					firstChunk = false
				}
				if err := write_sse_json(c, chunk); err != nil {
					// Client went away; stop reading upstream.
					return
				}
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				if ctx.Err() != nil {
					s.logger.Printf("SSE client disconnected")
					return
				}
				s.logger.Printf("GEMINI STREAM READ ERROR: %v", readErr)
				_ = write_sse_json(c, gin.H{"error": "Errore del servizio AI"})
			}
			break
		}
	}

	// Terminal sequence: one final chunk with a finish reason, then the
	// [DONE] marker, exactly once, always last.
	finish := "stop"
	final := models.ChatCompletionChunk{
		ID:      chunkID,
		Object:  "chat.completion.chunk",
		Created: created,
		Model:   s.model.Model,
		Choices: []models.StreamChoice{{
			Delta:        models.StreamDelta{},
			FinishReason: &finish,
		}},
	}
	_ = write_sse_json(c, final)
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

func write_sse_json(c *gin.Context, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal sse event: %w", err)
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}
