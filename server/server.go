// Package server wires the HTTP surface: the chat proxy, the contact relay
// and the health check, behind permissive CORS for the site frontend.
package server

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/GenZCreation/genz-backend/config"
	"github.com/GenZCreation/genz-backend/models"
	"github.com/GenZCreation/genz-backend/models/gemini"
	"github.com/GenZCreation/genz-backend/models/resend"
	"github.com/GenZCreation/genz-backend/stores"
)

type Server struct {
	cfg     *config.Config
	model   *gemini.Gemini_Model
	mailer  *resend.Resend_Client
	limiter stores.RateLimitStore
	logger  *log.Logger
}

// NewServer builds the handler set. limiter may be nil, which disables the
// quota gate entirely.
func NewServer(cfg *config.Config, model *gemini.Gemini_Model, mailer *resend.Resend_Client, limiter stores.RateLimitStore) *Server {
	return &Server{
		cfg:     cfg,
		model:   model,
		mailer:  mailer,
		limiter: limiter,
		logger:  log.New(os.Stdout, "[server] ", log.LstdFlags),
	}
}

// Router assembles the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors_middleware())

	router.GET("/", s.HandleHealth)
	router.POST("/api/chat", s.HandleChat)
	router.POST("/api/contact", s.HandleContact)

	return router
}

func (s *Server) HandleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK - GenZCreation server. POST /api/chat | POST /api/contact")
}

// cors_middleware permits cross-origin calls from any origin. The frontend
// is served from a different host in both dev and the static deployment.
func cors_middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// error_response maps an error to its JSON response. Upstream 429 and 402
// keep their status and get the fixed Italian copy the widget expects;
// everything else shows the error's own message.
func error_response(c *gin.Context, err error) {
	status := models.HTTPStatus(err)

	message := err.Error()
	var ue *models.UpstreamError
	if errors.As(err, &ue) {
		switch ue.StatusCode {
		case http.StatusTooManyRequests:
			message = "Troppe richieste, riprova tra poco."
		case http.StatusPaymentRequired:
			message = "Servizio temporaneamente non disponibile."
		}
	}

	c.JSON(status, gin.H{"error": message})
}
