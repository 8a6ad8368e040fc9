package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/GenZCreation/genz-backend/config"
	"github.com/GenZCreation/genz-backend/models/gemini"
	"github.com/GenZCreation/genz-backend/models/resend"
	"github.com/GenZCreation/genz-backend/server"
	"github.com/GenZCreation/genz-backend/stores"
)

func main() {
	// Load .env file if it exists (not present in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	model := gemini.NewModel(cfg.GeminiModel, cfg.GeminiAPIKey)
	mailer := resend.NewClient(cfg.ResendAPIKey)

	var limiter stores.RateLimitStore
	if cfg.RateLimitStore != "off" {
		store, err := stores.NewStore(stores.NewStoreConfig(cfg.RateLimitStore, cfg.RateLimitDSN))
		if err != nil {
			// The limiter fails open per request, and the same policy
			// applies at startup: chat availability wins.
			log.Printf("Rate limit store unavailable, limiter disabled: %v", err)
		} else {
			limiter = store
			defer store.Close()

			scheduler := cron.New()
			if _, err := scheduler.AddFunc("@every 5m", func() {
				if err := store.Prune(10 * time.Minute); err != nil {
					log.Printf("Rate limit prune error: %v", err)
				}
			}); err != nil {
				log.Printf("Failed to schedule rate limit pruning: %v", err)
			}
			scheduler.Start()
			defer scheduler.Stop()
		}
	}

	srv := server.NewServer(cfg, model, mailer, limiter)
	router := srv.Router()

	log.Printf("Server running: http://localhost:%s", cfg.Port)
	log.Printf("- Chat:    POST /api/chat")
	log.Printf("- Contact: POST /api/contact")

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
