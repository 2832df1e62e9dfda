package main

import (
	"context"
	"log"

	"github.com/pageza/sproutspoon/backend/config"
	"github.com/pageza/sproutspoon/backend/internal/api"
	"github.com/pageza/sproutspoon/backend/internal/database"
	"github.com/pageza/sproutspoon/backend/internal/engine"
	"github.com/pageza/sproutspoon/backend/internal/router"
	"github.com/pageza/sproutspoon/backend/internal/server"
	"github.com/pageza/sproutspoon/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis is optional: caching and rate limiting degrade gracefully.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, continuing without caching: %v", err)
		redisClient = nil
	}

	tables, err := config.LoadNutritionTables(cfg.NutritionTablesFile)
	if err != nil {
		log.Fatalf("Failed to load nutrition tables: %v", err)
	}

	// The explanation provider is optional as well; without an API key the
	// engine falls back to rule-based explanations.
	var explainer engine.ExplanationProvider
	if explanationService, err := service.NewExplanationService(redisClient); err != nil {
		log.Printf("Warning: explanation provider disabled: %v", err)
	} else {
		explainer = explanationService
	}

	eng := engine.New(tables.Targets, tables.Ceilings, explainer, engine.Options{})

	var imageService service.IImageService
	if s3Config, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("Warning: image storage disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Config)
	}

	handlers := api.Handlers{
		Auth:            service.NewAuthService(db, cfg.JWTSecret),
		Babies:          service.NewBabyService(db),
		Recipes:         service.NewRecipeService(db),
		Feedback:        service.NewFeedbackService(db, redisClient),
		Recommendations: service.NewRecommendationService(db, eng, redisClient),
		Images:          imageService,
		Redis:           redisClient,
	}

	srv := server.NewServer(router.SetupRouter(handlers), cfg.ServerPort)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
