package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/remixlab/mealremix/config"
	"github.com/remixlab/mealremix/internal/api"
	"github.com/remixlab/mealremix/internal/cache"
	"github.com/remixlab/mealremix/internal/mealdb"
	"github.com/remixlab/mealremix/internal/middleware"
	"github.com/remixlab/mealremix/internal/router"
	"github.com/remixlab/mealremix/internal/server"
	"github.com/remixlab/mealremix/internal/service"
	"github.com/remixlab/mealremix/internal/state"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Redis is optional: without it the remix cache and rate limiter are off.
	var redisClient *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	} else {
		log.Println("Redis not configured, remix cache and rate limiting disabled")
	}

	store := state.NewStore()
	mealClient := mealdb.NewClient(cfg.MealDBBaseURL)
	remixService := service.NewRemixService(cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel, cache.NewRemixCache(redisClient))

	recipeHandler := api.NewRecipeHandler(mealClient, store)
	remixHandler := api.NewRemixHandler(remixService, store)

	engine := router.SetupRouter(
		recipeHandler,
		remixHandler,
		middleware.NewRemixRateLimiter(redisClient),
		cfg.AllowedOrigins,
	)

	srv := server.New(cfg.ServerAddr(), engine)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s...", cfg.ServerAddr())
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
