// main.go - The entry point and router setup.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dixra/hpp_smart_pricing/configs"
	"github.com/dixra/hpp_smart_pricing/internal/ai"
	"github.com/dixra/hpp_smart_pricing/internal/api"
	"github.com/dixra/hpp_smart_pricing/internal/ratelimit"
	"github.com/dixra/hpp_smart_pricing/internal/storage"
	"github.com/dixra/hpp_smart_pricing/internal/workspace"
	"github.com/gin-gonic/gin"
)

func main() {
	// Step 0: Load configuration from environment variables
	configs.LoadConfig()

	// Step 0.5: Set production mode
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Step 1: Suggestion lists, from MongoDB when configured
	var source storage.OptionsSource
	if configs.MONGO_URI != "" {
		if err := storage.InitMongoDB(); err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer storage.CloseMongoDB()
		source = storage.NewMongoOptionsSource(storage.GetMongoDB())
	} else {
		log.Println("MONGO_URI not set, serving built-in context options")
	}
	options := storage.NewOptionsCache(source, time.Duration(configs.OPTIONS_CACHE_TTL_SECONDS)*time.Second)

	// Step 2: AI provider and advisor
	provider, err := ai.CreatePricingProvider()
	if err != nil {
		log.Fatalf("Failed to create AI provider: %v", err)
	}
	limiter := ratelimit.NewRateLimiter(
		configs.ANALYSIS_RATE_LIMIT,
		time.Duration(configs.ANALYSIS_REFILL_SECONDS)*time.Second,
	)
	advisor := ai.NewAdvisor(provider, limiter)
	log.Printf("✓ AI provider: %s", provider.GetProviderName())

	// Step 3: Workspace and routes
	handler := api.NewHandler(advisor, workspace.New(advisor), options)
	router := api.NewRouter(handler, configs.ALLOWED_ORIGINS)

	// Step 4: Setup HTTP server with timeouts
	srv := &http.Server{
		Addr:           ":" + configs.PORT,
		Handler:        router,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   2 * time.Minute, // AI analysis can take a while
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on :%s", configs.PORT)
		log.Println("API Endpoints:")
		log.Println("  GET  /api/v1/options")
		log.Println("  POST /api/v1/calculate")
		log.Println("  POST /api/v1/analyze")
		log.Println("  *    /api/v1/workspace")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
