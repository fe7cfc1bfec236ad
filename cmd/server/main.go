package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"product-catalog-api/internal/cache"
	"product-catalog-api/internal/database"
	"product-catalog-api/internal/ratelimit"
	"product-catalog-api/internal/realtime"
	"product-catalog-api/internal/routes"
	"product-catalog-api/internal/service"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func main() {
	// Init database
	database.InitDB(getEnv("DB_PATH", "products.db"))

	// Process-scoped components: fixed-window limiter (5 req / 10s per
	// client) and response cache (120s default TTL). Both live for the
	// whole process and are injected into the routes, not global.
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Window:      time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 10)) * time.Second,
		MaxRequests: getEnvInt("RATE_LIMIT_MAX_REQUESTS", 5),
	})
	limiter.StartJanitor(context.Background(), 2*time.Minute)

	responseCache := cache.New(time.Duration(getEnvInt("CACHE_TTL_SECONDS", 120)) * time.Second)
	hub := realtime.NewHub()

	productService := service.NewProductService(database.GetDB(), responseCache, hub)

	// Setup the routes (rate limit -> cache -> handler per route)
	ginRoutes := routes.SetupRoutes(routes.Deps{
		Limiter: limiter,
		Cache:   responseCache,
		Service: productService,
		Hub:     hub,
	})

	// Start server
	port := ":" + getEnv("PORT", "3000")
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  GET    /products/paginated")
	log.Println("  GET    /products/:id")
	log.Println("  POST   /products/seed")
	log.Println("  GET    /ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
