package routes

import (
	"time"

	"product-catalog-api/internal/cache"
	"product-catalog-api/internal/handlers"
	"product-catalog-api/internal/ratelimit"
	"product-catalog-api/internal/realtime"
	"product-catalog-api/internal/service"

	"github.com/gin-gonic/gin"
)

// routeConfig declares the read-path policy for one route. Caching is
// opt-in per route: only the single-item lookup carries a cache layer,
// the paginated list always reflects the latest store state. That
// asymmetry is deliberate.
type routeConfig struct {
	Method      string
	Path        string
	CacheRoute  string // cache key prefix; empty means not cacheable
	TTLOverride time.Duration
	Handler     gin.HandlerFunc
}

// Deps are the process-scoped components the routes operate on. They
// are created once at startup and injected here, never reached for as
// package globals.
type Deps struct {
	Limiter *ratelimit.Limiter
	Cache   *cache.ResponseCache
	Service *service.ProductService
	Hub     *realtime.Hub
}

func SetupRoutes(deps Deps) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Product Catalog API is running in Health Check Endpoint",
		})
	})

	productHandler := handlers.NewProductHandler(deps.Service)

	// Route table for /products. Order inside each chain is fixed:
	// rate limit first, then cache, then the handler. The limiter must
	// short-circuit before the cache or the store is ever touched.
	table := []routeConfig{
		{
			Method:  "GET",
			Path:    "/paginated",
			Handler: productHandler.GetPaginatedProducts,
		},
		{
			Method:      "GET",
			Path:        "/:id",
			CacheRoute:  "products_by_id",
			TTLOverride: 120 * time.Second,
			Handler:     productHandler.GetProductByID,
		},
		{
			Method:  "POST",
			Path:    "/seed",
			Handler: productHandler.SeedProducts,
		},
	}

	products := ginRouter.Group("/products")
	products.Use(ratelimit.Middleware(deps.Limiter))
	for _, rc := range table {
		chain := make([]gin.HandlerFunc, 0, 2)
		if rc.CacheRoute != "" {
			chain = append(chain, cache.Middleware(deps.Cache, rc.CacheRoute, rc.TTLOverride))
		}
		chain = append(chain, rc.Handler)
		products.Handle(rc.Method, rc.Path, chain...)
	}

	// Catalog event stream (seed notifications)
	ginRouter.GET("/ws", handlers.WebSocketHandler(deps.Hub))

	return ginRouter
}
