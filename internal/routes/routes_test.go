package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"product-catalog-api/internal/cache"
	"product-catalog-api/internal/ratelimit"
	"product-catalog-api/internal/realtime"
	"product-catalog-api/internal/service"
	"product-catalog-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	c := cache.New(2 * time.Minute)
	hub := realtime.NewHub()
	return Deps{
		Limiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		Cache:   c,
		Service: service.NewProductService(db, c, hub),
		Hub:     hub,
	}
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRoutes(newTestDeps(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

// Health is outside the /products group, so the limiter never sees it,
// while the sixth request to any product route in one window gets 429.
func TestRateLimitGuardsProductRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRoutes(newTestDeps(t))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/paginated", nil)
		req.RemoteAddr = "10.1.1.1:9000"
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/paginated", nil)
	req.RemoteAddr = "10.1.1.1:9000"
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	health := httptest.NewRecorder()
	reqHealth := httptest.NewRequest(http.MethodGet, "/health", nil)
	reqHealth.RemoteAddr = "10.1.1.1:9000"
	r.ServeHTTP(health, reqHealth)
	require.Equal(t, http.StatusOK, health.Code)
}

func TestSeedRouteIsRateLimitedToo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRoutes(newTestDeps(t))

	// mix of reads and the seed write against one client share a window
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/paginated", nil)
		req.RemoteAddr = "10.2.2.2:9000"
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products/seed", nil)
	req.RemoteAddr = "10.2.2.2:9000"
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
