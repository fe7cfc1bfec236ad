package handlers

import (
	"errors"
	"net/http"

	"product-catalog-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler translates HTTP requests into ProductService calls.
// Rate limiting and response caching are applied as middleware before
// these handlers run; see internal/routes.
type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

/*
*
GetPaginatedProducts handles GET /products/paginated
Returns one page of the catalog, newest first.
Query params: page (default 1), limit (default 10); both must be positive integers.
*/
func (h *ProductHandler) GetPaginatedProducts(c *gin.Context) {
	var query service.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.svc.FindPaginated(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

/*
*
GetProductByID handles GET /products/:id
Returns a single product. Responses are cached per id by the cache
middleware, so within the TTL window repeated lookups never hit the store.
*/
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	product, err := h.svc.FindOne(productID)
	if err != nil {
		var notFound *service.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

/*
*
SeedProducts handles POST /products/seed
Replaces the whole catalog with a fresh synthetic batch and drops every
cached response, so ids from before the reset cannot be served stale.
*/
func (h *ProductHandler) SeedProducts(c *gin.Context) {
	result, err := h.svc.SeedAndReset()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to seed products",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
