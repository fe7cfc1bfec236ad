package service

import "product-catalog-api/internal/models"

// PaginationQuery carries validated page/limit parameters. Binding tags
// reject non-positive or non-integer values with a 400 before the
// service ever sees them; defaults apply when a parameter is absent.
type PaginationQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1"`
}

// Skip returns the offset into the ordered collection for this query.
func (q PaginationQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// PageResult is one page of the product collection, newest first.
// Computed fresh per request; the list route is never cached.
type PageResult struct {
	Data       []models.Product `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int64            `json:"totalPages"`
}

// totalPages is ceil(total/limit); 0 when the collection is empty.
func totalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
