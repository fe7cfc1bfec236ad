package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"product-catalog-api/internal/cache"
	"product-catalog-api/internal/models"
	"product-catalog-api/internal/realtime"

	"gorm.io/gorm"
)

const (
	// SeedCount is the number of synthetic products one seed run creates.
	SeedCount = 200
	// seedCategoryGroup groups seeded products into categories of 20.
	seedCategoryGroup = 20
)

// SeedResult confirms a completed seed run.
type SeedResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ProductService implements the three catalog operations over the
// product store. The response cache and event hub are injected so the
// seed path can invalidate and notify; both may be nil in tests that
// only exercise reads.
type ProductService struct {
	db    *gorm.DB
	cache *cache.ResponseCache
	hub   *realtime.Hub
}

// NewProductService wires a service to its store, cache and hub.
func NewProductService(db *gorm.DB, c *cache.ResponseCache, hub *realtime.Hub) *ProductService {
	return &ProductService{db: db, cache: c, hub: hub}
}

// FindOne returns the product with the given id, or *NotFoundError when
// no such record exists. Any other store error passes through unchanged.
func (s *ProductService) FindOne(id string) (models.Product, error) {
	log.Printf("Fetching from DB... ID: %s", id)

	var product models.Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, &NotFoundError{ID: id}
		}
		return models.Product{}, err
	}
	return product, nil
}

// FindPaginated returns one page of the collection, newest first.
//
// The window read and the total count are two independent queries; a
// concurrent seed can make them mutually inconsistent. That is accepted,
// totalPages is derived from whatever total the count observed. A page
// past the end yields empty data with the same total/totalPages.
func (s *ProductService) FindPaginated(q PaginationQuery) (PageResult, error) {
	var total int64
	if err := s.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return PageResult{}, err
	}

	products := make([]models.Product, 0, q.Limit)
	err := s.db.
		Order("created_at desc").
		Limit(q.Limit).
		Offset(q.Skip()).
		Find(&products).Error
	if err != nil {
		return PageResult{}, err
	}

	return PageResult{
		Data:       products,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages(total, q.Limit),
	}, nil
}

// SeedAndReset replaces the whole collection with SeedCount synthetic
// products. Delete and insert run in one transaction, so readers see
// either the old batch or the new one, never an empty store. The cache
// is dropped right after commit so no stale id survives the reset, and
// subscribers get a products_seeded event. Running it twice leaves
// exactly SeedCount rows.
func (s *ProductService) SeedAndReset() (SeedResult, error) {
	batch := generateSeedBatch(time.Now())

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(batch, 50).Error
	})
	if err != nil {
		return SeedResult{}, err
	}

	if s.cache != nil {
		s.cache.InvalidateAll()
	}
	s.notifySeeded(len(batch))

	return SeedResult{
		Message: fmt.Sprintf("Database seeded successfully with %d products.", len(batch)),
		Count:   len(batch),
	}, nil
}

// generateSeedBatch builds the deterministic-count batch: names number
// 1..SeedCount, prices land in [10, 110) rounded to cents, and every
// run of seedCategoryGroup products shares a category. CreatedAt is
// staggered so "newest first" has a stable order within the batch.
func generateSeedBatch(base time.Time) []models.Product {
	products := make([]models.Product, 0, SeedCount)
	for i := 1; i <= SeedCount; i++ {
		price := math.Round((rand.Float64()*100+10)*100) / 100
		p := models.Product{
			ID:       fmt.Sprintf("prod-%d-%03d", base.UnixNano(), i),
			Name:     fmt.Sprintf("Product %d", i),
			Price:    price,
			Category: fmt.Sprintf("Category %d", (i+seedCategoryGroup-1)/seedCategoryGroup),
		}
		p.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		products = append(products, p)
	}
	return products
}

func (s *ProductService) notifySeeded(count int) {
	if s.hub == nil {
		return
	}
	evt := map[string]any{
		"type":  "products_seeded",
		"count": count,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		s.hub.Broadcast(bytes)
	}
}
