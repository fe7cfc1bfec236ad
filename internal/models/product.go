package models

import (
	"gorm.io/gorm"
)

// DefaultCategory is used when a product is created without a category.
const DefaultCategory = "General"

// Product represents a product in the catalog.
// Products are immutable after creation; the only write path is the bulk
// seed/reset operation, which replaces the whole collection.
type Product struct {
	ID       string  `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"not null"`
	Price    float64 `json:"price" gorm:"not null"`
	Category string  `json:"category" gorm:"default:'General'"`
	gorm.Model
}

// TableName specifies the table name for Product Model
func (Product) TableName() string {
	return "products"
}
