package models

import (
	"strings"
	"time"
)

// ProductCategory represents product_categories table
type ProductCategory struct {
	CategoryID   uint      `gorm:"primaryKey;column:category_id" json:"category_id"`
	CategoryName string    `gorm:"type:varchar(100);not null;unique" json:"category_name"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for ProductCategory
func (ProductCategory) TableName() string {
	return "product_categories"
}

// Feed-class categories are weight-tracked: stock is kept in kilograms and
// sold by the sack. Everything else is count-tracked (pieces).
var feedCategoryNames = map[string]bool{
	"feed":       true,
	"feeds":      true,
	"feeds 50kg": true,
}

// IsFeedClass reports whether products in this category are weight-tracked.
func (pc *ProductCategory) IsFeedClass() bool {
	return feedCategoryNames[strings.ToLower(strings.TrimSpace(pc.CategoryName))]
}

// BaseUnitFor returns the tracked unit family for products of this category.
// Decided once here, when a product is created; nothing downstream re-infers
// it from category names.
func (pc *ProductCategory) BaseUnitFor() BaseUnit {
	if pc.IsFeedClass() {
		return BaseUnitWeight
	}
	return BaseUnitCount
}
