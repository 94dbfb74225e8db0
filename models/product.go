package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BaseUnit is the tracked unit family of a product. It is the single closed
// enumeration for unit handling: weight-tracked products store kilograms,
// count-tracked products store pieces.
type BaseUnit string

const (
	BaseUnitWeight BaseUnit = "weight"
	BaseUnitCount  BaseUnit = "count"
)

// ProductStatus type for product lifecycle status
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Product represents products table. CurrentStock is a running aggregate in
// stored units (kg or pieces) and must equal the sum of quantity remaining
// across the product's batches; the stock engine maintains that invariant.
type Product struct {
	ProductID    uint            `gorm:"primaryKey;column:product_id" json:"product_id"`
	CategoryID   uint            `gorm:"not null;index" json:"category_id"`
	BrandID      uint            `gorm:"not null" json:"brand_id"`
	SKU          string          `gorm:"type:varchar(50);not null;unique;column:sku" json:"sku"`
	Name         string          `gorm:"type:varchar(200);not null" json:"name"`
	BaseUnit     BaseUnit        `gorm:"type:varchar(10);not null" json:"base_unit"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost_price"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"selling_price"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"current_stock"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"reorder_level"`
	Status       ProductStatus   `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	// Relationships
	Category ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// IsWeightTracked reports whether the product's stored unit is kilograms.
func (p *Product) IsWeightTracked() bool {
	return p.BaseUnit == BaseUnitWeight
}

// StoredUnitLabel returns the label of the product's stored unit.
func (p *Product) StoredUnitLabel() string {
	if p.IsWeightTracked() {
		return "kg"
	}
	return "pcs"
}
