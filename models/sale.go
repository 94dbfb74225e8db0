package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleType type for sale channels
type SaleType string

const (
	SaleWalkIn SaleType = "walk_in"
	SaleOnline SaleType = "online"
)

// SaleStatus type for sale lifecycle
type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleVoided    SaleStatus = "voided"
)

// Sale represents sales table, one stock-out event. TotalAmount is revenue
// only; cost of goods is derived from the items, never stored twice.
type Sale struct {
	SaleID          uint            `gorm:"primaryKey;column:sale_id" json:"sale_id"`
	SaleNo          string          `gorm:"type:varchar(30);not null;unique" json:"sale_no"`
	SaleDate        time.Time       `gorm:"type:date;not null" json:"sale_date"`
	SaleType        SaleType        `gorm:"type:varchar(10);not null" json:"sale_type"`
	CustomerName    *string         `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerContact *string         `gorm:"type:varchar(255)" json:"customer_contact,omitempty"`
	Status          SaleStatus      `gorm:"type:varchar(10);not null;default:'completed'" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// TableName specifies the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents sale_items table. One row per allocation slice: a
// requested line fans out into several rows when FEFO spans batches.
// Quantity is in stored units; UnitPrice and UnitCostAtSale are per the
// display unit the line was sold in. Source of truth for COGS reporting.
type SaleItem struct {
	ItemID         uint            `gorm:"primaryKey;column:item_id" json:"item_id"`
	SaleID         uint            `gorm:"not null;index" json:"sale_id"`
	ProductID      uint            `gorm:"not null;index" json:"product_id"`
	BatchID        *uint           `json:"batch_id,omitempty"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity"`
	Unit           string          `gorm:"type:varchar(10);not null" json:"unit"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	UnitCostAtSale decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unit_cost_at_sale"`
	LineCost       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"line_cost"`
	CreatedAt      time.Time       `json:"created_at"`

	// Relationships
	Sale    Sale          `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	Product Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Batch   *ProductBatch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}

// TableName specifies the table name for SaleItem
func (SaleItem) TableName() string {
	return "sale_items"
}
