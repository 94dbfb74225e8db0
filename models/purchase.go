package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents purchases table, one stock-in event. Stock only ever
// enters through a purchase.
type Purchase struct {
	PurchaseID   uint            `gorm:"primaryKey;column:purchase_id" json:"purchase_id"`
	PurchaseNo   string          `gorm:"type:varchar(30);not null;unique" json:"purchase_no"`
	SupplierName string          `gorm:"type:varchar(255);not null" json:"supplier_name"`
	PurchaseDate time.Time       `gorm:"type:date;not null" json:"purchase_date"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// TableName specifies the table name for Purchase
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem represents purchase_items table. Quantity and UnitCost are
// denominated in the display unit the operator entered (e.g. cost per sack);
// the created batch holds the stored-unit quantity. Immutable after creation.
type PurchaseItem struct {
	ItemID     uint            `gorm:"primaryKey;column:item_id" json:"item_id"`
	PurchaseID uint            `gorm:"not null;index" json:"purchase_id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	BatchID    uint            `gorm:"not null" json:"batch_id"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity"`
	Unit       string          `gorm:"type:varchar(10);not null" json:"unit"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	CreatedAt  time.Time       `json:"created_at"`

	// Relationships
	Purchase Purchase     `gorm:"foreignKey:PurchaseID" json:"purchase,omitempty"`
	Product  Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Batch    ProductBatch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}

// TableName specifies the table name for PurchaseItem
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
