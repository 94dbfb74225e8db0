package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType type for stock movement kinds
type MovementType string

const (
	MovementPurchase MovementType = "purchase"
	MovementSale     MovementType = "sale"
	// Reserved for the returns workflow.
	MovementSaleReturn MovementType = "sale_return"
)

// StockMovement represents stock_movements table, the append-only ledger of
// every quantity change to a product/batch pair, in stored units. Rows are
// never updated or deleted; they are the audit trail for reconciling
// current_stock drift.
type StockMovement struct {
	MovementID     uint            `gorm:"primaryKey;column:movement_id" json:"movement_id"`
	ProductID      uint            `gorm:"not null;index" json:"product_id"`
	BatchID        *uint           `gorm:"index" json:"batch_id,omitempty"`
	MovementType   MovementType    `gorm:"type:varchar(20);not null" json:"movement_type"`
	ReferenceType  string          `gorm:"type:varchar(30);not null" json:"reference_type"`
	ReferenceID    uint            `gorm:"not null" json:"reference_id"`
	QuantityChange decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity_change"`
	RecordedBy     string          `gorm:"type:varchar(100);not null" json:"recorded_by"`
	Remarks        *string         `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`

	// Relationships
	Product Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Batch   *ProductBatch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}

// TableName specifies the table name for StockMovement
func (StockMovement) TableName() string {
	return "stock_movements"
}
