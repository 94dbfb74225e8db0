package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBatch represents product_batches table. One row per receipt lot:
// created by a purchase line with its full quantity, decremented by sales,
// never merged with other lots even when expiry dates match. Rows stay once
// depleted so the receipt trail survives.
type ProductBatch struct {
	BatchID    uint            `gorm:"primaryKey;column:batch_id" json:"batch_id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	BatchCode  string          `gorm:"type:varchar(64);not null;unique" json:"batch_code"`
	ExpiryDate *time.Time      `gorm:"type:date;index" json:"expiry_date,omitempty"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for ProductBatch
func (ProductBatch) TableName() string {
	return "product_batches"
}

// IsExpired checks if the batch has passed its expiry date
func (pb *ProductBatch) IsExpired() bool {
	if pb.ExpiryDate == nil {
		return false
	}
	return time.Now().After(*pb.ExpiryDate)
}

// DaysUntilExpiry returns days until expiry (negative if expired). Batches
// without an expiry date report a very large number.
func (pb *ProductBatch) DaysUntilExpiry() int {
	if pb.ExpiryDate == nil {
		return 999999
	}
	return int(time.Until(*pb.ExpiryDate).Hours() / 24)
}
