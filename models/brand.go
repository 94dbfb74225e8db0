package models

import "time"

// Brand represents brands table
type Brand struct {
	BrandID   uint      `gorm:"primaryKey;column:brand_id" json:"brand_id"`
	BrandName string    `gorm:"type:varchar(100);not null;unique" json:"brand_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Brand
func (Brand) TableName() string {
	return "brands"
}
