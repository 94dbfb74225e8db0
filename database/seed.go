package database

import (
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// SeedData loads a starter catalog for a new store: the feed categories the
// shop actually carries plus a handful of non-feed goods. Idempotent:
// existing rows are left alone.
func SeedData(db *gorm.DB) error {
	if err := seedOwner(db); err != nil {
		return err
	}

	categories := []models.ProductCategory{
		{CategoryName: "Feeds", Description: strPtr("Livestock and poultry feeds, sold by the sack")},
		{CategoryName: "Vitamins", Description: strPtr("Supplements and medications")},
		{CategoryName: "Equipment", Description: strPtr("Feeders, drinkers and hardware")},
	}
	for i := range categories {
		if err := db.Where("category_name = ?", categories[i].CategoryName).
			FirstOrCreate(&categories[i]).Error; err != nil {
			return err
		}
	}

	brands := []models.Brand{
		{BrandName: "B-MEG"},
		{BrandName: "Purina"},
		{BrandName: "Thunderbird"},
		{BrandName: "Generic"},
	}
	for i := range brands {
		if err := db.Where("brand_name = ?", brands[i].BrandName).
			FirstOrCreate(&brands[i]).Error; err != nil {
			return err
		}
	}

	feeds := categories[0]
	vitamins := categories[1]
	products := []models.Product{
		{
			CategoryID:   feeds.CategoryID,
			BrandID:      brands[0].BrandID,
			SKU:          "FD-HOG-STARTER",
			Name:         "Hog Starter Crumble",
			BaseUnit:     feeds.BaseUnitFor(),
			CostPrice:    decimal.NewFromInt(1500),
			SellingPrice: decimal.NewFromInt(1700),
			ReorderLevel: decimal.NewFromInt(500),
			Status:       models.ProductActive,
		},
		{
			CategoryID:   feeds.CategoryID,
			BrandID:      brands[0].BrandID,
			SKU:          "FD-PRE-STARTER",
			Name:         "Hog Pre-Starter Crumble",
			BaseUnit:     feeds.BaseUnitFor(),
			CostPrice:    decimal.NewFromInt(980),
			SellingPrice: decimal.NewFromInt(1150),
			ReorderLevel: decimal.NewFromInt(250),
			Status:       models.ProductActive,
		},
		{
			CategoryID:   vitamins.CategoryID,
			BrandID:      brands[3].BrandID,
			SKU:          "VT-ELECTROLYTE",
			Name:         "Poultry Electrolyte Sachet",
			BaseUnit:     vitamins.BaseUnitFor(),
			CostPrice:    decimal.NewFromInt(35),
			SellingPrice: decimal.NewFromInt(50),
			ReorderLevel: decimal.NewFromInt(20),
			Status:       models.ProductActive,
		},
	}
	for i := range products {
		if err := db.Where("sku = ?", products[i].SKU).
			FirstOrCreate(&products[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// seedOwner ensures the default owner account exists. The password is a
// bootstrap credential; deployments change it through whatever sits in front
// of this service.
func seedOwner(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", "owner@lakson.local").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:         "Store Owner",
		Email:        "owner@lakson.local",
		PasswordHash: string(hash),
		Role:         models.RoleOwner,
	}).Error
}

func strPtr(s string) *string {
	return &s
}
