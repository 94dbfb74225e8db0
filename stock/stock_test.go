package stock

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

var productSeq int

// testDB opens an in-memory database with the full schema. A single
// connection keeps the :memory: store alive across gorm's pool.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// testConverter mirrors the default deployment: 50kg sacks with pre-starter
// variants shipping in 25kg.
func testConverter() *Converter {
	return NewConverter(decimal.NewFromInt(50), []PackRule{
		{Match: "pre-starter", KgPerSack: decimal.NewFromInt(25)},
	})
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEngine(db *gorm.DB) *Engine {
	return NewEngine(db, testConverter(), testLogger())
}

// seedProduct creates a category, brand and product row ready for stock
// operations.
func seedProduct(t *testing.T, db *gorm.DB, name string, baseUnit models.BaseUnit) *models.Product {
	t.Helper()
	productSeq++

	category := models.ProductCategory{CategoryName: fmt.Sprintf("Category %d", productSeq)}
	require.NoError(t, db.Create(&category).Error)

	brand := models.Brand{BrandName: fmt.Sprintf("Brand %d", productSeq)}
	require.NoError(t, db.Create(&brand).Error)

	product := models.Product{
		CategoryID:   category.CategoryID,
		BrandID:      brand.BrandID,
		SKU:          fmt.Sprintf("SKU-%04d", productSeq),
		Name:         name,
		BaseUnit:     baseUnit,
		SellingPrice: decimal.NewFromInt(1200),
		Status:       models.ProductActive,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

// seedBatch inserts a lot directly and raises the product aggregate to match.
func seedBatch(t *testing.T, db *gorm.DB, product *models.Product, qty decimal.Decimal, expiry *time.Time) *models.ProductBatch {
	t.Helper()

	batch := models.ProductBatch{
		ProductID:  product.ProductID,
		BatchCode:  newBatchCode(product.ProductID),
		ExpiryDate: expiry,
		Quantity:   qty,
	}
	require.NoError(t, db.Create(&batch).Error)

	product.CurrentStock = product.CurrentStock.Add(qty)
	require.NoError(t, db.Model(&models.Product{}).
		Where("product_id = ?", product.ProductID).
		Update("current_stock", product.CurrentStock).Error)
	return &batch
}

func daysFromNow(d int) *time.Time {
	ts := time.Now().AddDate(0, 0, d)
	return &ts
}

// requireDecimal compares by numeric value, not representation.
func requireDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	expected, err := decimal.NewFromString(want)
	require.NoError(t, err)
	require.True(t, expected.Equal(got), "expected %s, got %s %v", want, got, msgAndArgs)
}
