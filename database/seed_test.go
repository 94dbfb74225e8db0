package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func TestSeedDataCreatesOwnerAccount(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, SeedData(db))

	var owner models.User
	require.NoError(t, db.Where("role = ?", models.RoleOwner).First(&owner).Error)
	assert.Equal(t, "owner@lakson.local", owner.Email)
	assert.True(t, owner.IsOwner())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte("changeme")))
}

func TestSeedDataIdempotent(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, SeedData(db))
	require.NoError(t, SeedData(db))

	var users, categories, products int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.ProductCategory{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 3, categories)
	assert.EqualValues(t, 3, products)
}

func TestSeedDataFeedProductsAreWeightTracked(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, SeedData(db))

	var products []models.Product
	require.NoError(t, db.Preload("Category").Find(&products).Error)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, p.Category.BaseUnitFor(), p.BaseUnit, p.Name)
	}
}
