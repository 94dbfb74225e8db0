package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// ReceiveBatch creates a new inventory lot with its full stored-unit
// quantity. Receipts are always additive: two deliveries with the same
// expiry still become two batches, so each purchase line stays traceable.
func ReceiveBatch(tx *gorm.DB, product *models.Product, storedQty decimal.Decimal, expiry *time.Time) (*models.ProductBatch, error) {
	batch := models.ProductBatch{
		ProductID:  product.ProductID,
		BatchCode:  newBatchCode(product.ProductID),
		ExpiryDate: expiry,
		Quantity:   storedQty,
	}
	if err := tx.Create(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// AvailableBatches returns the product's non-exhausted batches in FEFO
// order: soonest expiry first, no-expiry batches last, creation order as the
// tie-break. Rows are read under an exclusive row lock so a concurrent sale
// of the same product cannot allocate the same stock twice.
func AvailableBatches(tx *gorm.DB, productID uint) ([]models.ProductBatch, error) {
	var batches []models.ProductBatch
	q := tx.Where("product_id = ? AND quantity > 0", productID).
		Order("expiry_date ASC NULLS LAST, batch_id ASC")
	if supportsRowLocks(tx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// ConsumeBatch decrements a batch's remaining quantity. The allocator never
// requests more than AvailableBatches reported, so an overdraw here is an
// invariant breach, not a user-facing error.
func ConsumeBatch(tx *gorm.DB, batch *models.ProductBatch, storedQty decimal.Decimal) error {
	if storedQty.GreaterThan(batch.Quantity) {
		return fmt.Errorf("%w: batch %s holds %s, requested %s",
			ErrBatchOverdraw, batch.BatchCode, batch.Quantity, storedQty)
	}
	batch.Quantity = batch.Quantity.Sub(storedQty)
	return tx.Model(&models.ProductBatch{}).
		Where("batch_id = ?", batch.BatchID).
		Update("quantity", batch.Quantity).Error
}

func newBatchCode(productID uint) string {
	return fmt.Sprintf("PB-%d-%s", productID, uuid.NewString()[:8])
}

// supportsRowLocks reports whether the dialect understands SELECT ... FOR
// UPDATE. The sqlite driver used in tests serializes writers on its own.
func supportsRowLocks(tx *gorm.DB) bool {
	switch tx.Dialector.Name() {
	case "postgres", "mysql":
		return true
	}
	return false
}
