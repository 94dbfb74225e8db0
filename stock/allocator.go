package stock

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// Allocation is one slice of a FEFO allocation plan: how much of the
// requested line a single batch satisfies, in both unit systems.
type Allocation struct {
	Batch      *models.ProductBatch
	DisplayQty decimal.Decimal
	StoredQty  decimal.Decimal
}

// Allocate builds the FEFO plan for a requested display quantity: the
// quantity is converted to stored units once, then batches are walked in
// expiry order and each contributes min(remaining, requested). If the total
// available falls short the ledger is left untouched and the error carries
// the shortfall in display units. The plan is deterministic: equal expiry
// dates are consumed in batch-creation order.
//
// Allocate only plans and decrements batch rows inside the caller's
// transaction; the engine's atomic wrapper guarantees nothing sticks if the
// surrounding transaction later fails.
func (c *Converter) Allocate(tx *gorm.DB, product *models.Product, displayQty decimal.Decimal, unit DisplayUnit) ([]Allocation, error) {
	requestedStored, err := c.ToStored(product, displayQty, unit)
	if err != nil {
		return nil, err
	}

	batches, err := AvailableBatches(tx, product.ProductID)
	if err != nil {
		return nil, err
	}

	var total decimal.Decimal
	for _, b := range batches {
		total = total.Add(b.Quantity)
	}
	if total.LessThan(requestedStored) {
		available, convErr := c.ToDisplay(product, total, unit)
		if convErr != nil {
			return nil, convErr
		}
		return nil, &InsufficientStockError{
			ProductID: product.ProductID,
			Unit:      unit,
			Requested: displayQty,
			Available: available,
		}
	}

	remaining := requestedStored
	plan := make([]Allocation, 0, 1)
	for i := range batches {
		if remaining.IsZero() {
			break
		}
		batch := &batches[i]
		if !batch.Quantity.IsPositive() {
			continue
		}
		used := decimal.Min(batch.Quantity, remaining)
		usedDisplay, convErr := c.ToDisplay(product, used, unit)
		if convErr != nil {
			return nil, convErr
		}
		if err := ConsumeBatch(tx, batch, used); err != nil {
			return nil, err
		}
		plan = append(plan, Allocation{
			Batch:      batch,
			DisplayQty: usedDisplay,
			StoredQty:  used,
		})
		remaining = remaining.Sub(used)
	}

	return plan, nil
}
