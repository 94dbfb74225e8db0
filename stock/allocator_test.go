package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

func TestAllocateFefoOrder(t *testing.T) {
	db := testDB(t)
	conv := testConverter()
	feed := seedProduct(t, db, "Hog Starter Mash", models.BaseUnitWeight)

	later := seedBatch(t, db, feed, decimal.NewFromInt(200), daysFromNow(60))
	sooner := seedBatch(t, db, feed, decimal.NewFromInt(100), daysFromNow(10))
	noExpiry := seedBatch(t, db, feed, decimal.NewFromInt(50), nil)

	// 3 sacks = 150 kg: drains the soonest batch and spills into the later one
	plan, err := conv.Allocate(db, feed, decimal.NewFromInt(3), UnitSack)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.Equal(t, sooner.BatchID, plan[0].Batch.BatchID)
	requireDecimal(t, "100", plan[0].StoredQty)
	requireDecimal(t, "2", plan[0].DisplayQty)

	assert.Equal(t, later.BatchID, plan[1].Batch.BatchID)
	requireDecimal(t, "50", plan[1].StoredQty)
	requireDecimal(t, "1", plan[1].DisplayQty)

	// The drained batch drops out; the no-expiry batch stays last
	var remaining []models.ProductBatch
	remaining, err = AvailableBatches(db, feed.ProductID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, later.BatchID, remaining[0].BatchID)
	requireDecimal(t, "150", remaining[0].Quantity)
	assert.Equal(t, noExpiry.BatchID, remaining[1].BatchID)
}

func TestAllocateTieBreakByCreation(t *testing.T) {
	db := testDB(t)
	conv := testConverter()
	feed := seedProduct(t, db, "Hog Starter Mash", models.BaseUnitWeight)

	expiry := daysFromNow(30)
	first := seedBatch(t, db, feed, decimal.NewFromInt(50), expiry)
	seedBatch(t, db, feed, decimal.NewFromInt(50), expiry)

	plan, err := conv.Allocate(db, feed, decimal.NewFromInt(20), UnitKilogram)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, first.BatchID, plan[0].Batch.BatchID)
}

func TestAllocateInsufficientLeavesLedgerUntouched(t *testing.T) {
	db := testDB(t)
	conv := testConverter()
	feed := seedProduct(t, db, "Hog Starter Mash", models.BaseUnitWeight)

	seedBatch(t, db, feed, decimal.NewFromInt(100), daysFromNow(10))
	seedBatch(t, db, feed, decimal.NewFromInt(20), daysFromNow(40))

	// 120 kg on hand, 3 sacks = 150 kg requested
	_, err := conv.Allocate(db, feed, decimal.NewFromInt(3), UnitSack)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, feed.ProductID, stockErr.ProductID)
	assert.Equal(t, UnitSack, stockErr.Unit)
	requireDecimal(t, "3", stockErr.Requested)
	requireDecimal(t, "2.4", stockErr.Available)
	requireDecimal(t, "0.6", stockErr.Shortfall())

	// No batch was decremented
	batches, err := AvailableBatches(db, feed.ProductID)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	requireDecimal(t, "100", batches[0].Quantity)
	requireDecimal(t, "20", batches[1].Quantity)
}

func TestAllocateExactDrain(t *testing.T) {
	db := testDB(t)
	conv := testConverter()
	bottle := seedProduct(t, db, "Electrolyte Bottle", models.BaseUnitCount)

	seedBatch(t, db, bottle, decimal.NewFromInt(12), nil)

	plan, err := conv.Allocate(db, bottle, decimal.NewFromInt(12), UnitPiece)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	requireDecimal(t, "12", plan[0].StoredQty)

	batches, err := AvailableBatches(db, bottle.ProductID)
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestConsumeBatchOverdraw(t *testing.T) {
	db := testDB(t)
	feed := seedProduct(t, db, "Hog Starter Mash", models.BaseUnitWeight)
	batch := seedBatch(t, db, feed, decimal.NewFromInt(10), nil)

	err := ConsumeBatch(db, batch, decimal.NewFromInt(11))
	require.ErrorIs(t, err, ErrBatchOverdraw)
}
