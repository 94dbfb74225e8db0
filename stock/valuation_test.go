package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

func TestAverageUnitCostNoHistory(t *testing.T) {
	db := testDB(t)
	conv := testConverter()
	feed := seedProduct(t, db, "Hog Starter Mash", models.BaseUnitWeight)

	cost, err := conv.AverageUnitCost(db, feed)
	require.NoError(t, err)
	requireDecimal(t, "0", cost)
}

func TestAverageUnitCostNormalizesUnits(t *testing.T) {
	db := testDB(t)
	conv := testConverter()
	feed := seedProduct(t, db, "Hog Starter Mash", models.BaseUnitWeight)
	batch := seedBatch(t, db, feed, decimal.NewFromInt(100), nil)

	purchase := models.Purchase{PurchaseNo: "PR-TEST-1", SupplierName: "San Pedro Agrivet"}
	require.NoError(t, db.Create(&purchase).Error)

	// 1000 per 50kg sack = 20/kg, and 24/kg entered directly
	items := []models.PurchaseItem{
		{
			PurchaseID: purchase.PurchaseID,
			ProductID:  feed.ProductID,
			BatchID:    batch.BatchID,
			Quantity:   decimal.NewFromInt(4),
			Unit:       "sack",
			UnitCost:   decimal.NewFromInt(1000),
			LineTotal:  decimal.NewFromInt(4000),
		},
		{
			PurchaseID: purchase.PurchaseID,
			ProductID:  feed.ProductID,
			BatchID:    batch.BatchID,
			Quantity:   decimal.NewFromInt(30),
			Unit:       "kg",
			UnitCost:   decimal.NewFromInt(24),
			LineTotal:  decimal.NewFromInt(720),
		},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}

	cost, err := conv.AverageUnitCost(db, feed)
	require.NoError(t, err)
	requireDecimal(t, "22", cost)
}

func TestCostPerDisplayUnit(t *testing.T) {
	conv := testConverter()
	feed := weightProduct("Hog Starter Mash")

	perSack, err := conv.CostPerDisplayUnit(feed, decimal.NewFromInt(20), UnitSack)
	require.NoError(t, err)
	requireDecimal(t, "1000", perSack)

	perKg, err := conv.CostPerDisplayUnit(feed, decimal.NewFromInt(20), UnitKilogram)
	require.NoError(t, err)
	requireDecimal(t, "20", perKg)

	_, err = conv.CostPerDisplayUnit(feed, decimal.NewFromInt(20), UnitPiece)
	require.ErrorIs(t, err, ErrInvalidUnit)

	bottle := countProduct("Electrolyte Bottle")
	perPiece, err := conv.CostPerDisplayUnit(bottle, decimal.NewFromInt(85), UnitPiece)
	require.NoError(t, err)
	requireDecimal(t, "85", perPiece)
}
