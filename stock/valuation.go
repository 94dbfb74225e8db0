package stock

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// AverageUnitCost computes the product's cost basis per stored unit: the
// arithmetic mean of historical purchase unit costs, each normalized from
// the display unit it was entered in (cost per sack becomes cost per kg).
// A product with no purchase history values at zero; selling manually
// entered stock is a normal business scenario, not an error.
func (c *Converter) AverageUnitCost(tx *gorm.DB, product *models.Product) (decimal.Decimal, error) {
	var items []models.PurchaseItem
	if err := tx.Where("product_id = ?", product.ProductID).Find(&items).Error; err != nil {
		return decimal.Zero, err
	}
	if len(items) == 0 {
		return decimal.Zero, nil
	}

	var sum decimal.Decimal
	for _, it := range items {
		unit, err := ParseDisplayUnit(it.Unit)
		if err != nil {
			return decimal.Zero, err
		}
		perStored, err := c.costPerStored(product, it.UnitCost, unit)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(perStored)
	}
	return sum.Div(decimal.NewFromInt(int64(len(items)))), nil
}

// CostPerDisplayUnit converts a stored-unit cost basis to the display unit a
// sale line was denominated in; the pure inverse of the pack-size
// normalization.
func (c *Converter) CostPerDisplayUnit(product *models.Product, storedUnitCost decimal.Decimal, unit DisplayUnit) (decimal.Decimal, error) {
	if product.IsWeightTracked() {
		switch unit {
		case UnitSack:
			return storedUnitCost.Mul(c.PackSize(product)), nil
		case UnitKilogram:
			return storedUnitCost, nil
		}
		return decimal.Zero, ErrInvalidUnit
	}
	if unit == UnitPiece {
		return storedUnitCost, nil
	}
	return decimal.Zero, ErrInvalidUnit
}

func (c *Converter) costPerStored(product *models.Product, displayUnitCost decimal.Decimal, unit DisplayUnit) (decimal.Decimal, error) {
	if product.IsWeightTracked() {
		switch unit {
		case UnitSack:
			return displayUnitCost.Div(c.PackSize(product)), nil
		case UnitKilogram:
			return displayUnitCost, nil
		}
		return decimal.Zero, ErrInvalidUnit
	}
	if unit == UnitPiece {
		return displayUnitCost, nil
	}
	return decimal.Zero, ErrInvalidUnit
}
