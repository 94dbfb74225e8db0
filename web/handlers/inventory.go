package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/janenicoldelacruz-web/lakson-inventory/database"
	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// StockReport returns every product's stock position: aggregate quantity in
// stored units, the human rendering ("3 sacks + 1 kg (151 kg)") and the
// average-cost valuation of what's on hand.
func StockReport(c *fiber.Ctx) error {
	db := database.GetDB()

	var products []models.Product
	query := db.Preload("Category").Preload("Brand")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Order("category_id, name").Find(&products).Error; err != nil {
		return err
	}

	conv := engine.Converter()
	rows := make([]fiber.Map, 0, len(products))
	totalValue := decimal.Zero
	for i := range products {
		p := &products[i]

		unitCost, err := conv.AverageUnitCost(db, p)
		if err != nil {
			return err
		}
		value := p.CurrentStock.Mul(unitCost)
		totalValue = totalValue.Add(value)

		row := fiber.Map{
			"product_id":    p.ProductID,
			"sku":           p.SKU,
			"name":          p.Name,
			"category":      p.Category.CategoryName,
			"base_unit":     p.BaseUnit,
			"current_stock": p.CurrentStock,
			"stock_display": conv.FormatStored(p, p.CurrentStock),
			"unit_cost":     unitCost,
			"stock_value":   value,
			"reorder_level": p.ReorderLevel,
			"needs_reorder": p.CurrentStock.LessThanOrEqual(p.ReorderLevel),
			"status":        p.Status,
		}
		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{
		"rows":        rows,
		"total_value": totalValue,
	})
}

// StockMovementList returns the append-only movement ledger, newest first.
func StockMovementList(c *fiber.Ctx) error {
	db := database.GetDB()
	page, perPage, offset := pagination(c)

	query := db.Model(&models.StockMovement{})
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if movementType := c.Query("movement_type"); movementType != "" {
		query = query.Where("movement_type = ?", movementType)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("created_at <= ?", to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var movements []models.StockMovement
	if err := query.Preload("Product").Preload("Batch").
		Order("movement_id DESC").
		Limit(perPage).Offset(offset).
		Find(&movements).Error; err != nil {
		return err
	}

	return paginated(c, movements, page, perPage, total)
}

// BatchList returns batches in FEFO order for a product, or expiring batches
// across the store when no product is given.
func BatchList(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.ProductBatch{}).Preload("Product").
		Where("quantity > 0").
		Order("expiry_date ASC NULLS LAST, batch_id ASC")
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if days := c.QueryInt("expiring_within_days", 0); days > 0 {
		cutoff := time.Now().AddDate(0, 0, days)
		query = query.Where("expiry_date IS NOT NULL AND expiry_date <= ?", cutoff)
	}

	var batches []models.ProductBatch
	if err := query.Find(&batches).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"batches": batches})
}
