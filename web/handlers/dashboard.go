package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/janenicoldelacruz-web/lakson-inventory/cache"
	"github.com/janenicoldelacruz-web/lakson-inventory/database"
	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

const dashboardTTL = 5 * time.Minute

type dashboardSummary struct {
	GeneratedAt     time.Time       `json:"generated_at"`
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	TodaySaleCount  int64           `json:"today_sale_count"`
	ProductCount    int64           `json:"product_count"`
	LowStock        []fiber.Map     `json:"low_stock"`
	ExpiringBatches []fiber.Map     `json:"expiring_batches"`
	StockByCategory []fiber.Map     `json:"stock_by_category"`
}

// DashboardSummary aggregates the owner dashboard: today's takings, products
// at or below reorder level, batches expiring within 30 days and stock value
// grouped by category. The result is cached; any committed purchase or sale
// invalidates it.
func DashboardSummary(c *fiber.Ctx) error {
	if rdb != nil {
		if raw, err := rdb.Get(c.Context(), cache.DashboardKey).Bytes(); err == nil {
			var cached dashboardSummary
			if json.Unmarshal(raw, &cached) == nil {
				return c.JSON(fiber.Map{"summary": cached, "cached": true})
			}
		}
	}

	summary, err := buildDashboardSummary()
	if err != nil {
		return err
	}

	if rdb != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := rdb.Set(c.Context(), cache.DashboardKey, raw, dashboardTTL).Err(); err != nil {
				log.WithError(err).Warn("dashboard cache write failed")
			}
		}
	}

	return c.JSON(fiber.Map{"summary": summary, "cached": false})
}

func buildDashboardSummary() (*dashboardSummary, error) {
	db := database.GetDB()
	summary := &dashboardSummary{GeneratedAt: time.Now()}

	today := time.Now().Format("2006-01-02")
	var revenue struct {
		Total decimal.Decimal
		Count int64
	}
	if err := db.Model(&models.Sale{}).
		Select("COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count").
		Where(dayExpr(db)+" = ? AND status = ?", today, models.SaleCompleted).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	summary.TodayRevenue = revenue.Total
	summary.TodaySaleCount = revenue.Count

	if err := db.Model(&models.Product{}).
		Where("status = ?", models.ProductActive).
		Count(&summary.ProductCount).Error; err != nil {
		return nil, err
	}

	var lowStock []models.Product
	if err := db.Preload("Category").
		Where("status = ? AND current_stock <= reorder_level", models.ProductActive).
		Order("current_stock ASC").Limit(20).
		Find(&lowStock).Error; err != nil {
		return nil, err
	}
	conv := engine.Converter()
	summary.LowStock = make([]fiber.Map, 0, len(lowStock))
	for i := range lowStock {
		p := &lowStock[i]
		summary.LowStock = append(summary.LowStock, fiber.Map{
			"product_id":    p.ProductID,
			"name":          p.Name,
			"current_stock": p.CurrentStock,
			"stock_display": conv.FormatStored(p, p.CurrentStock),
			"reorder_level": p.ReorderLevel,
		})
	}

	cutoff := time.Now().AddDate(0, 0, 30)
	var expiring []models.ProductBatch
	if err := db.Preload("Product").
		Where("quantity > 0 AND expiry_date IS NOT NULL AND expiry_date <= ?", cutoff).
		Order("expiry_date ASC, batch_id ASC").Limit(20).
		Find(&expiring).Error; err != nil {
		return nil, err
	}
	summary.ExpiringBatches = make([]fiber.Map, 0, len(expiring))
	for i := range expiring {
		b := &expiring[i]
		summary.ExpiringBatches = append(summary.ExpiringBatches, fiber.Map{
			"batch_id":   b.BatchID,
			"batch_code": b.BatchCode,
			"product":    b.Product.Name,
			"quantity":   b.Quantity,
			"expiry":     b.ExpiryDate,
			"days_left":  b.DaysUntilExpiry(),
		})
	}

	var byCategory []struct {
		CategoryName string
		ProductCount int64
		TotalStock   decimal.Decimal
	}
	if err := db.Model(&models.Product{}).
		Select("product_categories.category_name, COUNT(*) AS product_count, COALESCE(SUM(products.current_stock), 0) AS total_stock").
		Joins("JOIN product_categories ON product_categories.category_id = products.category_id").
		Where("products.deleted_at IS NULL").
		Group("product_categories.category_name").
		Order("product_categories.category_name").
		Scan(&byCategory).Error; err != nil {
		return nil, err
	}
	summary.StockByCategory = make([]fiber.Map, 0, len(byCategory))
	for _, row := range byCategory {
		summary.StockByCategory = append(summary.StockByCategory, fiber.Map{
			"category":      row.CategoryName,
			"product_count": row.ProductCount,
			"total_stock":   row.TotalStock,
		})
	}

	return summary, nil
}
