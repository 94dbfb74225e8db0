package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/janenicoldelacruz-web/lakson-inventory/database"
	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// AnalyticsSummary reports revenue, cost of goods sold and gross margin over
// an optional date range, plus the top selling products by revenue. COGS
// comes from the line_cost captured on each sale item at sale time, so later
// purchase prices never rewrite history.
func AnalyticsSummary(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.SaleItem{}).
		Joins("JOIN sales ON sales.sale_id = sale_items.sale_id").
		Where("sales.status = ?", models.SaleCompleted)
	if from := c.Query("from"); from != "" {
		query = query.Where("sales.sale_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("sales.sale_date <= ?", to)
	}

	var totals struct {
		Revenue decimal.Decimal
		Cogs    decimal.Decimal
	}
	if err := query.Session(&gorm.Session{}).
		Select("COALESCE(SUM(sale_items.line_total), 0) AS revenue, COALESCE(SUM(sale_items.line_cost), 0) AS cogs").
		Scan(&totals).Error; err != nil {
		return err
	}

	var topProducts []struct {
		ProductID uint
		Name      string
		Revenue   decimal.Decimal
		Quantity  decimal.Decimal
	}
	if err := query.Session(&gorm.Session{}).
		Select("sale_items.product_id, products.name, COALESCE(SUM(sale_items.line_total), 0) AS revenue, COALESCE(SUM(sale_items.quantity), 0) AS quantity").
		Joins("JOIN products ON products.product_id = sale_items.product_id").
		Group("sale_items.product_id, products.name").
		Order("revenue DESC").Limit(10).
		Scan(&topProducts).Error; err != nil {
		return err
	}

	margin := totals.Revenue.Sub(totals.Cogs)
	return c.JSON(fiber.Map{
		"revenue":      totals.Revenue,
		"cogs":         totals.Cogs,
		"gross_margin": margin,
		"top_products": topProducts,
	})
}

// SalesMonthly groups completed sales into monthly revenue buckets for the
// trailing twelve months.
func SalesMonthly(c *fiber.Ctx) error {
	db := database.GetDB()

	var rows []struct {
		Month    string
		Revenue  decimal.Decimal
		Quantity int64
	}
	query := db.Model(&models.Sale{}).
		Select(monthExpr(db)+" AS month, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS quantity").
		Where("status = ?", models.SaleCompleted).
		Group("month").
		Order("month DESC").
		Limit(12)
	if saleType := c.Query("sale_type"); saleType != "" {
		query = query.Where("sale_type = ?", saleType)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"months": rows})
}

// monthExpr renders a YYYY-MM bucket expression for the active dialect.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m', sale_date)"
	}
	return "to_char(sale_date, 'YYYY-MM')"
}

// dayExpr renders a YYYY-MM-DD bucket expression for the active dialect.
func dayExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-%d', sale_date)"
	}
	return "to_char(sale_date, 'YYYY-MM-DD')"
}
