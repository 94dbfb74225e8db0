package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/janenicoldelacruz-web/lakson-inventory/database"
	"github.com/janenicoldelacruz-web/lakson-inventory/models"
	"github.com/janenicoldelacruz-web/lakson-inventory/stock"
)

type saleItemRequest struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type saleRequest struct {
	SaleDate        string            `json:"sale_date" validate:"required,datetime=2006-01-02"`
	SaleType        string            `json:"sale_type" validate:"required,oneof=walk_in online"`
	CustomerName    *string           `json:"customer_name" validate:"omitempty,max=255"`
	CustomerContact *string           `json:"customer_contact" validate:"omitempty,max=255"`
	Items           []saleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleList returns sales, newest first, filterable by date range and channel.
func SaleList(c *fiber.Ctx) error {
	db := database.GetDB()
	page, perPage, offset := pagination(c)

	query := db.Model(&models.Sale{})
	if from := c.Query("from"); from != "" {
		query = query.Where("sale_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("sale_date <= ?", to)
	}
	if saleType := c.Query("sale_type"); saleType != "" {
		query = query.Where("sale_type = ?", saleType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var sales []models.Sale
	if err := query.Preload("Items.Product").
		Order("sale_date DESC, sale_id DESC").
		Limit(perPage).Offset(offset).
		Find(&sales).Error; err != nil {
		return err
	}

	return paginated(c, sales, page, perPage, total)
}

// SaleView returns one sale with its items and the batches they drew from.
func SaleView(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid sale id")
	}

	var sale models.Sale
	if err := database.GetDB().
		Preload("Items.Product").
		Preload("Items.Batch").
		First(&sale, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sale not found")
	}

	return c.JSON(fiber.Map{"sale": sale})
}

// SaleCreate records a stock-out event. Stock leaves the store only through
// here; batches are consumed first-expiry-first.
func SaleCreate(c *fiber.Ctx) error {
	return createSale(c, "")
}

// OnlineOrderCreate records an online-channel sale with the same stock
// semantics as a walk-in sale.
func OnlineOrderCreate(c *fiber.Ctx) error {
	return createSale(c, models.SaleOnline)
}

func createSale(c *fiber.Ctx, forceType models.SaleType) error {
	var req saleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.SaleDate)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid sale_date")
	}

	saleType := models.SaleType(req.SaleType)
	if forceType != "" {
		saleType = forceType
	}

	input := stock.SaleInput{
		Date:            date,
		Type:            saleType,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
	}
	for _, item := range req.Items {
		unit, err := requestUnit(item.Unit)
		if err != nil {
			return err
		}
		input.Lines = append(input.Lines, stock.SaleLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Unit:      unit,
			UnitPrice: item.UnitPrice,
		})
	}

	sale, err := engine.RecordSale(c.Context(), actorFrom(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sale created successfully.",
		"sale":    sale,
	})
}
