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

type purchaseItemRequest struct {
	ProductID  uint            `json:"product_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	ExpiryDate *string         `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

type purchaseRequest struct {
	PurchaseDate string                `json:"purchase_date" validate:"required,datetime=2006-01-02"`
	SupplierName string                `json:"supplier_name" validate:"required,max=255"`
	Items        []purchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseList returns purchases, newest first, filterable by date range and
// supplier name.
func PurchaseList(c *fiber.Ctx) error {
	db := database.GetDB()
	page, perPage, offset := pagination(c)

	query := db.Model(&models.Purchase{})
	if from := c.Query("from"); from != "" {
		query = query.Where("purchase_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("purchase_date <= ?", to)
	}
	if supplier := c.Query("supplier_name"); supplier != "" {
		query = query.Where("supplier_name LIKE ?", "%"+supplier+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var purchases []models.Purchase
	if err := query.Preload("Items.Product").
		Order("purchase_date DESC, purchase_id DESC").
		Limit(perPage).Offset(offset).
		Find(&purchases).Error; err != nil {
		return err
	}

	return paginated(c, purchases, page, perPage, total)
}

// PurchaseView returns one purchase with its items and created batches.
func PurchaseView(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid purchase id")
	}

	var purchase models.Purchase
	if err := database.GetDB().
		Preload("Items.Product").
		Preload("Items.Batch").
		First(&purchase, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase not found")
	}

	return c.JSON(fiber.Map{"purchase": purchase})
}

// PurchaseCreate records a stock-in event. All lines commit or none do.
func PurchaseCreate(c *fiber.Ctx) error {
	var req purchaseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid purchase_date")
	}

	input := stock.PurchaseInput{
		Date:         date,
		SupplierName: req.SupplierName,
	}
	for _, item := range req.Items {
		unit, err := requestUnit(item.Unit)
		if err != nil {
			return err
		}
		line := stock.PurchaseLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Unit:      unit,
			UnitCost:  item.UnitCost,
		}
		if item.ExpiryDate != nil {
			expiry, err := time.Parse("2006-01-02", *item.ExpiryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid expiry_date")
			}
			line.ExpiryDate = &expiry
		}
		input.Lines = append(input.Lines, line)
	}

	purchase, err := engine.RecordPurchase(c.Context(), actorFrom(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Purchase created successfully.",
		"purchase": purchase,
	})
}
