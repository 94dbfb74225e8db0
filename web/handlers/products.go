package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/janenicoldelacruz-web/lakson-inventory/database"
	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

type productRequest struct {
	CategoryID   uint            `json:"product_category_id" validate:"required"`
	BrandID      uint            `json:"brand_id" validate:"required"`
	SKU          string          `json:"sku" validate:"required,max=50"`
	Name         string          `json:"name" validate:"required,max=200"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// PublicProductList serves the storefront and mobile app: active products
// only, with display-friendly stock figures.
func PublicProductList(c *fiber.Ctx) error {
	db := database.GetDB()

	var products []models.Product
	query := db.Preload("Category").Preload("Brand").
		Where("status = ?", models.ProductActive)
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if err := query.Order("name").Find(&products).Error; err != nil {
		return err
	}

	conv := engine.Converter()
	out := make([]fiber.Map, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, fiber.Map{
			"product":       p,
			"stock_display": conv.FormatStored(p, p.CurrentStock),
		})
	}
	return c.JSON(fiber.Map{"products": out})
}

// ProductList returns the full owner catalog with filters.
func ProductList(c *fiber.Ctx) error {
	db := database.GetDB()
	page, perPage, offset := pagination(c)

	query := db.Model(&models.Product{}).Preload("Category").Preload("Brand")
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR sku LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Order("name").Limit(perPage).Offset(offset).Find(&products).Error; err != nil {
		return err
	}

	return paginated(c, products, page, perPage, total)
}

// ProductCreate adds a product to the catalog. The tracked unit family is
// decided here, once, from the category; it never changes afterwards.
func ProductCreate(c *fiber.Ctx) error {
	var req productRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	db := database.GetDB()

	var category models.ProductCategory
	if err := db.First(&category, req.CategoryID).Error; err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "product category not found")
	}
	var brand models.Brand
	if err := db.First(&brand, req.BrandID).Error; err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "brand not found")
	}

	baseUnit := category.BaseUnitFor()

	reorder := req.ReorderLevel
	if reorder.IsZero() {
		// Default reorder level: 10 sacks worth for feeds, 20 pieces otherwise.
		if baseUnit == models.BaseUnitWeight {
			reorder = decimal.NewFromInt(10)
		} else {
			reorder = decimal.NewFromInt(20)
		}
	}

	product := models.Product{
		CategoryID:   req.CategoryID,
		BrandID:      req.BrandID,
		SKU:          req.SKU,
		Name:         req.Name,
		BaseUnit:     baseUnit,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		CurrentStock: req.CurrentStock,
		ReorderLevel: reorder,
		Status:       models.ProductActive,
	}
	if err := db.Create(&product).Error; err != nil {
		return err
	}
	if err := db.Preload("Category").Preload("Brand").First(&product, product.ProductID).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully.",
		"product": product,
	})
}

// ProductView returns one product with its batches.
func ProductView(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	db := database.GetDB()
	var product models.Product
	if err := db.Preload("Category").Preload("Brand").First(&product, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	var batches []models.ProductBatch
	if err := db.Where("product_id = ? AND quantity > 0", product.ProductID).
		Order("expiry_date ASC NULLS LAST, batch_id ASC").
		Find(&batches).Error; err != nil {
		return err
	}

	conv := engine.Converter()
	return c.JSON(fiber.Map{
		"product":       product,
		"batches":       batches,
		"stock_display": conv.FormatStored(&product, product.CurrentStock),
	})
}

// ProductUpdate edits catalog fields. Stock quantities are not editable
// here; they move only through purchases and sales.
func ProductUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	db := database.GetDB()
	var product models.Product
	if err := db.First(&product, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	var req struct {
		Name         *string          `json:"name" validate:"omitempty,max=200"`
		SKU          *string          `json:"sku" validate:"omitempty,max=50"`
		BrandID      *uint            `json:"brand_id"`
		CostPrice    *decimal.Decimal `json:"cost_price"`
		SellingPrice *decimal.Decimal `json:"selling_price"`
		ReorderLevel *decimal.Decimal `json:"reorder_level"`
		Status       *string          `json:"status" validate:"omitempty,oneof=active inactive"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.BrandID != nil {
		updates["brand_id"] = *req.BrandID
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.SellingPrice != nil {
		updates["selling_price"] = *req.SellingPrice
	}
	if req.ReorderLevel != nil {
		updates["reorder_level"] = *req.ReorderLevel
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) > 0 {
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := db.Preload("Category").Preload("Brand").First(&product, product.ProductID).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully.",
		"product": product,
	})
}

// ProductDelete soft-deletes a product; history stays intact.
func ProductDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	db := database.GetDB()
	var product models.Product
	if err := db.First(&product, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	if err := db.Delete(&product).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully."})
}
