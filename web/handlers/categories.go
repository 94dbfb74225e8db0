package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/janenicoldelacruz-web/lakson-inventory/database"
	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

type categoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CategoryAll returns the flat category list for form dropdowns.
func CategoryAll(c *fiber.Ctx) error {
	var categories []models.ProductCategory
	if err := database.GetDB().Order("category_name").Find(&categories).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CategoryList returns categories with product counts.
func CategoryList(c *fiber.Ctx) error {
	db := database.GetDB()

	var rows []struct {
		models.ProductCategory
		ProductCount int64 `json:"product_count"`
	}
	err := db.Model(&models.ProductCategory{}).
		Select("product_categories.*, COUNT(products.product_id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = product_categories.category_id AND products.deleted_at IS NULL").
		Group("product_categories.category_id").
		Order("product_categories.category_name").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": rows})
}

// CategoryCreate adds a category. Whether its products are weight-tracked
// follows from the name; the response echoes the decision so the client can
// show it.
func CategoryCreate(c *fiber.Ctx) error {
	var req categoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category := models.ProductCategory{
		CategoryName: req.Name,
		Description:  req.Description,
	}
	if err := database.GetDB().Create(&category).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Category created successfully.",
		"category":  category,
		"base_unit": category.BaseUnitFor(),
	})
}

// CategoryUpdate renames a category.
func CategoryUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}

	db := database.GetDB()
	var category models.ProductCategory
	if err := db.First(&category, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}

	var req categoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category.CategoryName = req.Name
	category.Description = req.Description
	if err := db.Save(&category).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Category updated successfully.",
		"category": category,
	})
}

// CategoryDelete removes a category with no products.
func CategoryDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}

	db := database.GetDB()
	var count int64
	if err := db.Model(&models.Product{}).Where("category_id = ?", uint(id)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "category still has products")
	}

	if err := db.Delete(&models.ProductCategory{}, uint(id)).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully."})
}

// BrandList returns all brands.
func BrandList(c *fiber.Ctx) error {
	var brands []models.Brand
	if err := database.GetDB().Order("brand_name").Find(&brands).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"brands": brands})
}
