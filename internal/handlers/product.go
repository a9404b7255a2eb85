package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nabhon/smoif-shop/internal/models"
	"github.com/nabhon/smoif-shop/internal/utils"
)

// ProductHandler manages product endpoints.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type publicProduct struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
	ImageURL  string          `json:"imageUrl"`
}

// ListProducts returns active products for the storefront.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	var products []publicProduct
	if err := h.db.Model(&models.Product{}).
		Select("id, name, base_price, image_url").
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(products)
}

// GetProduct loads a product with its variants (public endpoint).
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Variants").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(product)
}

// ListProductsAdmin returns all products including inactive ones.
func (h *ProductHandler) ListProductsAdmin(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var products []models.Product
	if err := h.db.Preload("Variants").
		Order("updated_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(products)
}

type variantRequest struct {
	Price         decimal.Decimal    `json:"price"`
	StockQuantity int                `json:"stockQuantity"`
	Combination   models.Combination `json:"combination"`
}

type productRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
	BasePrice   decimal.Decimal  `json:"basePrice"`
	IsActive    *bool            `json:"isActive"`
	Variants    []variantRequest `json:"variants"`
}

func buildVariants(reqs []variantRequest) ([]models.ProductVariant, error) {
	variants := make([]models.ProductVariant, 0, len(reqs))
	for _, v := range reqs {
		combination := v.Combination
		if combination == nil {
			combination = models.Combination{}
		}
		variants = append(variants, models.ProductVariant{
			Price:         v.Price,
			StockQuantity: v.StockQuantity,
			Combination:   combination,
		})
	}

	if err := models.ValidateVariants(variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// CreateProduct creates a product together with its variant set.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	variants, err := buildVariants(req.Variants)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BasePrice:   req.BasePrice,
		IsActive:    isActive,
		Variants:    variants,
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct updates a product and replaces its entire variant set.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	variants, err := buildVariants(req.Variants)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.ImageURL = req.ImageURL
	existing.BasePrice = req.BasePrice
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", existing.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"name":        existing.Name,
			"description": existing.Description,
			"image_url":   existing.ImageURL,
			"base_price":  existing.BasePrice,
			"is_active":   existing.IsActive,
		}).Error; err != nil {
			return err
		}

		for i := range variants {
			variants[i].ProductID = existing.ID
		}
		if len(variants) > 0 {
			if err := tx.Create(&variants).Error; err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	var updated models.Product
	if err := h.db.Preload("Variants").First(&updated, "id = ?", existing.ID).Error; err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteProduct removes a product and its variants. Order snapshots are
// self-contained, so purchase history survives the delete.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
