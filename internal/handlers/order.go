package handlers

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabhon/smoif-shop/internal/config"
	"github.com/nabhon/smoif-shop/internal/models"
	"github.com/nabhon/smoif-shop/internal/pricing"
	"github.com/nabhon/smoif-shop/internal/services"
	"github.com/nabhon/smoif-shop/internal/utils"
)

// OrderHandler manages guest checkout and admin order verification.
type OrderHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *services.MailerService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, cfg *config.Config, mailer *services.MailerService) *OrderHandler {
	return &OrderHandler{db: db, cfg: cfg, mailer: mailer}
}

// gormVariantSource resolves variants against the database for pricing, so
// checkout totals come from stored prices, never from the client.
type gormVariantSource struct {
	db *gorm.DB
}

func (s gormVariantSource) VariantByID(id uuid.UUID) (*models.ProductVariant, *models.Product, error) {
	var variant models.ProductVariant
	if err := s.db.First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pricing.ErrVariantNotFound
		}
		return nil, nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", variant.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pricing.ErrVariantNotFound
		}
		return nil, nil, err
	}

	return &variant, &product, nil
}

type createOrderRequest struct {
	GuestName    string         `json:"guestName"`
	GuestSurname string         `json:"guestSurname"`
	GuestEmail   string         `json:"guestEmail"`
	CartItems    []pricing.Line `json:"cartItems"`
}

// CreateOrder prices the submitted cart from storage and creates the order in
// WAITING_FOR_PAYMENT with a frozen item snapshot.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.GuestName == "" || req.GuestEmail == "" {
		return fiber.NewError(fiber.StatusBadRequest, "guest name and email are required")
	}
	if len(req.CartItems) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	}

	result, err := pricing.PriceOrder(gormVariantSource{db: h.db}, req.CartItems, nil)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidQuantity) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	for _, skipped := range result.Skipped {
		log.Printf("[Order] skipping unresolved cart line: variant %s", skipped.VariantID)
	}

	order := models.Order{
		GuestName:    req.GuestName,
		GuestSurname: req.GuestSurname,
		GuestEmail:   req.GuestEmail,
		TotalAmount:  result.Total,
		Status:       models.StatusWaitingForPayment,
		Items:        result.Items,
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

var slipExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadSlip stores an uploaded payment proof and moves the order to
// VERIFYING_SLIP. Re-uploading replaces the previous slip reference.
func (h *OrderHandler) UploadSlip(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	file, err := c.FormFile("slip")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no file uploaded")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slipExtensions[ext] {
		return fiber.NewError(fiber.StatusBadRequest, "slip must be an image")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	filename := uuid.New().String() + ext
	dir := filepath.Join(h.cfg.UploadDir, "slips")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return err
	}

	if err := order.AttachSlip("/public/uploads/slips/" + filename); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.Model(&order).Updates(map[string]interface{}{
		"status":         order.Status,
		"slip_image_url": order.SlipImageURL,
	}).Error; err != nil {
		return err
	}

	return c.JSON(order)
}

// ListOrders returns orders for the admin dashboard, newest first, optionally
// filtered by status.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(orders)
}

// VerifyOrder marks an order paid and emails the guest. Verifying an
// already-paid order resends the confirmation without touching state.
func (h *OrderHandler) VerifyOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if err := order.Verify(time.Now()); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.Model(&order).Updates(map[string]interface{}{
		"status":  order.Status,
		"paid_at": order.PaidAt,
	}).Error; err != nil {
		return err
	}

	// Email failures must never fail the verification itself.
	items := make([]services.OrderItemConfirmation, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, services.OrderItemConfirmation{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	if err := h.mailer.NotifyOrderConfirmed(services.OrderConfirmation{
		OrderID:     order.ID.String(),
		GuestName:   order.GuestName,
		GuestEmail:  order.GuestEmail,
		TotalAmount: order.TotalAmount,
		Items:       items,
	}); err != nil {
		log.Printf("[Order] confirmation mail for order %s failed: %v", order.ID, err)
	}

	return c.JSON(order)
}

// RejectOrder sends an order under verification back to WAITING_FOR_PAYMENT.
// The slip reference is kept for audit.
func (h *OrderHandler) RejectOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if err := order.Reject(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.Model(&order).Update("status", order.Status).Error; err != nil {
		return err
	}

	return c.JSON(order)
}
