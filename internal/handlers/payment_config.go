package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nabhon/smoif-shop/internal/models"
)

// PaymentConfigHandler manages the singleton bank-transfer configuration.
type PaymentConfigHandler struct {
	db *gorm.DB
}

// NewPaymentConfigHandler constructs PaymentConfigHandler.
func NewPaymentConfigHandler(db *gorm.DB) *PaymentConfigHandler {
	return &PaymentConfigHandler{db: db}
}

// GetPaymentConfig returns the active configuration, or an empty object when
// none has been created yet (a valid first-run state).
func (h *PaymentConfigHandler) GetPaymentConfig(c *fiber.Ctx) error {
	var cfg models.PaymentConfig
	if err := h.db.Where("is_active = ?", true).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{})
		}
		return err
	}

	return c.JSON(cfg)
}

type paymentConfigRequest struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	QRImageURL    string `json:"qrImageUrl"`
	IsActive      *bool  `json:"isActive"`
}

// UpdatePaymentConfig upserts the single configuration row. The transaction
// deactivates every other row, so at most one config is ever active.
func (h *PaymentConfigHandler) UpdatePaymentConfig(c *fiber.Ctx) error {
	var req paymentConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var saved models.PaymentConfig
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&saved).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		saved.BankName = req.BankName
		saved.AccountName = req.AccountName
		saved.AccountNumber = req.AccountNumber
		saved.QRImageURL = req.QRImageURL
		saved.IsActive = isActive

		if err := tx.Save(&saved).Error; err != nil {
			return err
		}

		if saved.IsActive {
			return tx.Model(&models.PaymentConfig{}).
				Where("id <> ?", saved.ID).
				Update("is_active", false).Error
		}
		return nil
	}); err != nil {
		return err
	}

	return c.JSON(saved)
}
