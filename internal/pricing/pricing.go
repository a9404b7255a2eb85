// Package pricing computes authoritative order totals and purchase snapshots
// from stored variant data. Prices submitted by clients are never trusted.
package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nabhon/smoif-shop/internal/models"
)

var (
	// ErrVariantNotFound is returned by a VariantSource when the requested
	// variant does not exist. PriceOrder skips such lines.
	ErrVariantNotFound = errors.New("variant not found")

	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// Line is one requested cart line, as submitted at checkout.
type Line struct {
	ProductID uuid.UUID `json:"productId"`
	VariantID uuid.UUID `json:"variantId"`
	Quantity  int       `json:"amount"`
}

// VariantSource resolves variant IDs against storage.
type VariantSource interface {
	VariantByID(id uuid.UUID) (*models.ProductVariant, *models.Product, error)
}

// StockChecker is consulted once per included line before pricing it. Stock is
// informational today, so the default (nil) checker accepts everything; a
// future reservation layer can plug in here without changing PriceOrder.
type StockChecker func(variant *models.ProductVariant, quantity int) error

// Result is the outcome of pricing a checkout request.
type Result struct {
	Total   decimal.Decimal
	Items   []models.OrderItem
	Skipped []Line
}

// PriceOrder resolves each line fresh from src and prices it from the stored
// variant. Lines whose variant cannot be resolved are dropped and reported in
// Result.Skipped; a stale cart reference does not abort the whole checkout.
// Non-positive quantities are rejected outright.
func PriceOrder(src VariantSource, lines []Line, check StockChecker) (Result, error) {
	result := Result{Total: decimal.Zero}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return Result{}, fmt.Errorf("%w, got %d", ErrInvalidQuantity, line.Quantity)
		}

		variant, product, err := src.VariantByID(line.VariantID)
		if errors.Is(err, ErrVariantNotFound) {
			result.Skipped = append(result.Skipped, line)
			continue
		}
		if err != nil {
			return Result{}, err
		}

		if check != nil {
			if err := check(variant, line.Quantity); err != nil {
				return Result{}, err
			}
		}

		lineTotal := variant.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		result.Items = append(result.Items, models.OrderItem{
			ProductID:   product.ID,
			VariantID:   variant.ID,
			ProductName: product.Name,
			Options:     variant.Combination.Clone(),
			Quantity:    line.Quantity,
			UnitPrice:   variant.Price,
			LineTotal:   lineTotal,
		})
		result.Total = result.Total.Add(lineTotal)
	}

	return result, nil
}
