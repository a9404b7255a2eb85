package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusWaitingForPayment OrderStatus = "WAITING_FOR_PAYMENT"
	StatusVerifyingSlip     OrderStatus = "VERIFYING_SLIP"
	StatusPaid              OrderStatus = "PAID"
	// StatusCancelled is reserved in the vocabulary; no transition reaches it.
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order is a guest purchase. TotalAmount and Items are frozen at creation and
// never altered by lifecycle transitions.
type Order struct {
	BaseModel
	GuestName    string          `json:"guestName"`
	GuestSurname string          `json:"guestSurname"`
	GuestEmail   string          `json:"guestEmail"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2)" json:"totalAmount"`
	Status       OrderStatus     `gorm:"type:varchar(32);index" json:"status"`
	SlipImageURL string          `json:"slipImageUrl"`
	PaidAt       *time.Time      `json:"paidAt"`
	Items        []OrderItem     `json:"items,omitempty"`
}

// OrderItem is a purchased-line snapshot, resolved from stored variant data at
// checkout time. It is never recomputed from later Product or Variant rows.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID       `gorm:"type:uuid;index" json:"orderId"`
	ProductID   uuid.UUID       `gorm:"type:uuid" json:"productId"`
	VariantID   uuid.UUID       `gorm:"type:uuid" json:"variantId"`
	ProductName string          `json:"name"`
	Options     Combination     `gorm:"type:jsonb" json:"options"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"unitPrice"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2)" json:"lineTotal"`
}

// AttachSlip records an uploaded payment proof and moves the order to
// VERIFYING_SLIP. Re-uploading while a slip awaits verification replaces the
// previous reference.
func (o *Order) AttachSlip(url string) error {
	switch o.Status {
	case StatusWaitingForPayment, StatusVerifyingSlip:
		o.SlipImageURL = url
		o.Status = StatusVerifyingSlip
		return nil
	default:
		return fmt.Errorf("cannot attach slip to order in status %s", o.Status)
	}
}

// Verify marks the order paid. Verifying an already-paid order is accepted
// without touching state, so the caller may resend the confirmation message.
func (o *Order) Verify(now time.Time) error {
	switch o.Status {
	case StatusVerifyingSlip:
		o.Status = StatusPaid
		o.PaidAt = &now
		return nil
	case StatusPaid:
		return nil
	default:
		return fmt.Errorf("cannot verify order in status %s", o.Status)
	}
}

// Reject sends an order under verification back to WAITING_FOR_PAYMENT. The
// slip reference is retained.
func (o *Order) Reject() error {
	if o.Status != StatusVerifyingSlip {
		return fmt.Errorf("cannot reject order in status %s", o.Status)
	}
	o.Status = StatusWaitingForPayment
	return nil
}
