package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() *Order {
	return &Order{
		GuestName:   "Alice",
		GuestEmail:  "alice@example.com",
		TotalAmount: decimal.NewFromInt(598),
		Status:      StatusWaitingForPayment,
	}
}

func TestOrderLifecycle(t *testing.T) {
	order := newTestOrder()
	now := time.Now()

	require.NoError(t, order.AttachSlip("/public/uploads/slips/a.png"))
	assert.Equal(t, StatusVerifyingSlip, order.Status)
	assert.Equal(t, "/public/uploads/slips/a.png", order.SlipImageURL)

	require.NoError(t, order.Verify(now))
	assert.Equal(t, StatusPaid, order.Status)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, now, *order.PaidAt)
}

func TestOrderRejectReturnsToWaiting(t *testing.T) {
	order := newTestOrder()
	require.NoError(t, order.AttachSlip("/public/uploads/slips/a.png"))

	require.NoError(t, order.Reject())
	assert.Equal(t, StatusWaitingForPayment, order.Status)
	// Slip reference is retained, not cleared.
	assert.Equal(t, "/public/uploads/slips/a.png", order.SlipImageURL)
}

func TestOrderReuploadReplacesSlip(t *testing.T) {
	order := newTestOrder()
	require.NoError(t, order.AttachSlip("/public/uploads/slips/a.png"))
	require.NoError(t, order.AttachSlip("/public/uploads/slips/b.png"))

	assert.Equal(t, StatusVerifyingSlip, order.Status)
	assert.Equal(t, "/public/uploads/slips/b.png", order.SlipImageURL)
}

func TestOrderInvalidTransitions(t *testing.T) {
	t.Run("verify before slip upload", func(t *testing.T) {
		order := newTestOrder()
		assert.Error(t, order.Verify(time.Now()))
	})

	t.Run("reject before slip upload", func(t *testing.T) {
		order := newTestOrder()
		assert.Error(t, order.Reject())
	})

	t.Run("paid is terminal for slip upload", func(t *testing.T) {
		order := newTestOrder()
		require.NoError(t, order.AttachSlip("/public/uploads/slips/a.png"))
		require.NoError(t, order.Verify(time.Now()))
		assert.Error(t, order.AttachSlip("/public/uploads/slips/b.png"))
	})

	t.Run("paid is terminal for reject", func(t *testing.T) {
		order := newTestOrder()
		require.NoError(t, order.AttachSlip("/public/uploads/slips/a.png"))
		require.NoError(t, order.Verify(time.Now()))
		assert.Error(t, order.Reject())
	})
}

func TestOrderVerifyAlreadyPaidIsAccepted(t *testing.T) {
	order := newTestOrder()
	require.NoError(t, order.AttachSlip("/public/uploads/slips/a.png"))

	first := time.Now()
	require.NoError(t, order.Verify(first))

	// A second verify resends the confirmation; state and paidAt stay put.
	require.NoError(t, order.Verify(first.Add(time.Hour)))
	assert.Equal(t, StatusPaid, order.Status)
	assert.Equal(t, first, *order.PaidAt)
}

func TestOrderTransitionsNeverTouchTotals(t *testing.T) {
	order := newTestOrder()
	total := order.TotalAmount

	require.NoError(t, order.AttachSlip("/public/uploads/slips/a.png"))
	require.NoError(t, order.Reject())
	require.NoError(t, order.AttachSlip("/public/uploads/slips/b.png"))
	require.NoError(t, order.Verify(time.Now()))

	assert.True(t, order.TotalAmount.Equal(total))
}
