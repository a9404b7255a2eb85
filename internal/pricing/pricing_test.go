package pricing

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabhon/smoif-shop/internal/models"
)

type fakeSource struct {
	variants map[uuid.UUID]*models.ProductVariant
	products map[uuid.UUID]*models.Product
}

func (s *fakeSource) VariantByID(id uuid.UUID) (*models.ProductVariant, *models.Product, error) {
	variant, ok := s.variants[id]
	if !ok {
		return nil, nil, ErrVariantNotFound
	}
	return variant, s.products[variant.ProductID], nil
}

func newFakeSource() (*fakeSource, *models.Product, *models.ProductVariant) {
	product := &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Classic T-Shirt",
		BasePrice: decimal.NewFromInt(299),
	}
	variant := &models.ProductVariant{
		BaseModel:     models.BaseModel{ID: uuid.New()},
		ProductID:     product.ID,
		Price:         decimal.NewFromInt(299),
		StockQuantity: 50,
		Combination:   models.Combination{"color": "Red", "size": "M"},
	}

	src := &fakeSource{
		variants: map[uuid.UUID]*models.ProductVariant{variant.ID: variant},
		products: map[uuid.UUID]*models.Product{product.ID: product},
	}
	return src, product, variant
}

func TestPriceOrderSingleLine(t *testing.T) {
	src, product, variant := newFakeSource()

	result, err := PriceOrder(src, []Line{
		{ProductID: product.ID, VariantID: variant.ID, Quantity: 2},
	}, nil)
	require.NoError(t, err)

	assert.True(t, result.Total.Equal(decimal.NewFromInt(598)), "got total %s", result.Total)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, variant.ID, item.VariantID)
	assert.Equal(t, "Classic T-Shirt", item.ProductName)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(299)))
	assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(598)))
	assert.True(t, item.Options.Equal(models.Combination{"color": "Red", "size": "M"}))
	assert.Empty(t, result.Skipped)
}

func TestPriceOrderSumsMultipleLines(t *testing.T) {
	src, product, variant := newFakeSource()

	second := &models.ProductVariant{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		ProductID:   product.ID,
		Price:       decimal.NewFromInt(319),
		Combination: models.Combination{"color": "Blue", "size": "L"},
	}
	src.variants[second.ID] = second

	result, err := PriceOrder(src, []Line{
		{ProductID: product.ID, VariantID: variant.ID, Quantity: 2},
		{ProductID: product.ID, VariantID: second.ID, Quantity: 1},
	}, nil)
	require.NoError(t, err)

	assert.True(t, result.Total.Equal(decimal.NewFromInt(917)), "got total %s", result.Total)
	assert.Len(t, result.Items, 2)
}

func TestPriceOrderSkipsUnresolvedLines(t *testing.T) {
	src, product, variant := newFakeSource()
	stale := Line{ProductID: product.ID, VariantID: uuid.New(), Quantity: 3}

	result, err := PriceOrder(src, []Line{
		stale,
		{ProductID: product.ID, VariantID: variant.ID, Quantity: 1},
	}, nil)
	require.NoError(t, err)

	// The stale line contributes nothing and is absent from the snapshot.
	assert.True(t, result.Total.Equal(decimal.NewFromInt(299)))
	require.Len(t, result.Items, 1)
	assert.Equal(t, variant.ID, result.Items[0].VariantID)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, stale.VariantID, result.Skipped[0].VariantID)
}

func TestPriceOrderRejectsNonPositiveQuantity(t *testing.T) {
	src, product, variant := newFakeSource()

	for _, quantity := range []int{0, -1} {
		_, err := PriceOrder(src, []Line{
			{ProductID: product.ID, VariantID: variant.ID, Quantity: quantity},
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", quantity)
	}
}

func TestPriceOrderStockCheckerAborts(t *testing.T) {
	src, product, variant := newFakeSource()
	wantErr := errors.New("out of stock")

	check := func(v *models.ProductVariant, quantity int) error {
		if quantity > v.StockQuantity {
			return wantErr
		}
		return nil
	}

	_, err := PriceOrder(src, []Line{
		{ProductID: product.ID, VariantID: variant.ID, Quantity: 51},
	}, check)
	assert.ErrorIs(t, err, wantErr)

	result, err := PriceOrder(src, []Line{
		{ProductID: product.ID, VariantID: variant.ID, Quantity: 50},
	}, check)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}

func TestPriceOrderSnapshotIsIndependent(t *testing.T) {
	src, product, variant := newFakeSource()

	result, err := PriceOrder(src, []Line{
		{ProductID: product.ID, VariantID: variant.ID, Quantity: 1},
	}, nil)
	require.NoError(t, err)

	// Later edits to the stored rows must not leak into the snapshot.
	variant.Combination["color"] = "Green"
	variant.Price = decimal.NewFromInt(999)
	product.Name = "Renamed"

	item := result.Items[0]
	assert.Equal(t, "Red", item.Options["color"])
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(299)))
	assert.Equal(t, "Classic T-Shirt", item.ProductName)
}

func TestPriceOrderPropagatesSourceErrors(t *testing.T) {
	broken := &errSource{err: errors.New("connection refused")}
	_, err := PriceOrder(broken, []Line{
		{ProductID: uuid.New(), VariantID: uuid.New(), Quantity: 1},
	}, nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrVariantNotFound)
}

type errSource struct {
	err error
}

func (s *errSource) VariantByID(uuid.UUID) (*models.ProductVariant, *models.Product, error) {
	return nil, nil, s.err
}
