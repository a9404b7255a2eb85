package cart

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabhon/smoif-shop/internal/models"
)

func shirtItem(amount int) Item {
	return Item{
		ProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		VariantID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:      "Classic T-Shirt",
		Options:   models.Combination{"color": "Red", "size": "M"},
		Price:     decimal.NewFromInt(299),
		Amount:    amount,
		MaxStock:  5,
	}
}

func TestCartAddMergesAndClamps(t *testing.T) {
	c := New()
	c.Add(shirtItem(2))
	c.Add(shirtItem(2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Amount)

	// Clamped to known stock.
	c.Add(shirtItem(10))
	assert.Equal(t, 5, c.Items()[0].Amount)
}

func TestCartAddClampsNewLine(t *testing.T) {
	c := New()
	c.Add(shirtItem(99))
	assert.Equal(t, 5, c.Items()[0].Amount)
}

func TestCartUpdateQuantity(t *testing.T) {
	item := shirtItem(1)
	c := New()
	c.Add(item)

	c.UpdateQuantity(item.ProductID, item.VariantID, 3)
	assert.Equal(t, 3, c.Items()[0].Amount)

	c.UpdateQuantity(item.ProductID, item.VariantID, 100)
	assert.Equal(t, 5, c.Items()[0].Amount)

	// Zero or less removes the line.
	c.UpdateQuantity(item.ProductID, item.VariantID, 0)
	assert.Empty(t, c.Items())
}

func TestCartRemoveAndClear(t *testing.T) {
	item := shirtItem(1)
	other := shirtItem(1)
	other.VariantID = uuid.New()

	c := New()
	c.Add(item)
	c.Add(other)

	c.Remove(item.ProductID, item.VariantID)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, other.VariantID, c.Items()[0].VariantID)

	c.Clear()
	assert.Empty(t, c.Items())
}

func TestCartTotalAndCount(t *testing.T) {
	mug := Item{
		ProductID: uuid.New(),
		VariantID: uuid.New(),
		Name:      "Ceramic Mug",
		Price:     decimal.NewFromInt(120),
		Amount:    1,
		MaxStock:  100,
	}

	c := New()
	c.Add(shirtItem(2))
	c.Add(mug)

	assert.True(t, c.Total().Equal(decimal.NewFromInt(718)), "got total %s", c.Total())
	assert.Equal(t, 3, c.Count())
}

func TestCartFileStoreRoundTrip(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "cart.json")}

	c := New()
	c.Add(shirtItem(2))
	require.NoError(t, c.Save(store))

	restored := New()
	require.NoError(t, restored.Load(store))

	items := restored.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Classic T-Shirt", items[0].Name)
	assert.Equal(t, 2, items[0].Amount)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(299)))
	assert.True(t, items[0].Options.Equal(models.Combination{"color": "Red", "size": "M"}))
}

func TestCartLoadMissingFileYieldsEmptyCart(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "missing.json")}

	c := New()
	c.Add(shirtItem(1))
	require.NoError(t, c.Load(store))

	assert.Empty(t, c.Items())
}
