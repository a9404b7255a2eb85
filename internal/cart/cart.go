// Package cart models the client-held shopping cart: an aggregation of
// selected variants with quantities, persisted locally between sessions and
// independent of the server until checkout. It is never server-authoritative;
// the checkout endpoint reprices every line from storage.
package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nabhon/smoif-shop/internal/models"
)

// Item is one cart line. Price and MaxStock are the values known to the
// client at the time of selection; they are display hints only.
type Item struct {
	ProductID uuid.UUID          `json:"productId"`
	VariantID uuid.UUID          `json:"variantId"`
	Name      string             `json:"name"`
	Options   models.Combination `json:"options"`
	Price     decimal.Decimal    `json:"price"`
	Amount    int                `json:"amount"`
	MaxStock  int                `json:"maxStock"`
	ImageURL  string             `json:"imageUrl,omitempty"`
}

// Cart accumulates items. Quantities are clamped to each item's known stock.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add merges the item into the cart. Adding a variant already present
// increases its quantity, clamped to the line's known stock.
func (c *Cart) Add(item Item) {
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID && c.items[i].VariantID == item.VariantID {
			c.items[i].Amount = clamp(c.items[i].Amount+item.Amount, c.items[i].MaxStock)
			return
		}
	}
	item.Amount = clamp(item.Amount, item.MaxStock)
	c.items = append(c.items, item)
}

// UpdateQuantity sets the quantity for a line. A quantity of zero or less
// removes the line; anything above known stock is clamped.
func (c *Cart) UpdateQuantity(productID, variantID uuid.UUID, amount int) {
	if amount <= 0 {
		c.Remove(productID, variantID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID && c.items[i].VariantID == variantID {
			c.items[i].Amount = clamp(amount, c.items[i].MaxStock)
			return
		}
	}
}

// Remove drops a line from the cart.
func (c *Cart) Remove(productID, variantID uuid.UUID) {
	for i := range c.items {
		if c.items[i].ProductID == productID && c.items[i].VariantID == variantID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Total sums price times quantity over all lines, using client-known prices.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Amount))))
	}
	return total
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.items {
		count += item.Amount
	}
	return count
}

func clamp(amount, maxStock int) int {
	if amount > maxStock {
		return maxStock
	}
	return amount
}

// Store persists cart contents between UI sessions, the way the web client
// uses browser local storage.
type Store interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// Load replaces the cart contents from the store. A store with nothing saved
// yields an empty cart.
func (c *Cart) Load(s Store) error {
	items, err := s.Load()
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

// Save writes the cart contents to the store.
func (c *Cart) Save(s Store) error {
	return s.Save(c.Items())
}

// FileStore keeps the cart as a JSON file on disk.
type FileStore struct {
	Path string
}

func (s FileStore) Load() ([]Item, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s FileStore) Save(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}
