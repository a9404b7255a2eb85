package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Combination maps option names to chosen values, e.g. {"color": "Red", "size": "M"}.
// It is stored as a jsonb column.
type Combination map[string]string

// Value implements driver.Valuer.
func (c Combination) Value() (driver.Value, error) {
	if c == nil {
		c = Combination{}
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *Combination) Scan(value interface{}) error {
	if value == nil {
		*c = Combination{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported combination column type %T", value)
	}
}

// Equal reports whether both combinations have the same key set and values.
func (c Combination) Equal(other Combination) bool {
	if len(c) != len(other) {
		return false
	}
	for key, value := range c {
		if otherValue, ok := other[key]; !ok || otherValue != value {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (c Combination) Clone() Combination {
	clone := make(Combination, len(c))
	for key, value := range c {
		clone[key] = value
	}
	return clone
}

type Product struct {
	BaseModel
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
	BasePrice   decimal.Decimal  `gorm:"type:numeric(12,2)" json:"basePrice"`
	IsActive    bool             `gorm:"default:true" json:"isActive"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

type ProductVariant struct {
	BaseModel
	ProductID     uuid.UUID       `gorm:"type:uuid;index" json:"productId"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Combination   Combination     `gorm:"type:jsonb" json:"combination"`
}

// FindVariant resolves a selection against a product's variants. A variant
// matches only when its combination has exactly the selection's key set and
// values, so a partial selection resolves nothing. With duplicate
// combinations (rejected on write, but tolerated here) the first match in
// storage order wins. A nil result is a valid state, not an error.
func FindVariant(variants []ProductVariant, selection Combination) *ProductVariant {
	for i := range variants {
		if variants[i].Combination.Equal(selection) {
			return &variants[i]
		}
	}
	return nil
}

var ErrDuplicateCombination = errors.New("duplicate variant combination")

// ValidateVariants enforces write-time invariants on a product's variant set:
// unique combinations and non-negative stock.
func ValidateVariants(variants []ProductVariant) error {
	for i := range variants {
		if variants[i].StockQuantity < 0 {
			return fmt.Errorf("variant %d: stock quantity must not be negative", i)
		}
		for j := i + 1; j < len(variants); j++ {
			if variants[i].Combination.Equal(variants[j].Combination) {
				return fmt.Errorf("%w: variants %d and %d", ErrDuplicateCombination, i, j)
			}
		}
	}
	return nil
}
