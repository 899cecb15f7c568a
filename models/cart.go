package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is a server-side shopping cart keyed by an opaque session key.
// Carts and their items are hard-deleted: a soft-deleted item row would
// still occupy the (cart_id, instrument_id) unique slot and block the
// instrument from being added again.
type Cart struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionKey string     `gorm:"size:40;uniqueIndex;not null" json:"session_key"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Total sums price x quantity over the loaded items in exact decimal
// arithmetic. Items (and their instruments) must be preloaded.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// ItemCount returns the number of units across all items, not the number
// of distinct rows.
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// CartItem is one (instrument, quantity) line in a cart. The composite
// unique index guarantees at most one row per (cart, instrument) pair.
type CartItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CartID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_instrument" json:"cart_id"`
	InstrumentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_instrument" json:"instrument_id"`
	Instrument   Instrument `gorm:"foreignKey:InstrumentID;constraint:OnDelete:CASCADE" json:"instrument"`
	Quantity     int        `gorm:"default:1" json:"quantity"`
	AddedAt      time.Time  `gorm:"autoCreateTime" json:"added_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// Subtotal is the line total for this item. The instrument must be loaded.
func (ci *CartItem) Subtotal() decimal.Decimal {
	return ci.Instrument.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
