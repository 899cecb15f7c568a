package dtos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response shapes for the JSON API. Handlers assemble these from the GORM
// models so the wire format stays stable independent of schema details.

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
}

type InstrumentResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Category       CategoryResponse `json:"category"`
	Brand          string           `json:"brand"`
	Condition      string           `json:"condition"`
	Price          decimal.Decimal  `json:"price"`
	Rating         decimal.Decimal  `json:"rating"`
	Description    string           `json:"description"`
	Specifications string           `json:"specifications"`
	Image          string           `json:"image"` // absolute URL, or "" when unresolvable
	InStock        bool             `json:"in_stock"`
	Featured       bool             `json:"featured"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// InstrumentDetailResponse embeds the instrument representation and adds a
// short list of in-stock instruments from the same category.
type InstrumentDetailResponse struct {
	InstrumentResponse
	Related []InstrumentResponse `json:"related"`
}

type CartItemResponse struct {
	ID         uuid.UUID          `json:"id"`
	Instrument InstrumentResponse `json:"instrument"`
	Quantity   int                `json:"quantity"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	AddedAt    time.Time          `json:"added_at"`
}

type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	SessionKey string             `json:"session_key"`
	Items      []CartItemResponse `json:"items"`
	ItemCount  int                `json:"item_count"`
	Total      decimal.Decimal    `json:"total"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
