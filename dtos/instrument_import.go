package dtos

import "github.com/shopspring/decimal"

// InstrumentImportRequest is the payload for the bulk catalog import.
type InstrumentImportRequest struct {
	Instruments   []InstrumentImportItem `json:"instruments" binding:"required,min=1,max=5000"`
	DeleteMissing bool                   `json:"delete_missing"` // If true, delete instruments not in the import (default false)
}

// InstrumentImportItem is a single instrument row in the import. Rows are
// matched to existing instruments by slug; a row without a slug gets one
// generated from its brand and name.
type InstrumentImportItem struct {
	Slug           string           `json:"slug"`
	Name           string           `json:"name" binding:"required"`
	Category       string           `json:"category" binding:"required"` // category slug
	Brand          string           `json:"brand"`
	Condition      string           `json:"condition"`
	Price          decimal.Decimal  `json:"price"`
	Rating         *decimal.Decimal `json:"rating"`
	Description    string           `json:"description"`
	Specifications string           `json:"specifications"`
	Image          string           `json:"image"`
	InStock        *bool            `json:"in_stock"`
	Featured       bool             `json:"featured"`
	Delete         bool             `json:"delete"`
}
