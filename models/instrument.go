package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Condition grades an instrument's wear. Filters treat everything that is
// not ConditionNew as "used".
const (
	ConditionNew           = "new"
	ConditionUsedExcellent = "used_excellent"
	ConditionUsedGood      = "used_good"
	ConditionUsedFair      = "used_fair"
)

type Instrument struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string          `gorm:"not null" json:"name"`
	Slug           string          `gorm:"uniqueIndex;not null" json:"slug"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null" json:"category_id"`
	Category       Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand          string          `gorm:"index" json:"brand"`
	Condition      string          `gorm:"default:'new'" json:"condition"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Rating         decimal.Decimal `gorm:"type:decimal(2,1);default:5.0" json:"rating"`
	Description    string          `json:"description"`
	Specifications string          `json:"specifications"`
	Image          string          `json:"image"` // static/media path or absolute URL
	// No gorm default on the booleans: a default tag makes GORM omit
	// explicit false values on insert.
	InStock bool `json:"in_stock"`
	// Marks the instrument for the homepage highlight list; category pages
	// read the same flag as their "deal" toggle.
	Featured bool `json:"featured"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Instrument) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
