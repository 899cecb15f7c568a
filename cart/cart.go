// Package cart implements the session-backed cart core: resolving a cart
// from a session key and mutating its line items. Every operation takes the
// database handle and an already-resolved cart explicitly; nothing here
// reads ambient request state.
package cart

import (
	"errors"
	"time"

	"resonance-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvalidQuantity is returned when an add is attempted with a
	// quantity of zero or less.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrItemNotFound is returned when an item id does not reference a
	// row in the given cart.
	ErrItemNotFound = errors.New("cart item not found")
)

// Resolve returns the cart bound to sessionKey, creating an empty one on
// first access. The unique index on session_key backstops concurrent first
// requests: if the insert loses the race, the winner's row is fetched
// instead of failing. The second return value reports whether a new cart
// was created by this call.
func Resolve(db *gorm.DB, sessionKey string) (*models.Cart, bool, error) {
	var cart models.Cart
	err := db.Where("session_key = ?", sessionKey).First(&cart).Error
	if err == nil {
		return &cart, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cart = models.Cart{ID: uuid.New(), SessionKey: sessionKey}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoNothing: true,
	}).Create(&cart)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the creation race to a concurrent first request.
		if err := db.Where("session_key = ?", sessionKey).First(&cart).Error; err != nil {
			return nil, false, err
		}
		return &cart, false, nil
	}
	return &cart, true, nil
}

// Load preloads the cart's items, their instruments, and those instruments'
// categories, in insertion order.
func Load(db *gorm.DB, cart *models.Cart) error {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("cart_items.added_at") }).
		Preload("Items.Instrument").
		Preload("Items.Instrument.Category").
		First(cart, "id = ?", cart.ID).Error
}

// AddItem adds quantity units of instrument to cart. Repeated adds for the
// same instrument merge into the existing row by incrementing its quantity;
// the upsert makes two concurrent first adds collapse into one row with the
// summed quantity rather than erroring on the unique index.
func AddItem(db *gorm.DB, cart *models.Cart, instrument *models.Instrument, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item := models.CartItem{
		ID:           uuid.New(),
		CartID:       cart.ID,
		InstrumentID: instrument.ID,
		Quantity:     quantity,
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "instrument_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	// Re-read into a fresh struct: after a conflict, item still holds the
	// losing insert's id, which GORM would otherwise fold into the query.
	var merged models.CartItem
	if err := db.Preload("Instrument").
		Where("cart_id = ? AND instrument_id = ?", cart.ID, instrument.ID).
		First(&merged).Error; err != nil {
		return nil, err
	}
	if err := touch(db, cart); err != nil {
		return nil, err
	}
	return &merged, nil
}

// SetItemQuantity overwrites the quantity of an item in cart. A quantity of
// zero or less removes the item; that is a convenience, not an error.
func SetItemQuantity(db *gorm.DB, cart *models.Cart, itemID uuid.UUID, quantity int) error {
	var item models.CartItem
	if err := db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if quantity <= 0 {
		if err := db.Delete(&item).Error; err != nil {
			return err
		}
	} else {
		if err := db.Model(&item).Update("quantity", quantity).Error; err != nil {
			return err
		}
	}
	return touch(db, cart)
}

// RemoveItem deletes an item from cart unconditionally.
func RemoveItem(db *gorm.DB, cart *models.Cart, itemID uuid.UUID) error {
	var item models.CartItem
	if err := db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	if err := db.Delete(&item).Error; err != nil {
		return err
	}
	return touch(db, cart)
}

// touch bumps the cart's updated_at whenever an owned item changes.
func touch(db *gorm.DB, cart *models.Cart) error {
	return db.Model(cart).UpdateColumn("updated_at", time.Now()).Error
}
