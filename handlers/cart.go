package handlers

import (
	"errors"
	"log"
	"net/http"

	"resonance-backend/cart"
	"resonance-backend/middleware"
	"resonance-backend/models"
	"resonance-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

// resolveCart obtains the cart for the request's session key, creating it
// on first access. The session middleware guarantees a key is present.
func (h *CartHandler) resolveCart(c *gin.Context) (*models.Cart, bool) {
	sessionKey := c.GetString(middleware.SessionKeyContext)
	if sessionKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not established"})
		return nil, false
	}

	current, _, err := cart.Resolve(h.DB, sessionKey)
	if err != nil {
		log.Printf("Failed to resolve cart for session %s: %v", sessionKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve cart"})
		return nil, false
	}
	return current, true
}

// respondWithCart loads the full cart state and writes the snapshot every
// cart endpoint returns.
func (h *CartHandler) respondWithCart(c *gin.Context, current *models.Cart) {
	if err := cart.Load(h.DB, current); err != nil {
		log.Printf("Failed to load cart %s: %v", current.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, buildCartResponse(c, current))
}

func (h *CartHandler) GetCart(c *gin.Context) {
	current, ok := h.resolveCart(c)
	if !ok {
		return
	}
	h.respondWithCart(c, current)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req struct {
		Slug     string `json:"slug" binding:"required"`
		Quantity *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	var instrument models.Instrument
	if err := h.DB.Where("slug = ?", req.Slug).First(&instrument).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found"})
			return
		}
		log.Printf("Failed to look up instrument %s: %v", req.Slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instrument"})
		return
	}

	current, ok := h.resolveCart(c)
	if !ok {
		return
	}

	if _, err := cart.AddItem(h.DB, current, &instrument, quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0"})
			return
		}
		log.Printf("Failed to add %s to cart %s: %v", instrument.Slug, current.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	h.respondWithCart(c, current)
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	current, ok := h.resolveCart(c)
	if !ok {
		return
	}

	if err := cart.SetItemQuantity(h.DB, current, itemID, *req.Quantity); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		log.Printf("Failed to update item %s in cart %s: %v", itemID, current.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	h.respondWithCart(c, current)
}

func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	current, ok := h.resolveCart(c)
	if !ok {
		return
	}

	if err := cart.RemoveItem(h.DB, current, itemID); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		log.Printf("Failed to remove item %s from cart %s: %v", itemID, current.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	h.respondWithCart(c, current)
}
