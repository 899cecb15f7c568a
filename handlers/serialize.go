package handlers

import (
	"resonance-backend/dtos"
	"resonance-backend/models"
	"resonance-backend/utils"

	"github.com/gin-gonic/gin"
)

func buildCategoryResponse(cat models.Category) dtos.CategoryResponse {
	return dtos.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
	}
}

func buildInstrumentResponse(c *gin.Context, inst models.Instrument) dtos.InstrumentResponse {
	return dtos.InstrumentResponse{
		ID:             inst.ID,
		Name:           inst.Name,
		Slug:           inst.Slug,
		Category:       buildCategoryResponse(inst.Category),
		Brand:          inst.Brand,
		Condition:      inst.Condition,
		Price:          inst.Price,
		Rating:         inst.Rating,
		Description:    inst.Description,
		Specifications: inst.Specifications,
		Image:          utils.ResolveImageURL(c, inst.Image),
		InStock:        inst.InStock,
		Featured:       inst.Featured,
		CreatedAt:      inst.CreatedAt,
		UpdatedAt:      inst.UpdatedAt,
	}
}

func buildInstrumentResponses(c *gin.Context, instruments []models.Instrument) []dtos.InstrumentResponse {
	responses := make([]dtos.InstrumentResponse, 0, len(instruments))
	for _, inst := range instruments {
		responses = append(responses, buildInstrumentResponse(c, inst))
	}
	return responses
}

// buildCartResponse assembles the cart snapshot returned by every cart
// endpoint. The cart's items and their instruments must be preloaded.
func buildCartResponse(c *gin.Context, cart *models.Cart) dtos.CartResponse {
	items := make([]dtos.CartItemResponse, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		items = append(items, dtos.CartItemResponse{
			ID:         item.ID,
			Instrument: buildInstrumentResponse(c, item.Instrument),
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal(),
			AddedAt:    item.AddedAt,
		})
	}

	return dtos.CartResponse{
		ID:         cart.ID,
		SessionKey: cart.SessionKey,
		Items:      items,
		ItemCount:  cart.ItemCount(),
		Total:      cart.Total(),
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}
