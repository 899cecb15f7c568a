package handlers

import (
	"errors"
	"log"
	"net/http"

	"resonance-backend/catalog"
	"resonance-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.DB.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	results := make([]interface{}, 0, len(categories))
	for _, cat := range categories {
		results = append(results, buildCategoryResponse(cat))
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetCategoryInstruments serves the category page listing: in-stock
// instruments of one category narrowed by the shared filter pipeline
// (condition, deals, brands).
func (h *CategoryHandler) GetCategoryInstruments(c *gin.Context) {
	slug := c.Param("slug")

	var category models.Category
	if err := h.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Printf("Failed to look up category %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	query := h.DB.Preload("Category").
		Where("category_id = ? AND in_stock = ?", category.ID, true)
	query = catalog.ApplyFilters(query, catalog.ParseFilterOptions(c))

	var instruments []models.Instrument
	if err := query.Order("created_at DESC").Find(&instruments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instruments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": buildCategoryResponse(category),
		"results":  buildInstrumentResponses(c, instruments),
	})
}
