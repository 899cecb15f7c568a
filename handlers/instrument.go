package handlers

import (
	"errors"
	"log"
	"net/http"

	"resonance-backend/catalog"
	"resonance-backend/dtos"
	"resonance-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InstrumentHandler struct {
	DB *gorm.DB
}

func (h *InstrumentHandler) GetInstruments(c *gin.Context) {
	query := h.DB.Preload("Category")

	// Optional category narrowing, validated against the catalog
	if slug := c.Query("category"); slug != "" {
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
		query = query.Where("category_id = ?", category.ID)
	}

	query = catalog.ApplyFilters(query, catalog.ParseFilterOptions(c))
	query = catalog.ApplySearch(query, c.Query("search"))

	// Listings show in-stock instruments unless the caller asks otherwise
	switch c.Query("in_stock") {
	case "true":
		query = query.Where("in_stock = ?", true)
	case "false":
		query = query.Where("in_stock = ?", false)
	default:
		query = query.Where("in_stock = ?", true)
	}

	var instruments []models.Instrument
	if err := query.Order("created_at DESC").Find(&instruments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instruments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": buildInstrumentResponses(c, instruments)})
}

func (h *InstrumentHandler) GetInstrument(c *gin.Context) {
	slug := c.Param("slug")

	var instrument models.Instrument
	if err := h.DB.Preload("Category").Where("slug = ?", slug).First(&instrument).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found"})
			return
		}
		log.Printf("Failed to look up instrument %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instrument"})
		return
	}

	var related []models.Instrument
	if err := h.DB.Preload("Category").
		Where("category_id = ? AND in_stock = ? AND id <> ?", instrument.CategoryID, true, instrument.ID).
		Order("created_at DESC").
		Limit(4).
		Find(&related).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch related instruments"})
		return
	}

	c.JSON(http.StatusOK, dtos.InstrumentDetailResponse{
		InstrumentResponse: buildInstrumentResponse(c, instrument),
		Related:            buildInstrumentResponses(c, related),
	})
}

// GetFeatured returns the homepage highlight list: up to six featured
// in-stock instruments, optionally narrowed by brand.
func (h *InstrumentHandler) GetFeatured(c *gin.Context) {
	query := h.DB.Preload("Category").
		Where("featured = ? AND in_stock = ?", true, true)

	if brands := c.QueryArray("brand"); len(brands) > 0 {
		query = query.Where("brand IN ?", brands)
	}

	var instruments []models.Instrument
	if err := query.Order("created_at DESC").Limit(6).Find(&instruments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured instruments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": buildInstrumentResponses(c, instruments)})
}

// GetBrands returns the distinct brand list used by storefront filter
// controls.
func (h *InstrumentHandler) GetBrands(c *gin.Context) {
	brands, err := catalog.Brands(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": brands})
}
