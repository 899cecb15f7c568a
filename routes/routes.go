package routes

import (
	"time"

	"resonance-backend/handlers"
	"resonance-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	categoryHandler := &handlers.CategoryHandler{DB: db}
	instrumentHandler := &handlers.InstrumentHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}

	importLimiter := middleware.NewRateLimiter(5, time.Minute)

	api := r.Group("/api")
	api.Use(middleware.Session())
	{
		// Catalog routes
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:slug/instruments", categoryHandler.GetCategoryInstruments)

		api.GET("/instruments", instrumentHandler.GetInstruments)
		api.GET("/instruments/:slug", instrumentHandler.GetInstrument)
		api.GET("/featured", instrumentHandler.GetFeatured)
		api.GET("/brands", instrumentHandler.GetBrands)

		// Cart routes (session-scoped)
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart/add", cartHandler.AddToCart)
		api.POST("/cart/items/:id", cartHandler.UpdateCartItem)
		api.POST("/cart/items/:id/remove", cartHandler.RemoveCartItem)

		// Bulk catalog loading
		api.POST("/instruments/batch", importLimiter.Middleware(), instrumentHandler.BatchImportInstruments)
		api.GET("/batch-jobs/:id", instrumentHandler.GetBatchJobStatus)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
