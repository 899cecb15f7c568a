package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"resonance-backend/middleware"
	"resonance-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	// Limit to 1 open connection to prevent SQLite concurrent access issues
	// with in-memory databases. This ensures all goroutines (including batch
	// import workers) share the same connection and see the same tables.
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	// Create tables using raw SQLite-compatible SQL instead of AutoMigrate,
	// because the GORM model tags use PostgreSQL-specific defaults like gen_random_uuid().
	if err := createSQLiteTables(testDB); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	code := m.Run()
	os.Exit(code)
}

// freshDB returns a clean database for each test by deleting all rows.
func freshDB() *gorm.DB {
	// Delete in correct order to respect foreign keys
	testDB.Exec("DELETE FROM cart_items")
	testDB.Exec("DELETE FROM carts")
	testDB.Exec("DELETE FROM instruments")
	testDB.Exec("DELETE FROM categories")
	return testDB
}

// createSQLiteTables creates all tables with SQLite-compatible DDL.
// This avoids GORM AutoMigrate which emits PostgreSQL-specific defaults like gen_random_uuid().
func createSQLiteTables(db *gorm.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS "categories" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL UNIQUE,
			"slug" TEXT NOT NULL UNIQUE,
			"description" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_deleted_at ON "categories"("deleted_at")`,

		`CREATE TABLE IF NOT EXISTS "instruments" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL,
			"slug" TEXT NOT NULL UNIQUE,
			"category_id" TEXT NOT NULL,
			"brand" TEXT,
			"condition" TEXT DEFAULT 'new',
			"price" NUMERIC NOT NULL,
			"rating" NUMERIC DEFAULT 5.0,
			"description" TEXT,
			"specifications" TEXT,
			"image" TEXT,
			"in_stock" INTEGER DEFAULT 1,
			"featured" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME,
			CONSTRAINT fk_instruments_category FOREIGN KEY ("category_id") REFERENCES "categories"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_instruments_deleted_at ON "instruments"("deleted_at")`,
		`CREATE INDEX IF NOT EXISTS idx_instruments_category_id ON "instruments"("category_id")`,
		`CREATE INDEX IF NOT EXISTS idx_instruments_brand ON "instruments"("brand")`,

		`CREATE TABLE IF NOT EXISTS "carts" (
			"id" TEXT PRIMARY KEY,
			"session_key" TEXT NOT NULL UNIQUE,
			"created_at" DATETIME,
			"updated_at" DATETIME
		)`,

		`CREATE TABLE IF NOT EXISTS "cart_items" (
			"id" TEXT PRIMARY KEY,
			"cart_id" TEXT NOT NULL,
			"instrument_id" TEXT NOT NULL,
			"quantity" INTEGER DEFAULT 1,
			"added_at" DATETIME,
			CONSTRAINT fk_cart_items_cart FOREIGN KEY ("cart_id") REFERENCES "carts"("id"),
			CONSTRAINT fk_cart_items_instrument FOREIGN KEY ("instrument_id") REFERENCES "instruments"("id")
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_instrument ON "cart_items"("cart_id","instrument_id")`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedCategory creates a test category.
func seedCategory(db *gorm.DB, name, slug string) models.Category {
	cat := models.Category{
		ID:   uuid.New(),
		Name: name,
		Slug: slug,
	}
	db.Create(&cat)
	return cat
}

// instrumentSpec describes an instrument to seed; zero values get sensible defaults.
type instrumentSpec struct {
	Name        string
	Slug        string
	Brand       string
	Condition   string
	Price       string
	Description string
	Image       string
	OutOfStock  bool
	Featured    bool
}

// seedInstrument creates a test instrument in the given category.
func seedInstrument(db *gorm.DB, categoryID uuid.UUID, spec instrumentSpec) models.Instrument {
	if spec.Condition == "" {
		spec.Condition = models.ConditionNew
	}
	if spec.Price == "" {
		spec.Price = "999.00"
	}
	inst := models.Instrument{
		ID:          uuid.New(),
		Name:        spec.Name,
		Slug:        spec.Slug,
		CategoryID:  categoryID,
		Brand:       spec.Brand,
		Condition:   spec.Condition,
		Price:       decimal.RequireFromString(spec.Price),
		Rating:      decimal.RequireFromString("4.5"),
		Description: spec.Description,
		Image:       spec.Image,
		InStock:     !spec.OutOfStock,
		Featured:    spec.Featured,
	}
	db.Create(&inst)
	return inst
}

// seedCart creates a cart for the given session key.
func seedCart(db *gorm.DB, sessionKey string) models.Cart {
	cart := models.Cart{
		ID:         uuid.New(),
		SessionKey: sessionKey,
	}
	db.Create(&cart)
	return cart
}

// ==================== Router Setup Helpers ====================

// setupCatalogRouter sets up routes for category and instrument handler tests.
func setupCatalogRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	categoryHandler := &CategoryHandler{DB: db}
	instrumentHandler := &InstrumentHandler{DB: db}

	api := r.Group("/api")
	api.GET("/categories", categoryHandler.GetCategories)
	api.GET("/categories/:slug/instruments", categoryHandler.GetCategoryInstruments)
	api.GET("/instruments", instrumentHandler.GetInstruments)
	api.GET("/instruments/:slug", instrumentHandler.GetInstrument)
	api.GET("/featured", instrumentHandler.GetFeatured)
	api.GET("/brands", instrumentHandler.GetBrands)

	return r
}

// setupCartRouter sets up session-scoped routes for cart handler tests.
func setupCartRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	cartHandler := &CartHandler{DB: db}

	api := r.Group("/api")
	api.Use(middleware.Session())
	api.GET("/cart", cartHandler.GetCart)
	api.POST("/cart/add", cartHandler.AddToCart)
	api.POST("/cart/items/:id", cartHandler.UpdateCartItem)
	api.POST("/cart/items/:id/remove", cartHandler.RemoveCartItem)

	return r
}

// setupBatchRouter sets up routes for instrument batch import tests.
func setupBatchRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	instrumentHandler := &InstrumentHandler{DB: db}

	api := r.Group("/api")
	api.POST("/instruments/batch", instrumentHandler.BatchImportInstruments)
	api.GET("/batch-jobs/:id", instrumentHandler.GetBatchJobStatus)

	return r
}

// ==================== Request Helpers ====================

// jsonRequest creates an HTTP request with JSON body.
func jsonRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// sessionRequest creates an HTTP request carrying the cart session cookie.
func sessionRequest(method, url string, body interface{}, sessionKey string) *http.Request {
	req := jsonRequest(method, url, body)
	if sessionKey != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sessionKey})
	}
	return req
}

// ==================== Response Helpers ====================

// parseResponse reads the response body into a map.
func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// resultsOf extracts the "results" array from a list response.
func resultsOf(w *httptest.ResponseRecorder) []interface{} {
	resp := parseResponse(w)
	results, _ := resp["results"].([]interface{})
	return results
}

// sessionCookieOf returns the cart session cookie set on the response, or nil.
func sessionCookieOf(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

// Ensure time import is used
var _ = time.Now
