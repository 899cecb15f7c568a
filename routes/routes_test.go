package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "categories" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL UNIQUE, "slug" TEXT NOT NULL UNIQUE,
			"description" TEXT, "created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "instruments" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "slug" TEXT NOT NULL UNIQUE,
			"category_id" TEXT NOT NULL, "brand" TEXT, "condition" TEXT DEFAULT 'new',
			"price" NUMERIC NOT NULL, "rating" NUMERIC DEFAULT 5.0, "description" TEXT,
			"specifications" TEXT, "image" TEXT, "in_stock" INTEGER DEFAULT 1,
			"featured" INTEGER DEFAULT 0, "created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "carts" (
			"id" TEXT PRIMARY KEY, "session_key" TEXT NOT NULL UNIQUE,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "cart_items" (
			"id" TEXT PRIMARY KEY, "cart_id" TEXT NOT NULL, "instrument_id" TEXT NOT NULL,
			"quantity" INTEGER DEFAULT 1, "added_at" DATETIME
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_instrument ON "cart_items"("cart_id","instrument_id")`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func setupRouter(t *testing.T) *gin.Engine {
	db := setupTestDB(t)
	r := gin.New()
	SetupRoutes(r, db)
	return r
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCatalogRoutesWired(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{
		"/api/categories",
		"/api/instruments",
		"/api/featured",
		"/api/brands",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d: %s", path, w.Code, w.Body.String())
		}
	}
}

func TestCartRouteEstablishesSession(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/cart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "cart_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected cart session cookie on /api/cart")
	}
}

func TestUnknownInstrumentRoute404(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/instruments/no-such-slug", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBatchImportRouteValidatesPayload(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/instruments/batch", nil)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d: %s", w.Code, w.Body.String())
	}
}
