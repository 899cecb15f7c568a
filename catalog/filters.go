// Package catalog holds the shared filter pipeline used by the listing
// endpoints. Filters are independent predicate narrowings over the same
// base query, so they compose with AND in any order.
package catalog

import (
	"strings"

	"resonance-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ConditionUsed is the filter-level union of every non-new condition grade.
// Individual used grades are not selectable at this layer.
const ConditionUsed = "used"

// FilterOptions carries the validated, enumerated filter inputs for a
// listing request. Unknown condition values act as no-ops.
type FilterOptions struct {
	Condition string
	DealsOnly bool
	Brands    []string
}

// ParseFilterOptions reads the shared filter query parameters:
// ?condition=new|used (empty or "all" means no condition filter),
// ?deals=1 to keep featured instruments only, and repeatable ?brand=.
func ParseFilterOptions(c *gin.Context) FilterOptions {
	condition := c.Query("condition")
	if condition == "all" {
		condition = ""
	}
	return FilterOptions{
		Condition: condition,
		DealsOnly: c.Query("deals") == "1",
		Brands:    c.QueryArray("brand"),
	}
}

// ApplyFilters narrows an instrument query by the given options. "used"
// keeps everything whose condition is not new; brand matching is exact and
// case-sensitive.
func ApplyFilters(q *gorm.DB, opts FilterOptions) *gorm.DB {
	switch opts.Condition {
	case models.ConditionNew:
		q = q.Where("condition = ?", models.ConditionNew)
	case ConditionUsed:
		q = q.Where("condition <> ?", models.ConditionNew)
	}

	if opts.DealsOnly {
		// featured doubles as the "deal" marker
		q = q.Where("featured = ?", true)
	}

	if len(opts.Brands) > 0 {
		q = q.Where("brand IN ?", opts.Brands)
	}

	return q
}

// ApplySearch keeps instruments where query is a case-insensitive substring
// of the name, brand, or description. An empty query is a no-op.
func ApplySearch(q *gorm.DB, query string) *gorm.DB {
	if query == "" {
		return q
	}
	pattern := "%" + strings.ToLower(query) + "%"
	return q.Where(
		"LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?",
		pattern, pattern, pattern,
	)
}

// Brands returns the distinct brand names in the catalog, ordered
// alphabetically. Used to populate storefront filter controls.
func Brands(db *gorm.DB) ([]string, error) {
	var brands []string
	err := db.Model(&models.Instrument{}).
		Distinct("brand").
		Order("brand").
		Pluck("brand", &brands).Error
	return brands, err
}
