package query

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplyOrdering applies an `ordering` query parameter to a GORM query.
// A leading "-" flips the direction. Fields outside the whitelist fall
// back to defaultOrder, which is also used when the parameter is absent.
func ApplyOrdering(c *fiber.Ctx, db *gorm.DB, allowed []string, defaultOrder string) *gorm.DB {
	raw := strings.TrimSpace(c.Query("ordering"))
	if raw == "" {
		return db.Order(defaultOrder)
	}

	field := raw
	desc := false
	if strings.HasPrefix(raw, "-") {
		field = raw[1:]
		desc = true
	}

	for _, a := range allowed {
		if field == a {
			// Quote the identifier; "order" is a reserved word.
			if desc {
				return db.Order(fmt.Sprintf("%q DESC", field))
			}
			return db.Order(fmt.Sprintf("%q ASC", field))
		}
	}

	return db.Order(defaultOrder)
}

// ApplySearch adds a case-insensitive substring match over the given
// columns when the `search` query parameter is present.
func ApplySearch(c *fiber.Ctx, db *gorm.DB, columns ...string) *gorm.DB {
	term := strings.TrimSpace(c.Query("search"))
	if term == "" || len(columns) == 0 {
		return db
	}

	pattern := "%" + term + "%"
	clause := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		clause = append(clause, col+" ILIKE ?")
		args = append(args, pattern)
	}
	return db.Where(strings.Join(clause, " OR "), args...)
}

// FilterContains adds a case-insensitive substring filter on column when
// the named query parameter is present and non-empty.
func FilterContains(c *fiber.Ctx, db *gorm.DB, param, column string) *gorm.DB {
	if v := strings.TrimSpace(c.Query(param)); v != "" {
		db = db.Where(column+" ILIKE ?", "%"+v+"%")
	}
	return db
}

// FilterEqual adds an equality filter for each query parameter that is
// present and non-empty. Keys map query parameter names to column names.
func FilterEqual(c *fiber.Ctx, db *gorm.DB, params map[string]string) *gorm.DB {
	for param, column := range params {
		if v := strings.TrimSpace(c.Query(param)); v != "" {
			db = db.Where(column+" = ?", v)
		}
	}
	return db
}

// ParseBool reports whether a query parameter is present and truthy.
// Accepted truthy spellings are "true", "True" and "1"; anything else
// (including absence) reports ok=false so callers skip the filter.
func ParseBool(c *fiber.Ctx, name string) (value bool, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, false
	}
	switch raw {
	case "true", "True", "1":
		return true, true
	case "false", "False", "0":
		return false, true
	}
	return false, false
}

// Pagination extracts page and limit query parameters with the shared
// defaults and caps.
func Pagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
