package query

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// withCtx runs fn inside a request handler so query helpers see a real
// fiber context.
func withCtx(t *testing.T, target string, fn func(c *fiber.Ctx)) {
	t.Helper()
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		fn(c)
		return nil
	})
	req := httptest.NewRequest("GET", target, nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		raw       string
		wantValue bool
		wantOK    bool
	}{
		{"true", true, true},
		{"True", true, true},
		{"1", true, true},
		{"false", false, true},
		{"False", false, true},
		{"0", false, true},
		{"yes", false, false},
		{"TRUE", false, false},
		{"", false, false},
	}

	for _, tc := range cases {
		target := "/t"
		if tc.raw != "" {
			target = "/t?flag=" + tc.raw
		}
		withCtx(t, target, func(c *fiber.Ctx) {
			value, ok := ParseBool(c, "flag")
			if value != tc.wantValue || ok != tc.wantOK {
				t.Errorf("ParseBool(%q) = (%v, %v), want (%v, %v)",
					tc.raw, value, ok, tc.wantValue, tc.wantOK)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	cases := []struct {
		target    string
		wantPage  int
		wantLimit int
	}{
		{"/t", 1, 10},
		{"/t?page=3&limit=25", 3, 25},
		{"/t?page=0&limit=0", 1, 10},
		{"/t?page=-2", 1, 10},
		{"/t?limit=500", 1, 100},
	}

	for _, tc := range cases {
		withCtx(t, tc.target, func(c *fiber.Ctx) {
			page, limit := Pagination(c)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Errorf("Pagination(%q) = (%d, %d), want (%d, %d)",
					tc.target, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestFilterContains(t *testing.T) {
	db := dryRunDB(t)

	withCtx(t, "/t?location=Remote", func(c *fiber.Ctx) {
		var rows []map[string]interface{}
		stmt := FilterContains(c, db.Table("careers"), "location", "location").
			Find(&rows).Statement
		sql := stmt.SQL.String()
		if !strings.Contains(sql, "location ILIKE ?") {
			t.Errorf("generated SQL %q lacks substring match", sql)
		}
		found := false
		for _, v := range stmt.Vars {
			if v == "%Remote%" {
				found = true
			}
		}
		if !found {
			t.Errorf("vars %v lack wildcard pattern", stmt.Vars)
		}
	})

	withCtx(t, "/t", func(c *fiber.Ctx) {
		var rows []map[string]interface{}
		stmt := FilterContains(c, db.Table("careers"), "location", "location").
			Find(&rows).Statement
		if sql := stmt.SQL.String(); strings.Contains(sql, "ILIKE") {
			t.Errorf("absent parameter must not filter, got %q", sql)
		}
	})
}

func TestApplyOrderingQuotesField(t *testing.T) {
	db := dryRunDB(t)

	withCtx(t, "/t?ordering=-order", func(c *fiber.Ctx) {
		var rows []map[string]interface{}
		stmt := ApplyOrdering(c, db.Table("notices"), []string{"order", "notice_date"}, "notice_date DESC").
			Find(&rows).Statement
		if sql := stmt.SQL.String(); !strings.Contains(sql, `"order" DESC`) {
			t.Errorf("generated SQL %q must quote the order column", sql)
		}
	})

	withCtx(t, "/t?ordering=bogus", func(c *fiber.Ctx) {
		var rows []map[string]interface{}
		stmt := ApplyOrdering(c, db.Table("notices"), []string{"order", "notice_date"}, "notice_date DESC").
			Find(&rows).Statement
		if sql := stmt.SQL.String(); !strings.Contains(sql, "notice_date DESC") {
			t.Errorf("generated SQL %q must fall back to the default ordering", sql)
		}
	})
}
