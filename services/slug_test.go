package services

import (
	"fmt"
	"testing"

	"github.com/cmspro/cmspro-api/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Caps AND Symbols!@#", "caps-and-symbols"},
		{"under_scores and---dashes", "under-scores-and-dashes"},
		{"Ünïcödé stripped", "ncd-stripped"},
		{"multiple   spaces", "multiple-spaces"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func TestUniqueSlugSequence(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.BlogCategory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for i, want := range []string{"web-design", "web-design-1", "web-design-2"} {
		got, err := UniqueSlug(db, "blog_categories", "Web Design", 0)
		if err != nil {
			t.Fatalf("UniqueSlug call %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("UniqueSlug call %d = %q, want %q", i, got, want)
		}
		if err := db.Create(&model.BlogCategory{Name: fmt.Sprintf("Web Design %d", i), Slug: got}).Error; err != nil {
			t.Fatalf("create category %d: %v", i, err)
		}
	}
}

func TestUniqueSlugExcludesOwnRow(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.BlogCategory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cat := model.BlogCategory{Name: "Branding", Slug: "branding"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-deriving a slug for the same row must not collide with itself.
	got, err := UniqueSlug(db, "blog_categories", "Branding", cat.ID)
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if got != "branding" {
		t.Errorf("UniqueSlug excluding own row = %q, want %q", got, "branding")
	}

	// A different row still gets the suffixed value.
	got, err = UniqueSlug(db, "blog_categories", "Branding", 0)
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if got != "branding-1" {
		t.Errorf("UniqueSlug for new row = %q, want %q", got, "branding-1")
	}
}

func TestUniqueSlugEmptyTitleFallsBack(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&model.BlogCategory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	got, err := UniqueSlug(db, "blog_categories", "!!!", 0)
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if len(got) != 8 {
		t.Errorf("fallback slug %q should be an 8 character fragment", got)
	}
}
