package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s_-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts a title to a URL-safe slug: lowercase, alphanumerics
// and hyphens only, with runs of whitespace, underscores and hyphens
// collapsed to a single hyphen.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slug
}

// UniqueSlug derives a slug from title that no other row in table uses.
// It tries base, base-1, base-2, ... until a free value is found,
// excluding the row identified by excludeID so updates do not collide
// with themselves. Titles that slugify to nothing fall back to a random
// UUID fragment.
func UniqueSlug(db *gorm.DB, table, title string, excludeID uint) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = uuid.New().String()[:8]
	}

	candidate := base
	for i := 1; ; i++ {
		var count int64
		q := db.Table(table).Where("slug = ?", candidate)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
