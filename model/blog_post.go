package model

import "time"

// Publish status values shared by BlogPost, Service and Notice.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// RobotsDefault is the default robots meta directive.
const RobotsDefault = "index, follow"

// BlogPost is a markdown article with an SEO block. Slug and reading time
// are derived at save time; published_at follows the publish lifecycle.
type BlogPost struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Title              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"title"`
	Slug               string     `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"`
	Author             string     `gorm:"type:varchar(150)" json:"author"`
	FeaturedImage      string     `gorm:"type:varchar(512)" json:"-"`
	FeaturedImageAlt   string     `gorm:"type:varchar(255)" json:"featured_image_alt"`
	Thumbnail          string     `gorm:"type:varchar(512)" json:"-"`
	Excerpt            string     `gorm:"type:varchar(500)" json:"excerpt"`
	Content            string     `gorm:"type:text;not null" json:"content"`
	ReadingTimeMinutes int16      `json:"reading_time_minutes"`
	Status             string     `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	Tags               string     `gorm:"type:varchar(255)" json:"tags"`
	CategoryID         *uint      `gorm:"index" json:"category_id"`
	MetaDescription    string     `gorm:"type:varchar(160)" json:"meta_description"`
	MetaKeywords       string     `gorm:"type:varchar(255)" json:"meta_keywords"`
	FocusKeyword       string     `gorm:"type:varchar(100)" json:"focus_keyword"`
	OGTitle            string     `gorm:"type:varchar(100)" json:"og_title"`
	OGDescription      string     `gorm:"type:varchar(160)" json:"og_description"`
	CanonicalURL       string     `gorm:"type:varchar(255)" json:"canonical_url"`
	RobotsMeta         string     `gorm:"type:varchar(50);default:'index, follow'" json:"robots_meta"`
	ViewCount          uint       `gorm:"default:0" json:"view_count"`
	IsFeatured         bool       `gorm:"default:false" json:"is_featured"`
	IsDeleted          bool       `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	PublishedAt        *time.Time `gorm:"index" json:"published_at"`

	Category *BlogCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
