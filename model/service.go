package model

import "time"

// Service is a marketing service page; shares the publish lifecycle and
// SEO block with BlogPost.
type Service struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Title              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"title"`
	Slug               string     `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"`
	Excerpt            string     `gorm:"type:varchar(500)" json:"excerpt"`
	FeaturedImage      string     `gorm:"type:varchar(512)" json:"-"`
	FeaturedImageAlt   string     `gorm:"type:varchar(255)" json:"featured_image_alt"`
	Content            string     `gorm:"type:text;not null" json:"content"`
	ReadingTimeMinutes int16      `json:"reading_time_minutes"`
	CategoryID         *uint      `gorm:"index" json:"category_id"`
	MetaDescription    string     `gorm:"type:varchar(160)" json:"meta_description"`
	MetaKeywords       string     `gorm:"type:varchar(255)" json:"meta_keywords"`
	FocusKeyword       string     `gorm:"type:varchar(100)" json:"focus_keyword"`
	OGTitle            string     `gorm:"type:varchar(100)" json:"og_title"`
	OGDescription      string     `gorm:"type:varchar(160)" json:"og_description"`
	CanonicalURL       string     `gorm:"type:varchar(255)" json:"canonical_url"`
	RobotsMeta         string     `gorm:"type:varchar(50);default:'index, follow'" json:"robots_meta"`
	Status             string     `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	IsFeatured         bool       `gorm:"default:false" json:"is_featured"`
	Order              uint       `gorm:"default:0" json:"order"`
	ViewCount          uint       `gorm:"default:0" json:"view_count"`
	IsDeleted          bool       `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	PublishedAt        *time.Time `json:"published_at"`

	Category *ServiceCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
