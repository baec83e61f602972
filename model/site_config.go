package model

import "time"

// SiteConfigID is the fixed primary key of the single configuration row.
const SiteConfigID uint = 1

// SiteConfig is the singleton site configuration, pinned to a fixed
// primary key so upserts cannot race into duplicate rows.
type SiteConfig struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CompanyName   string `gorm:"type:varchar(255)" json:"company_name"`
	AboutExcerpt  string `gorm:"type:text" json:"about_excerpt"`
	Address       string `gorm:"type:text" json:"address"`
	Phone         string `gorm:"type:varchar(50)" json:"phone"`
	Email         string `gorm:"type:varchar(254)" json:"email"`
	Website       string `gorm:"type:varchar(255)" json:"website"`
	BusinessHours string `gorm:"type:varchar(200)" json:"business_hours"`

	Logo        string `gorm:"type:varchar(512)" json:"-"`
	LogoAltText string `gorm:"type:varchar(255);default:'Site Logo'" json:"logo_alt_text"`

	FacebookURL  string `gorm:"type:varchar(255)" json:"facebook_url"`
	InstagramURL string `gorm:"type:varchar(255)" json:"instagram_url"`
	YoutubeURL   string `gorm:"type:varchar(255)" json:"youtube_url"`
	XURL         string `gorm:"type:varchar(255)" json:"x_url"`
	LinkedinURL  string `gorm:"type:varchar(255)" json:"linkedin_url"`

	CustomLinkURL  string `gorm:"type:varchar(255)" json:"custom_link_url"`
	CustomLinkText string `gorm:"type:varchar(255)" json:"custom_link_text"`

	GoogleAnalyticsID  string `gorm:"type:varchar(100)" json:"google_analytics_id"`
	GoogleTagManagerID string `gorm:"type:varchar(100)" json:"google_tag_manager_id"`
	FacebookPixelID    string `gorm:"type:varchar(100)" json:"facebook_pixel_id"`
	HotjarID           string `gorm:"type:varchar(100)" json:"hotjar_id"`
	ClarityID          string `gorm:"type:varchar(100)" json:"clarity_id"`
	CustomTrackingCode string `gorm:"type:text" json:"custom_tracking_code"`

	EnableAnalytics    bool   `gorm:"default:true" json:"enable_analytics"`
	EnableTracking     bool   `gorm:"default:true" json:"enable_tracking"`
	RecaptchaSiteKey   string `gorm:"type:varchar(255)" json:"recaptcha_site_key"`
	RecaptchaSecretKey string `gorm:"type:varchar(255)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
