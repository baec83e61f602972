package model

import "time"

// SiteLogo is a singleton: at most one row exists. Enforcement lives in
// services.SiteLogoService.
type SiteLogo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Logo      string    `gorm:"type:varchar(512);not null" json:"-"`
	AltText   string    `gorm:"type:varchar(255);default:'Site Logo'" json:"alt_text"`
	UpdatedAt time.Time `json:"updated_at"`
}
