package model

import "time"

type TeamMember struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(150);not null" json:"name"`
	Position     string    `gorm:"type:varchar(150);not null" json:"position"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Photo        string    `gorm:"type:varchar(512)" json:"-"`
	LinkedinURL  string    `gorm:"type:varchar(255)" json:"linkedin_url"`
	FacebookURL  string    `gorm:"type:varchar(255)" json:"facebook_url"`
	InstagramURL string    `gorm:"type:varchar(255)" json:"instagram_url"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	Order        uint      `gorm:"default:0" json:"order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
