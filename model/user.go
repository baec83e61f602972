package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a dashboard account. Every user can manage content;
// role is kept for future tiers but only "admin" is issued today.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Name         string         `gorm:"type:varchar(255)" json:"name"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"type:varchar(50);default:'admin'" json:"role"`
	TokenVersion int            `gorm:"default:0" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
