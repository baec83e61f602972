package model

import "time"

// JWTTokenBlacklist stores revoked token JTIs until they expire naturally.
type JWTTokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"` // JTI
	UserID    uint      `gorm:"index" json:"user_id"`
	Reason    string    `gorm:"type:varchar(100)" json:"reason"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
