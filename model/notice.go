package model

import (
	"time"

	"gorm.io/datatypes"
)

// Notice priority values.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Notice is an announcement with optional attachment and expiry date.
type Notice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Slug          string          `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Excerpt       string          `gorm:"type:varchar(500)" json:"excerpt"`
	Attachment    string          `gorm:"type:varchar(512)" json:"-"`
	FeaturedImage string          `gorm:"type:varchar(512)" json:"-"`
	Status        string          `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	Priority      string          `gorm:"type:varchar(20);default:'normal'" json:"priority"`
	NoticeDate    datatypes.Date  `gorm:"not null;index" json:"notice_date"`
	ExpiryDate    *datatypes.Date `json:"expiry_date"`
	IsFeatured    bool            `gorm:"default:false" json:"is_featured"`
	IsSticky      bool            `gorm:"default:false" json:"is_sticky"`
	Order         uint            `gorm:"default:0" json:"order"`
	ViewCount     uint            `gorm:"default:0" json:"view_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	PublishedAt   *time.Time      `json:"published_at"`
}

// IsExpired reports whether the expiry date exists and is strictly before
// today. Derived, never stored.
func (n *Notice) IsExpired() bool {
	return dateBeforeToday(n.ExpiryDate)
}
