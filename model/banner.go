package model

import "time"

// Banner is a homepage hero entry. Video-focused: the video file is
// required, the poster is optional.
type Banner struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(200)" json:"title"`
	Subtitle      string    `gorm:"type:varchar(400)" json:"subtitle"`
	Description   string    `gorm:"type:text" json:"description"`
	Video         string    `gorm:"type:varchar(512)" json:"-"` // storage key
	VideoPoster   string    `gorm:"type:varchar(512)" json:"-"` // storage key
	VideoAutoplay bool      `gorm:"default:true" json:"video_autoplay"`
	VideoMuted    bool      `gorm:"default:true" json:"video_muted"`
	VideoLoop     bool      `gorm:"default:true" json:"video_loop"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	Order         uint      `gorm:"default:0" json:"order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
