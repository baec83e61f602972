package model

import "time"

// About holds the about-page content with its four titled sections.
type About struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(200);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	Image   string `gorm:"type:varchar(512)" json:"-"`

	MissionTitle   string `gorm:"type:varchar(200);default:'Our Mission'" json:"mission_title"`
	MissionContent string `gorm:"type:text" json:"mission_content"`
	MissionImage   string `gorm:"type:varchar(512)" json:"-"`

	VisionTitle   string `gorm:"type:varchar(200);default:'Our Vision'" json:"vision_title"`
	VisionContent string `gorm:"type:text" json:"vision_content"`
	VisionImage   string `gorm:"type:varchar(512)" json:"-"`

	GoalsTitle   string `gorm:"type:varchar(200);default:'Our Goals'" json:"goals_title"`
	GoalsContent string `gorm:"type:text" json:"goals_content"`
	GoalsImage   string `gorm:"type:varchar(512)" json:"-"`

	AchievementsTitle   string `gorm:"type:varchar(200);default:'Our Achievements'" json:"achievements_title"`
	AchievementsContent string `gorm:"type:text" json:"achievements_content"`
	AchievementsImage   string `gorm:"type:varchar(512)" json:"-"`

	IsPublished bool      `gorm:"default:true" json:"is_published"`
	UpdatedAt   time.Time `json:"updated_at"`
}
