package model

import "time"

// ProjectImage is a gallery entry; removed together with its project.
type ProjectImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"index;not null" json:"project_id"`
	Image     string    `gorm:"type:varchar(512);not null" json:"-"`
	Caption   string    `gorm:"type:varchar(255)" json:"caption"`
	AltText   string    `gorm:"type:varchar(255)" json:"alt_text"`
	Order     uint      `gorm:"default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
}
