package model

import "time"

type BlogCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	Order       uint      `gorm:"default:0" json:"order"`
	CreatedAt   time.Time `json:"created_at"`

	Posts []BlogPost `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"posts,omitempty"`
}
