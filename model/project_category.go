package model

import "time"

// ProjectCategory groups projects; deleting one nullifies the reference
// on its projects.
type ProjectCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	Projects []Project `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"projects,omitempty"`
}
