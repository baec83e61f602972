package model

import (
	"time"

	"gorm.io/datatypes"
)

// Project status values.
const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusOngoing   = "ongoing"
	ProjectStatusCompleted = "completed"
)

type Project struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Title            string          `gorm:"type:varchar(255);not null" json:"title"`
	Slug             string          `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"`
	ShortDescription string          `gorm:"type:varchar(500)" json:"short_description"`
	LongDescription  string          `gorm:"type:text" json:"long_description"`
	CoverImage       string          `gorm:"type:varchar(512)" json:"-"`
	Status           string          `gorm:"type:varchar(20);default:'planned';index" json:"status"`
	StartDate        *datatypes.Date `json:"start_date"`
	EndDate          *datatypes.Date `json:"end_date"`
	IsFeatured       bool            `gorm:"default:false" json:"is_featured"`
	CategoryID       *uint           `gorm:"index" json:"category_id"`
	IsDeleted        bool            `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Category *ProjectCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProjectImage   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}
