package model

import "time"

// Lead status values.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusLost      = "lost"
)

// Lead is a contact-form submission. Created publicly, managed by admins.
type Lead struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(200);not null" json:"name"`
	Email        string    `gorm:"type:varchar(254);not null" json:"email"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	AttachedFile string    `gorm:"type:varchar(512)" json:"-"`
	Source       string    `gorm:"type:varchar(100)" json:"source"`
	Status       string    `gorm:"type:varchar(20);default:'new'" json:"status"`
	IsRead       bool      `gorm:"default:false" json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}
