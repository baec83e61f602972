package model

import "time"

// Job application statuses.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewing   = "reviewing"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

// JobApplication is a submission against a career posting. Resume holds the
// storage key of the uploaded file. ReviewedAt is stamped exactly once the
// first time the status leaves pending.
type JobApplication struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CareerID    uint       `gorm:"not null;index" json:"career_id"`
	FullName    string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email       string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone       string     `gorm:"type:varchar(50);not null" json:"phone"`
	Resume      string     `gorm:"type:varchar(512);not null" json:"-"`
	CoverLetter string     `gorm:"type:text" json:"cover_letter"`
	Status      string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	AdminNotes  string     `gorm:"type:text" json:"admin_notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	Career *Career `gorm:"foreignKey:CareerID;constraint:OnDelete:CASCADE" json:"career,omitempty"`
}
