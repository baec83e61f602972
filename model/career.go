package model

import (
	"time"

	"gorm.io/datatypes"
)

// Career status values. "active" is the live state.
const (
	CareerStatusDraft  = "draft"
	CareerStatusActive = "active"
	CareerStatusClosed = "closed"
)

// Career job types.
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// Career is a job opening. Applications cascade-delete with it.
type Career struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	Title               string          `gorm:"type:varchar(255);not null" json:"title"`
	Slug                string          `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"`
	Location            string          `gorm:"type:varchar(200);not null" json:"location"`
	JobType             string          `gorm:"type:varchar(20);default:'full_time'" json:"job_type"`
	Department          string          `gorm:"type:varchar(100)" json:"department"`
	ExperienceRequired  string          `gorm:"type:varchar(100)" json:"experience_required"`
	SalaryRange         string          `gorm:"type:varchar(100)" json:"salary_range"`
	ShortDescription    string          `gorm:"type:varchar(500)" json:"short_description"`
	Requirements        string          `gorm:"type:text;not null" json:"requirements"`
	Responsibilities    string          `gorm:"type:text" json:"responsibilities"`
	Qualifications      string          `gorm:"type:text" json:"qualifications"`
	Benefits            string          `gorm:"type:text" json:"benefits"`
	ApplicationEmail    string          `gorm:"type:varchar(254)" json:"application_email"`
	ApplicationURL      string          `gorm:"type:varchar(255)" json:"application_url"`
	ApplicationDeadline *datatypes.Date `json:"application_deadline"`
	Status              string          `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	IsFeatured          bool            `gorm:"default:false" json:"is_featured"`
	Order               uint            `gorm:"default:0" json:"order"`
	ViewCount           uint            `gorm:"default:0" json:"view_count"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	PublishedAt         *time.Time      `json:"published_at"`

	Applications []JobApplication `gorm:"foreignKey:CareerID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

// IsExpired reports whether the application deadline is strictly in the
// past. Derived, never stored.
func (c *Career) IsExpired() bool {
	return dateBeforeToday(c.ApplicationDeadline)
}

func dateBeforeToday(d *datatypes.Date) bool {
	if d == nil {
		return false
	}
	y, m, day := time.Now().UTC().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return time.Time(*d).Before(today)
}
