package model

import "time"

// Client is a partner/customer company shown on the site.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	About     string    `gorm:"type:text" json:"about"`
	Website   string    `gorm:"type:varchar(255)" json:"website"`
	Logo      string    `gorm:"type:varchar(512)" json:"-"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Order     uint      `gorm:"default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
