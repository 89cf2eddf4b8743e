package models

import (
	"time"
)

// Staff rows are soft-deleted via IsActive; bill items keep a denormalized
// staff name so history survives edits and deactivation.
type Staff struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	CommissionRate float64   `gorm:"default:0" json:"commission_rate"`
	IsActive       bool      `gorm:"column:active;not null;default:true" json:"active"`
	Pin            *string   `json:"-"` // bcrypt hash, admin role only
	Role           string    `gorm:"default:'staff'" json:"role"`
	PhotoPath      *string   `json:"photo_path"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Staff) TableName() string {
	return "staff"
}
