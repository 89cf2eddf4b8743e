package models

import (
	"time"
)

// Service belongs to a Category by name. ShowOnHome puts it on the curated
// home view regardless of its real category.
type Service struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Price      float64   `gorm:"not null;default:0" json:"price"`
	Category   string    `gorm:"not null;default:'General';index" json:"category"`
	ShowOnHome bool      `gorm:"not null;default:false" json:"show_on_home"`
	IsActive   bool      `gorm:"column:active;not null;default:true;index" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
