package models

import (
	"time"
)

type Customer struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Phone         *string   `gorm:"uniqueIndex" json:"phone"`
	Email         *string   `json:"email"`
	LoyaltyPoints int       `gorm:"default:0" json:"loyalty_points"`
	Visits        int       `gorm:"default:0" json:"visits"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Bills []Bill `gorm:"foreignKey:CustomerID" json:"-"`
}
