package models

import (
	"time"
)

const (
	ReservationScheduled = "scheduled"
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// Reservation references the customer by free-text name/phone, not by id;
// walk-ins without a customer record can still book.
type Reservation struct {
	ID            int        `gorm:"primaryKey" json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	StaffID       *int       `gorm:"index" json:"staff_id"`
	ServiceName   string     `json:"service_name"`
	Notes         *string    `json:"notes"`
	Status        string     `gorm:"default:'scheduled'" json:"status"`
	StartTime     time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ValidReservationStatus(status string) bool {
	switch status {
	case ReservationScheduled, ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}
