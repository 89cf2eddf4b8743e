package models

import (
	"time"
)

// StaffTimeLog is an attendance record. ClockOut stays nil while the log is
// open; reporting decides whether an open log counts up to "now".
type StaffTimeLog struct {
	ID        int        `gorm:"primaryKey" json:"id"`
	StaffID   int        `gorm:"not null;index" json:"staff_id"`
	ClockIn   time.Time  `gorm:"not null;index" json:"clock_in"`
	ClockOut  *time.Time `json:"clock_out"`
	CreatedAt time.Time  `json:"created_at"`
}

func (StaffTimeLog) TableName() string {
	return "staff_time_logs"
}
