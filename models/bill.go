package models

import (
	"time"
)

// Bill is immutable once written: there is no update or delete path.
type Bill struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	CustomerID     *int      `gorm:"index" json:"customer_id"`
	Subtotal       float64   `gorm:"not null;default:0" json:"subtotal"`
	DiscountAmount float64   `gorm:"default:0" json:"discount_amount"`
	DiscountType   *string   `json:"discount_type"`
	Total          float64   `gorm:"not null;default:0" json:"total"`
	PaymentMethod  string    `gorm:"not null" json:"payment_method"`
	PaymentStatus  string    `gorm:"default:'completed'" json:"payment_status"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`

	Items []BillItem `gorm:"foreignKey:BillID" json:"items"`
}

// BillItem carries the service name, price and staff name as they were at
// sale time; later edits to services or staff must not rewrite history.
type BillItem struct {
	ID          int     `gorm:"primaryKey" json:"id"`
	BillID      int     `gorm:"not null;index" json:"bill_id"`
	ServiceID   int     `gorm:"not null" json:"service_id"`
	ServiceName string  `gorm:"not null" json:"service_name"`
	Price       float64 `gorm:"not null" json:"price"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	StaffID     *int    `json:"staff_id"`
	StaffName   *string `json:"staff_name"`
	Notes       *string `json:"notes"`
}
