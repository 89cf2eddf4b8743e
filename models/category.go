package models

// Category groups services by name. The soft reference lives on
// Service.Category; the "HOME" row only drives home-screen curation
// and can never be deleted.
type Category struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
	IsActive     bool   `gorm:"column:active;not null;default:true" json:"active"`
}
