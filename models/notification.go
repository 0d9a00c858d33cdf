package models

import (
	"time"
)

type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProviderID uint      `json:"provider_id" gorm:"not null;index"`
	BookingID  uint      `json:"booking_id"`
	Title      string    `json:"title" gorm:"not null"`
	Body       string    `json:"body" gorm:"not null"`
	Type       string    `json:"type" gorm:"not null"` // booking_created, booking_approved, booking_rejected
	Read       bool      `json:"read" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Provider User `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
