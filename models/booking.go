package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

// IsValidBookingAction reports whether a status is one an admin may set via
// the booking-action endpoint. The admin decision is authoritative and
// overwrites whatever status the booking currently has, including
// rejected → approved.
func IsValidBookingAction(s BookingStatus) bool {
	return s == BookingStatusApproved || s == BookingStatusRejected
}

// Booking links an active client to a service (and optionally one of its
// units) over a date range. Status only ever moves by admin action or by a
// confirmed payment.
type Booking struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	ClientID    uint          `json:"client_id" gorm:"not null;index"`
	ServiceID   uint          `json:"service_id" gorm:"not null;index"`
	UnitID      *uint         `json:"unit_id"`
	StartDate   time.Time     `json:"start_date" gorm:"not null"`
	EndDate     time.Time     `json:"end_date" gorm:"not null"`
	PeopleCount int           `json:"people_count" gorm:"default:1"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','approved','rejected')"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Client  User    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Service Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Unit    *Unit   `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// CreateBookingRequest is the body of POST /book. Dates arrive as
// YYYY-MM-DD strings.
type CreateBookingRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	UnitID      *uint  `json:"unit_id"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	PeopleCount int    `json:"people_count"`
}
