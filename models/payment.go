package models

import (
	"time"
)

type PaymentType string

const (
	PaymentTypeKareemi PaymentType = "kareemi"
	PaymentTypeOneCash PaymentType = "onecash"
	PaymentTypeBank    PaymentType = "bank"
)

// IsValidPaymentType checks a payment type against the closed set.
func IsValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentTypeKareemi, PaymentTypeOneCash, PaymentTypeBank:
		return true
	default:
		return false
	}
}

// Payment records a manual out-of-band transfer for a booking. The client
// uploads a receipt image and an admin confirms it, which cascades the
// booking to approved.
type Payment struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	BookingID    uint        `json:"booking_id" gorm:"not null;index"`
	Amount       float64     `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentType  PaymentType `json:"payment_type" gorm:"type:varchar(20);not null;check:payment_type IN ('kareemi','onecash','bank')"`
	Confirmed    bool        `json:"confirmed" gorm:"default:false"`
	ReceiptImage string      `json:"receipt_image" gorm:"size:500"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Booking Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// CreatePaymentRequest is the body of POST /payments/create.
type CreatePaymentRequest struct {
	BookingID   uint        `json:"booking_id" binding:"required"`
	Amount      float64     `json:"amount" binding:"required"`
	PaymentType PaymentType `json:"payment_type" binding:"required"`
}
