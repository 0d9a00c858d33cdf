package models

import (
	"time"
)

// ActivationCode is a one-time 6-digit credential issued by an admin.
// Redeeming it flips the owning user to active and marks the code used.
// Nothing stops an admin from issuing several outstanding codes for the
// same user; any unexpired unused one redeems.
type ActivationCode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Code      string    `json:"code" gorm:"size:6;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Used      bool      `json:"used" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the ActivationCode model
func (ActivationCode) TableName() string {
	return "activation_codes"
}

// IsRedeemable reports whether the code can still be used at the given time.
func (a *ActivationCode) IsRedeemable(now time.Time) bool {
	return !a.Used && a.ExpiresAt.After(now)
}
