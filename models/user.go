package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleProvider UserRole = "provider"
)

// User is a marketplace account. Accounts start inactive and stay unusable
// until an admin-issued activation code is redeemed.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"size:255;not null"`
	Phone     string    `json:"phone" gorm:"size:20;uniqueIndex;not null"`
	City      string    `json:"city" gorm:"size:100;not null;default:'Taiz'"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;check:role IN ('client','provider')"`
	IsActive  bool      `json:"is_active" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:ClientID"`
	Services []Service `json:"services,omitempty" gorm:"foreignKey:ProviderID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.City == "" {
		u.City = "Taiz"
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleClient, RoleProvider:
		return true
	default:
		return false
	}
}

// IsProvider checks if the user is a provider
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// IsClient checks if the user is a client
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
