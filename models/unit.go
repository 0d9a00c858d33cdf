package models

import (
	"time"
)

// Unit is a bookable sub-resource of a service, e.g. a room of a hotel or a
// table section of a restaurant.
type Unit struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ServiceID   uint      `json:"service_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2)"`
	MaxPeople   int       `json:"max_people"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Service Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}

// AddUnitRequest is the body of POST /provider/add-unit.
type AddUnitRequest struct {
	ProviderID uint    `json:"provider_id" binding:"required"`
	ServiceID  uint    `json:"service_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price"`
	MaxPeople  int     `json:"max_people"`
}
