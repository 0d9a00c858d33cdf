package models

import (
	"time"
)

// Service is a bookable offering (lodging, restaurant, clinic) owned by an
// active provider.
type Service struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ProviderID    uint      `json:"provider_id" gorm:"not null;index"`
	Name          string    `json:"name" gorm:"size:200;not null"`
	Type          string    `json:"type" gorm:"size:50"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	AvailableDays string    `json:"available_days" gorm:"size:100"`
	OpenTime      string    `json:"open_time" gorm:"size:20"`
	CloseTime     string    `json:"close_time" gorm:"size:20"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Provider User   `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Units    []Unit `json:"units,omitempty" gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// AddServiceRequest is the body of POST /provider/add-service.
type AddServiceRequest struct {
	ProviderID    uint    `json:"provider_id" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	AvailableDays string  `json:"available_days"`
	OpenTime      string  `json:"open_time"`
	CloseTime     string  `json:"close_time"`
}

// ServiceWithDistance decorates a service with its haversine distance from
// the query point, for the proximity search response.
type ServiceWithDistance struct {
	Service
	DistanceKm float64 `json:"distance_km"`
}

// TopRatedService is one row of the top-rated aggregation.
type TopRatedService struct {
	ServiceID     uint    `json:"service_id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Price         float64 `json:"price"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}
