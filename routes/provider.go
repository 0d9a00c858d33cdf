package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
)

// RegisterProviderRoutes registers provider-facing endpoints
func RegisterProviderRoutes(router *gin.Engine) {
	router.POST("/provider/add-service", addService)
	router.POST("/provider/add-unit", addUnit)
	router.GET("/provider/bookings/:id", getProviderBookings)
	router.GET("/provider/notifications/:id", getProviderNotifications)
}

// requireActiveProvider loads the user and checks they are an active
// provider.
func requireActiveProvider(c *gin.Context, providerID uint) (*models.User, bool) {
	var provider models.User
	if err := database.DB.First(&provider, providerID).Error; err != nil {
		fail(c, http.StatusForbidden, CodeAuth, "Not an active provider")
		return nil, false
	}
	if !provider.IsProvider() || !provider.IsActive {
		fail(c, http.StatusForbidden, CodeAuth, "Not an active provider")
		return nil, false
	}
	return &provider, true
}

// addService creates a service owned by an active provider
func addService(c *gin.Context) {
	var req models.AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	if _, ok := requireActiveProvider(c, req.ProviderID); !ok {
		return
	}

	service := models.Service{
		ProviderID:    req.ProviderID,
		Name:          req.Name,
		Type:          req.Type,
		Description:   req.Description,
		Price:         req.Price,
		Lat:           req.Lat,
		Lng:           req.Lng,
		AvailableDays: req.AvailableDays,
		OpenTime:      req.OpenTime,
		CloseTime:     req.CloseTime,
	}

	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("❌ Failed to create service: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to create service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// addUnit creates a unit under a service the provider owns
func addUnit(c *gin.Context) {
	var req models.AddUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	if _, ok := requireActiveProvider(c, req.ProviderID); !ok {
		return
	}

	// Ownership check: the service must belong to the requesting provider
	var service models.Service
	if err := database.DB.
		Where("id = ? AND provider_id = ?", req.ServiceID, req.ProviderID).
		First(&service).Error; err != nil {
		fail(c, http.StatusForbidden, CodeAuth, "Service does not belong to this provider")
		return
	}

	unit := models.Unit{
		ServiceID:   req.ServiceID,
		Name:        req.Name,
		Price:       req.Price,
		MaxPeople:   req.MaxPeople,
		IsAvailable: true,
	}

	if err := database.DB.Create(&unit).Error; err != nil {
		log.Printf("❌ Failed to create unit: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to create unit")
		return
	}

	c.JSON(http.StatusOK, unit)
}

// getProviderBookings lists bookings against any of the provider's services
func getProviderBookings(c *gin.Context) {
	providerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid provider ID")
		return
	}

	var bookings []models.Booking
	if err := database.DB.
		Where("service_id IN (?)",
			database.DB.Model(&models.Service{}).Select("id").Where("provider_id = ?", providerID)).
		Preload("Client").
		Preload("Service").
		Preload("Unit").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		log.Printf("❌ Failed to fetch provider bookings: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// getProviderNotifications lists the provider's notifications, newest first
func getProviderNotifications(c *gin.Context) {
	providerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid provider ID")
		return
	}

	var notifications []models.Notification
	if err := database.DB.
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		log.Printf("❌ Failed to fetch notifications: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}
