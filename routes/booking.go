package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
	"taiz-marketplace-server/services"
)

const bookingDateLayout = "2006-01-02"

// RegisterBookingRoutes registers booking creation, listing and the voucher
// endpoint
func RegisterBookingRoutes(router *gin.Engine) {
	router.POST("/book", createBooking)
	router.GET("/client/bookings/:id", getClientBookings)
	router.GET("/bookings/:id/pdf", getBookingVoucher)
}

var (
	errClientNotFound   = errors.New("client not found")
	errClientInactive   = errors.New("client not active")
	errServiceNotFound  = errors.New("service not found")
	errProviderInactive = errors.New("provider not active")
	errUnitMismatch     = errors.New("unit does not belong to service")
)

// createBooking validates the whole chain — active client, existing service,
// active provider, unit ownership — inside one transaction and inserts the
// booking as pending.
func createBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	startDate, err := time.Parse(bookingDateLayout, req.StartDate)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "start_date must be YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(bookingDateLayout, req.EndDate)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "end_date must be YYYY-MM-DD")
		return
	}
	if endDate.Before(startDate) {
		fail(c, http.StatusBadRequest, CodeValidation, "end_date must not be before start_date")
		return
	}

	peopleCount := req.PeopleCount
	if peopleCount <= 0 {
		peopleCount = 1
	}

	booking := models.Booking{
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		UnitID:      req.UnitID,
		StartDate:   startDate,
		EndDate:     endDate,
		PeopleCount: peopleCount,
		Status:      models.BookingStatusPending,
	}

	var service models.Service
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var client models.User
		if err := tx.First(&client, req.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errClientNotFound
			}
			return err
		}
		if !client.IsClient() || !client.IsActive {
			return errClientInactive
		}

		if err := tx.Preload("Provider").First(&service, req.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errServiceNotFound
			}
			return err
		}
		if !service.Provider.IsActive {
			return errProviderInactive
		}

		if req.UnitID != nil {
			var unit models.Unit
			if err := tx.Where("id = ? AND service_id = ?", *req.UnitID, req.ServiceID).
				First(&unit).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errUnitMismatch
				}
				return err
			}
		}

		return tx.Create(&booking).Error
	})

	switch {
	case txErr == nil:
		// fallthrough to the success path below
	case errors.Is(txErr, errClientNotFound):
		fail(c, http.StatusNotFound, CodeNotFound, "Client not found")
		return
	case errors.Is(txErr, errClientInactive):
		fail(c, http.StatusForbidden, CodeAuth, "Client is not active")
		return
	case errors.Is(txErr, errServiceNotFound):
		fail(c, http.StatusNotFound, CodeNotFound, "Service not found")
		return
	case errors.Is(txErr, errProviderInactive):
		fail(c, http.StatusForbidden, CodeAuth, "Service provider is not active")
		return
	case errors.Is(txErr, errUnitMismatch):
		fail(c, http.StatusNotFound, CodeNotFound, "Unit does not belong to this service")
		return
	default:
		log.Printf("❌ Booking creation failed: %v", txErr)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to create booking")
		return
	}

	services.NotifyBookingCreated(notifHub, &booking, &service)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": booking,
	})
}

// getClientBookings lists a client's bookings with their services
func getClientBookings(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid client ID")
		return
	}

	var bookings []models.Booking
	if err := database.DB.
		Where("client_id = ?", clientID).
		Preload("Service").
		Preload("Unit").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		log.Printf("❌ Failed to fetch client bookings: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// getBookingVoucher renders the printable voucher PDF. Only approved
// bookings have one; anything else is a 404.
func getBookingVoucher(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid booking ID")
		return
	}

	var booking models.Booking
	if err := database.DB.
		Preload("Client").
		Preload("Service").
		Preload("Unit").
		First(&booking, bookingID).Error; err != nil {
		fail(c, http.StatusNotFound, CodeNotFound, "Booking not found")
		return
	}

	if booking.Status != models.BookingStatusApproved {
		fail(c, http.StatusNotFound, CodeNotFound, "No voucher for this booking")
		return
	}

	pdf, err := services.BuildVoucherPDF(&booking)
	if err != nil {
		log.Printf("❌ Voucher rendering failed: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to render voucher")
		return
	}

	filename := fmt.Sprintf("voucher-%d.pdf", booking.ID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
