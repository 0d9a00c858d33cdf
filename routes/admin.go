package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taiz-marketplace-server/config"
	"taiz-marketplace-server/database"
	"taiz-marketplace-server/middleware"
	"taiz-marketplace-server/models"
	"taiz-marketplace-server/services"
	"taiz-marketplace-server/utils"
)

// AdminLoginRequest is the body of POST /admin/login.
type AdminLoginRequest struct {
	AdminCode string `json:"admin_code" binding:"required"`
}

// CreateCodeRequest is the body of POST /admin/create-code.
type CreateCodeRequest struct {
	AdminCode string `json:"admin_code" binding:"required"`
	UserID    uint   `json:"user_id" binding:"required"`
}

// BookingActionRequest is the body of POST /admin/booking-action.
type BookingActionRequest struct {
	AdminCode string               `json:"admin_code" binding:"required"`
	BookingID uint                 `json:"booking_id" binding:"required"`
	Action    models.BookingStatus `json:"action" binding:"required"`
}

// ConfirmPaymentRequest is the body of POST /admin/confirm-payment.
type ConfirmPaymentRequest struct {
	AdminCode string `json:"admin_code" binding:"required"`
	PaymentID uint   `json:"payment_id" binding:"required"`
}

// RegisterAdminRoutes registers the privileged endpoints. The POST endpoints
// authenticate with the shared admin_code body field; the dashboard GETs use
// the bearer token from /admin/login.
func RegisterAdminRoutes(router *gin.Engine) {
	router.POST("/admin/login", adminLogin)
	router.POST("/admin/create-code", createActivationCode)
	router.POST("/admin/booking-action", bookingAction)
	router.POST("/admin/confirm-payment", confirmPayment)

	dashboard := router.Group("/admin")
	dashboard.Use(middleware.AdminAuthMiddleware())
	{
		dashboard.GET("/payments", listPayments)
		dashboard.GET("/bookings/export", exportBookings)
	}
}

// authenticateAdmin resolves a shared admin code against the allow-list.
// Codes are stored bcrypt-hashed, so the list is scanned and compared.
func authenticateAdmin(code string) (*models.Admin, bool) {
	if code == "" {
		return nil, false
	}

	var admins []models.Admin
	if err := database.DB.Find(&admins).Error; err != nil {
		log.Printf("❌ Failed to load admins: %v", err)
		return nil, false
	}

	for i := range admins {
		if utils.CheckAdminCode(code, admins[i].CodeHash) {
			return &admins[i], true
		}
	}
	return nil, false
}

// adminLogin exchanges the shared admin code for a short-lived bearer token
func adminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	admin, ok := authenticateAdmin(req.AdminCode)
	if !ok {
		fail(c, http.StatusForbidden, CodeAuth, "Invalid admin code")
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID)
	if err != nil {
		log.Printf("❌ Admin token generation failed: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int64(config.AppConfig.JWT.ExpiryHours) * 3600,
	})
}

// createActivationCode issues a 6-digit activation code for a user. The
// plaintext code is returned in the response so the admin can relay it to
// the user over the phone.
func createActivationCode(c *gin.Context) {
	var req CreateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	if _, ok := authenticateAdmin(req.AdminCode); !ok {
		fail(c, http.StatusForbidden, CodeAuth, "Invalid admin code")
		return
	}

	var user models.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		fail(c, http.StatusNotFound, CodeNotFound, "User not found")
		return
	}

	code, err := utils.GenerateActivationCode()
	if err != nil {
		log.Printf("❌ Code generation failed: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to generate code")
		return
	}

	activation := models.ActivationCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	if err := database.DB.Create(&activation).Error; err != nil {
		log.Printf("❌ Failed to store activation code: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to create code")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":       code,
		"expires_at": activation.ExpiresAt,
	})
}

// bookingAction sets a booking's status to approved or rejected. The admin
// decision is authoritative: the current status is not consulted, so a
// rejected booking can still be approved later.
func bookingAction(c *gin.Context) {
	var req BookingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	if _, ok := authenticateAdmin(req.AdminCode); !ok {
		fail(c, http.StatusForbidden, CodeAuth, "Invalid admin code")
		return
	}

	if !models.IsValidBookingAction(req.Action) {
		fail(c, http.StatusBadRequest, CodeValidation, "Action must be approved or rejected")
		return
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&booking, req.BookingID).Error; err != nil {
			return err
		}
		return tx.Model(&booking).Update("status", req.Action).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, CodeNotFound, "Booking not found")
			return
		}
		log.Printf("❌ Booking action failed: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to update booking")
		return
	}

	services.NotifyBookingStatus(notifHub, &booking, req.Action)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  req.Action,
	})
}

// confirmPayment marks a payment confirmed and cascades the owning booking
// to approved, in one transaction. Confirming twice is a no-op.
func confirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	if _, ok := authenticateAdmin(req.AdminCode); !ok {
		fail(c, http.StatusForbidden, CodeAuth, "Invalid admin code")
		return
	}

	var booking models.Booking
	alreadyConfirmed := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := database.ForUpdate(tx).First(&payment, req.PaymentID).Error; err != nil {
			return err
		}

		if err := database.ForUpdate(tx).First(&booking, payment.BookingID).Error; err != nil {
			return err
		}

		if payment.Confirmed && booking.Status == models.BookingStatusApproved {
			alreadyConfirmed = true
			return nil
		}

		if err := tx.Model(&payment).Update("confirmed", true).Error; err != nil {
			return err
		}
		return tx.Model(&booking).Update("status", models.BookingStatusApproved).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, CodeNotFound, "Payment not found")
			return
		}
		log.Printf("❌ Payment confirmation failed: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to confirm payment")
		return
	}

	if !alreadyConfirmed {
		services.NotifyBookingStatus(notifHub, &booking, models.BookingStatusApproved)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// listPayments returns all payments with their booking, client and service
func listPayments(c *gin.Context) {
	var payments []models.Payment
	if err := database.DB.
		Preload("Booking").
		Preload("Booking.Client").
		Preload("Booking.Service").
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		log.Printf("❌ Failed to fetch payments: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// exportBookings streams all bookings as an XLSX workbook
func exportBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := database.DB.
		Preload("Client").
		Preload("Service").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		log.Printf("❌ Failed to fetch bookings for export: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch bookings")
		return
	}

	data, err := services.BuildBookingsWorkbook(bookings)
	if err != nil {
		log.Printf("❌ Failed to build bookings workbook: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to build export")
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
