package routes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	FullName string          `json:"full_name" binding:"required"`
	Phone    string          `json:"phone" binding:"required"`
	City     string          `json:"city"`
	Role     models.UserRole `json:"role" binding:"required"`
}

// ActivateRequest is the body of POST /activate.
type ActivateRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// RegisterAuthRoutes registers registration and activation routes
func RegisterAuthRoutes(router *gin.Engine) {
	router.POST("/register", register)
	router.POST("/activate", activate)
}

// register creates an inactive account for a client or a provider
func register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	user := models.User{
		FullName: req.FullName,
		Phone:    req.Phone,
		City:     req.City,
		Role:     req.Role,
		IsActive: false,
	}

	if !user.IsValidRole() {
		fail(c, http.StatusBadRequest, CodeValidation, "Role must be client or provider")
		return
	}

	// Check if the phone is already registered
	var existing models.User
	if err := database.DB.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		fail(c, http.StatusBadRequest, CodeValidation, "A user with this phone already exists")
		return
	}

	if err := database.DB.Create(&user).Error; err != nil {
		// Two registrations racing past the existence check land here
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			fail(c, http.StatusBadRequest, CodeValidation, "A user with this phone already exists")
			return
		}
		log.Printf("❌ Failed to create user: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to create user")
		return
	}

	c.JSON(http.StatusOK, user)
}

var (
	errUserNotFound  = errors.New("user not found")
	errAlreadyActive = errors.New("user already active")
	errBadCode       = errors.New("invalid, used or expired code")
)

// activate redeems an activation code. Both writes — flipping the user to
// active and marking the code used — happen in one transaction so a code can
// never be redeemed twice.
func activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := database.ForUpdate(tx).Where("phone = ?", req.Phone).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}

		if user.IsActive {
			return errAlreadyActive
		}

		var code models.ActivationCode
		if err := database.ForUpdate(tx).
			Where("user_id = ? AND code = ? AND used = ? AND expires_at > ?",
				user.ID, req.Code, false, time.Now()).
			First(&code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBadCode
			}
			return err
		}

		if err := tx.Model(&user).Update("is_active", true).Error; err != nil {
			return err
		}
		return tx.Model(&code).Update("used", true).Error
	})

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, errUserNotFound):
		fail(c, http.StatusNotFound, CodeNotFound, "User not found")
	case errors.Is(err, errAlreadyActive):
		fail(c, http.StatusBadRequest, CodeValidation, "User is already active")
	case errors.Is(err, errBadCode):
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid, used or expired code")
	default:
		log.Printf("❌ Activation failed: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Activation failed")
	}
}
