package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taiz-marketplace-server/config"
	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
)

// RegisterPaymentRoutes registers payment creation and receipt upload
func RegisterPaymentRoutes(router *gin.Engine) {
	router.POST("/payments/create", createPayment)
	router.POST("/payments/upload", uploadReceipt)
}

// createPayment records an unconfirmed payment for a booking and returns the
// manual-transfer instructions. The actual transfer happens out of band.
func createPayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing fields")
		return
	}

	if !models.IsValidPaymentType(req.PaymentType) {
		fail(c, http.StatusBadRequest, CodeValidation, "payment_type must be kareemi, onecash or bank")
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, req.BookingID).Error; err != nil {
		fail(c, http.StatusNotFound, CodeNotFound, "Booking not found")
		return
	}

	payment := models.Payment{
		BookingID:   req.BookingID,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Confirmed:   false,
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("❌ Failed to create payment: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to create payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
		"message": fmt.Sprintf("Transfer %.2f via %s and upload the receipt to /payments/upload", req.Amount, req.PaymentType),
	})
}

// validateReceiptFile checks size (<= 5MB) and extension
func validateReceiptFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".pdf":
		return true
	default:
		return false
	}
}

// uploadReceipt stores the transfer receipt and records its identifier on
// the payment. Files go to Cloudinary when it is configured, otherwise to
// the local upload directory.
func uploadReceipt(c *gin.Context) {
	paymentIDStr := c.PostForm("payment_id")
	paymentID, err := strconv.ParseUint(paymentIDStr, 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing or invalid payment_id")
		return
	}

	header, err := c.FormFile("receipt")
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "No receipt file provided")
		return
	}

	if !validateReceiptFile(header) {
		fail(c, http.StatusBadRequest, CodeValidation, "Receipt must be an image or PDF up to 5MB")
		return
	}

	var payment models.Payment
	if err := database.DB.First(&payment, paymentID).Error; err != nil {
		fail(c, http.StatusNotFound, CodeNotFound, "Payment not found")
		return
	}

	identifier, err := storeReceipt(c, header, payment.ID)
	if err != nil {
		log.Printf("❌ Receipt storage failed: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to store receipt")
		return
	}

	if err := database.DB.Model(&payment).Update("receipt_image", identifier).Error; err != nil {
		log.Printf("❌ Failed to record receipt on payment: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to record receipt")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"receipt": identifier,
	})
}

// storeReceipt uploads to Cloudinary when CLOUDINARY_* is set, local disk
// otherwise. Returns the stored identifier (URL or filename).
func storeReceipt(c *gin.Context, header *multipart.FileHeader, paymentID uint) (string, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName != "" && apiKey != "" && apiSecret != "" {
		cld, err := cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName))
		if err != nil {
			return "", err
		}

		file, err := header.Open()
		if err != nil {
			return "", err
		}
		defer file.Close()

		resp, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
			Folder:   "receipts",
			PublicID: fmt.Sprintf("payment-%d-%s", paymentID, uuid.New().String()),
		})
		if err != nil {
			return "", err
		}
		return resp.SecureURL, nil
	}

	dir := config.AppConfig.Upload.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("receipt-%d-%s%s", paymentID, uuid.New().String(), strings.ToLower(filepath.Ext(header.Filename)))
	if err := c.SaveUploadedFile(header, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return filename, nil
}
