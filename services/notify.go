package services

import (
	"fmt"
	"log"

	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
	ws "taiz-marketplace-server/websocket"
)

// statusNotification maps a booking status to the provider-facing message
func statusNotification(status models.BookingStatus) (string, string, string) {
	switch status {
	case models.BookingStatusApproved:
		return "Booking approved", "A booking for your service was approved.", "booking_approved"
	case models.BookingStatusRejected:
		return "Booking rejected", "A booking for your service was rejected.", "booking_rejected"
	default:
		return "Booking update", "A booking for your service was updated.", "booking_updated"
	}
}

// notifyProvider stores a notification row and pushes it to the provider's
// WebSocket connection when one is open. Notification failures never fail
// the request that triggered them.
func notifyProvider(hub *ws.Hub, providerID, bookingID uint, title, body, ntype string) {
	notification := models.Notification{
		ProviderID: providerID,
		BookingID:  bookingID,
		Title:      title,
		Body:       body,
		Type:       ntype,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("❌ Failed to store notification for provider %d: %v", providerID, err)
		return
	}

	if hub != nil {
		hub.SendToProvider(providerID, &ws.Message{
			Type:      ntype,
			BookingID: bookingID,
			Title:     title,
			Body:      body,
		})
	}
}

// NotifyBookingCreated tells the service's provider about a new booking
func NotifyBookingCreated(hub *ws.Hub, booking *models.Booking, service *models.Service) {
	body := fmt.Sprintf("New booking #%d for %s (%s to %s, %d people)",
		booking.ID, service.Name,
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"),
		booking.PeopleCount)
	notifyProvider(hub, service.ProviderID, booking.ID, "New booking", body, "booking_created")
}

// NotifyBookingStatus tells the provider about an admin decision
func NotifyBookingStatus(hub *ws.Hub, booking *models.Booking, status models.BookingStatus) {
	var service models.Service
	if err := database.DB.First(&service, booking.ServiceID).Error; err != nil {
		log.Printf("❌ Failed to load service for notification: %v", err)
		return
	}

	title, body, ntype := statusNotification(status)
	notifyProvider(hub, service.ProviderID, booking.ID, title, body, ntype)
}
