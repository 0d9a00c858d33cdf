package routes

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
)

func TestCreateBookingChecks(t *testing.T) {
	router := setupTest(t)
	client := createTestUser(t, models.RoleClient, true, "7000")
	inactiveClient := createTestUser(t, models.RoleClient, false, "7001")
	activeProvider := createTestUser(t, models.RoleProvider, true, "7002")
	inactiveProvider := createTestUser(t, models.RoleProvider, false, "7003")
	service := createTestService(t, activeProvider.ID, "Hotel", 13.58, 44.02)
	orphanService := createTestService(t, inactiveProvider.ID, "Closed Hotel", 13.58, 44.02)

	base := map[string]interface{}{
		"client_id":    client.ID,
		"service_id":   service.ID,
		"start_date":   "2026-09-01",
		"end_date":     "2026-09-03",
		"people_count": 2,
	}

	// Missing fields
	w := doJSON(t, router, http.MethodPost, "/book", map[string]interface{}{
		"client_id": client.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// Unknown client
	bad := cloneBody(base)
	bad["client_id"] = uint(9999)
	w = doJSON(t, router, http.MethodPost, "/book", bad)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown client, got %d", w.Code)
	}

	// Inactive client
	bad = cloneBody(base)
	bad["client_id"] = inactiveClient.ID
	w = doJSON(t, router, http.MethodPost, "/book", bad)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for inactive client, got %d", w.Code)
	}

	// Inactive provider, even with an active client and existing service
	bad = cloneBody(base)
	bad["service_id"] = orphanService.ID
	w = doJSON(t, router, http.MethodPost, "/book", bad)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for inactive provider, got %d", w.Code)
	}

	// Unit from another service
	foreignUnit := models.Unit{ServiceID: orphanService.ID, Name: "Room X"}
	if err := database.DB.Create(&foreignUnit).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}
	bad = cloneBody(base)
	bad["unit_id"] = foreignUnit.ID
	w = doJSON(t, router, http.MethodPost, "/book", bad)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign unit, got %d", w.Code)
	}

	// Happy path
	w = doJSON(t, router, http.MethodPost, "/book", base)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool           `json:"success"`
		Booking models.Booking `json:"booking"`
	}
	decodeBody(t, w, &resp)
	if !resp.Success || resp.Booking.Status != models.BookingStatusPending {
		t.Fatalf("unexpected booking response: %+v", resp)
	}

	// Booking creation notifies the provider
	var notifications []models.Notification
	database.DB.Where("provider_id = ?", activeProvider.ID).Find(&notifications)
	if len(notifications) != 1 || notifications[0].Type != "booking_created" {
		t.Fatalf("expected one booking_created notification, got %+v", notifications)
	}
}

func cloneBody(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func TestBookingActionOverwritesStatus(t *testing.T) {
	router := setupTest(t)
	seedTestAdmin(t)
	client := createTestUser(t, models.RoleClient, true, "7000")
	provider := createTestUser(t, models.RoleProvider, true, "7001")
	service := createTestService(t, provider.ID, "Hotel", 13.58, 44.02)
	booking := createTestBooking(t, client.ID, service.ID, models.BookingStatusPending)

	// Bad admin code
	w := doJSON(t, router, http.MethodPost, "/admin/booking-action", map[string]interface{}{
		"admin_code": "wrong",
		"booking_id": booking.ID,
		"action":     "approved",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	// Bad action
	w = doJSON(t, router, http.MethodPost, "/admin/booking-action", map[string]interface{}{
		"admin_code": testAdminCode,
		"booking_id": booking.ID,
		"action":     "pending",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// Reject, then approve: the admin decision overwrites
	for _, action := range []string{"rejected", "approved"} {
		w = doJSON(t, router, http.MethodPost, "/admin/booking-action", map[string]interface{}{
			"admin_code": testAdminCode,
			"booking_id": booking.ID,
			"action":     action,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d: %s", action, w.Code, w.Body.String())
		}

		var reloaded models.Booking
		database.DB.First(&reloaded, booking.ID)
		if string(reloaded.Status) != action {
			t.Fatalf("expected status %s, got %s", action, reloaded.Status)
		}
	}
}

func TestVoucherOnlyForApprovedBookings(t *testing.T) {
	router := setupTest(t)
	client := createTestUser(t, models.RoleClient, true, "7000")
	provider := createTestUser(t, models.RoleProvider, true, "7001")
	service := createTestService(t, provider.ID, "Hotel", 13.58, 44.02)

	for _, status := range []models.BookingStatus{models.BookingStatusPending, models.BookingStatusRejected} {
		booking := createTestBooking(t, client.ID, service.ID, status)
		w := doGET(t, router, "/bookings/"+strconv.Itoa(int(booking.ID))+"/pdf")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %s booking, got %d", status, w.Code)
		}
	}

	approved := createTestBooking(t, client.ID, service.ID, models.BookingStatusApproved)
	w := doGET(t, router, "/bookings/"+strconv.Itoa(int(approved.ID))+"/pdf")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatal("voucher body is not a PDF")
	}
}

func TestClientAndProviderBookingLists(t *testing.T) {
	router := setupTest(t)
	client := createTestUser(t, models.RoleClient, true, "7000")
	provider := createTestUser(t, models.RoleProvider, true, "7001")
	service := createTestService(t, provider.ID, "Hotel", 13.58, 44.02)
	createTestBooking(t, client.ID, service.ID, models.BookingStatusPending)

	w := doGET(t, router, "/client/bookings/"+strconv.Itoa(int(client.ID)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var clientBookings []models.Booking
	decodeBody(t, w, &clientBookings)
	if len(clientBookings) != 1 {
		t.Fatalf("expected 1 client booking, got %d", len(clientBookings))
	}

	w = doGET(t, router, "/provider/bookings/"+strconv.Itoa(int(provider.ID)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var providerBookings []models.Booking
	decodeBody(t, w, &providerBookings)
	if len(providerBookings) != 1 {
		t.Fatalf("expected 1 provider booking, got %d", len(providerBookings))
	}
}
