package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taiz-marketplace-server/config"
	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
	"taiz-marketplace-server/utils"
)

const testAdminCode = "super-secret-admin"

// setupTest wires the handlers to a fresh in-memory store and returns the
// router.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A second pooled connection would see its own empty :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	database.DB = db
	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	router := gin.New()
	Register(router)
	return router
}

func seedTestAdmin(t *testing.T) {
	t.Helper()
	hash, err := utils.HashAdminCode(testAdminCode)
	if err != nil {
		t.Fatalf("hash admin code: %v", err)
	}
	if err := database.DB.Create(&models.Admin{Name: "test", CodeHash: hash}).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func createTestUser(t *testing.T, role models.UserRole, active bool, phone string) models.User {
	t.Helper()
	user := models.User{
		FullName: "Test " + string(role),
		Phone:    phone,
		City:     "Taiz",
		Role:     role,
		IsActive: active,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestService(t *testing.T, providerID uint, name string, lat, lng float64) models.Service {
	t.Helper()
	service := models.Service{
		ProviderID: providerID,
		Name:       name,
		Type:       "hotel",
		Price:      100,
		Lat:        lat,
		Lng:        lng,
	}
	if err := database.DB.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return service
}

func createTestBooking(t *testing.T, clientID, serviceID uint, status models.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{
		ClientID:    clientID,
		ServiceID:   serviceID,
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		PeopleCount: 2,
		Status:      status,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}

// doJSON performs a request with a JSON body and returns the recorder
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doGET(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
