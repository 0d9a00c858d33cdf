package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taiz-marketplace-server/cache"
	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
	"taiz-marketplace-server/utils"
)

const (
	nearbyLimit      = 30
	topRatedLimit    = 10
	topRatedCacheKey = "services:top-rated"
	topRatedCacheTTL = time.Minute
)

// RegisterServiceRoutes registers the public discovery endpoints
func RegisterServiceRoutes(router *gin.Engine) {
	router.GET("/services", listServices)
	router.GET("/services/top-rated", getTopRatedServices)
	router.GET("/services/near", getNearbyServices)
	router.GET("/services/:id/units", listUnits)
	router.GET("/services/:id/reviews", listReviews)
	router.POST("/services/:id/reviews", addReview)
}

// listServices returns services whose providers are active
func listServices(c *gin.Context) {
	var services []models.Service
	if err := database.DB.
		Where("provider_id IN (?)",
			database.DB.Model(&models.User{}).Select("id").
				Where("role = ? AND is_active = ?", models.RoleProvider, true)).
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		log.Printf("❌ Failed to fetch services: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// listUnits returns the available units of a service
func listUnits(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid service ID")
		return
	}

	var units []models.Unit
	if err := database.DB.
		Where("service_id = ? AND is_available = ?", serviceID, true).
		Find(&units).Error; err != nil {
		log.Printf("❌ Failed to fetch units: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch units")
		return
	}

	c.JSON(http.StatusOK, units)
}

// listReviews returns a service's reviews, newest first
func listReviews(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid service ID")
		return
	}

	var reviews []models.Review
	if err := database.DB.
		Where("service_id = ?", serviceID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		log.Printf("❌ Failed to fetch reviews: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// addReview stores a rating from an active user
func addReview(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid service ID")
		return
	}

	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "Missing or invalid fields")
		return
	}

	var user models.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		fail(c, http.StatusNotFound, CodeNotFound, "User not found")
		return
	}
	if !user.IsActive {
		fail(c, http.StatusForbidden, CodeAuth, "User is not active")
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		fail(c, http.StatusNotFound, CodeNotFound, "Service not found")
		return
	}

	review := models.Review{
		UserID:    req.UserID,
		ServiceID: uint(serviceID),
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := database.DB.Create(&review).Error; err != nil {
		log.Printf("❌ Failed to create review: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to create review")
		return
	}

	// New ratings change the aggregate
	cache.Delete(c.Request.Context(), topRatedCacheKey)

	c.JSON(http.StatusOK, review)
}

// getTopRatedServices returns the ten best-rated services by average rating
func getTopRatedServices(c *gin.Context) {
	ctx := c.Request.Context()

	if data, ok := cache.Get(ctx, topRatedCacheKey); ok {
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	var top []models.TopRatedService
	if err := database.DB.Raw(`
		SELECT
			s.id AS service_id,
			s.name,
			s.type,
			s.price,
			AVG(CAST(r.rating AS DECIMAL(3,2))) AS average_rating,
			COUNT(r.id) AS review_count
		FROM reviews r
		JOIN services s ON s.id = r.service_id
		GROUP BY s.id, s.name, s.type, s.price
		ORDER BY average_rating DESC
		LIMIT ?
	`, topRatedLimit).Scan(&top).Error; err != nil {
		log.Printf("❌ Failed to fetch top-rated services: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch top-rated services")
		return
	}

	if cache.Enabled() {
		if data, err := json.Marshal(top); err == nil {
			cache.Set(ctx, topRatedCacheKey, data, topRatedCacheTTL)
		}
	}

	c.JSON(http.StatusOK, top)
}

// getNearbyServices ranks active services by haversine distance from the
// query point, nearest first, capped at 30 rows. Distance is computed in Go
// over the candidate set rather than in SQL.
func getNearbyServices(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil || !utils.IsLocationValid(lat, lng) {
		fail(c, http.StatusBadRequest, CodeValidation, "Invalid lat/lng")
		return
	}

	var services []models.Service
	if err := database.DB.
		Where("provider_id IN (?)",
			database.DB.Model(&models.User{}).Select("id").
				Where("role = ? AND is_active = ?", models.RoleProvider, true)).
		Find(&services).Error; err != nil {
		log.Printf("❌ Failed to fetch services: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "Failed to fetch services")
		return
	}

	nearby := make([]models.ServiceWithDistance, 0, len(services))
	for _, service := range services {
		nearby = append(nearby, models.ServiceWithDistance{
			Service:    service,
			DistanceKm: utils.HaversineDistance(lat, lng, service.Lat, service.Lng),
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	if len(nearby) > nearbyLimit {
		nearby = nearby[:nearbyLimit]
	}

	c.JSON(http.StatusOK, nearby)
}
