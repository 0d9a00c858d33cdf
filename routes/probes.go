package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taiz-marketplace-server/database"
)

// RegisterProbeRoutes registers the liveness endpoints
func RegisterProbeRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Taiz backend is running 🚀")
	})

	router.GET("/db", dbProbe)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Taiz backend is running",
			"time":    time.Now().UTC(),
		})
	})
}

// dbProbe round-trips the store and reports its clock
func dbProbe(c *gin.Context) {
	var dbTime string
	if err := database.DB.Raw("SELECT CAST(CURRENT_TIMESTAMP AS TEXT)").Scan(&dbTime).Error; err != nil {
		log.Printf("❌ Database probe failed: %v", err)
		fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"database_time": dbTime})
}
