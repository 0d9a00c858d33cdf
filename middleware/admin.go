package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
	"taiz-marketplace-server/utils"
)

// AdminAuthMiddleware protects the admin dashboard GET endpoints with the
// bearer token issued by POST /admin/login. The privileged POST endpoints
// keep the shared admin_code body field as their contract and do their own
// check.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
				"code":  "auth_error",
			})
			c.Abort()
			return
		}

		// Remove "Bearer " prefix
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := utils.VerifyAdminToken(token)
		if err != nil {
			log.Printf("❌ Admin token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
				"code":  "auth_error",
			})
			c.Abort()
			return
		}

		var admin models.Admin
		if err := database.DB.First(&admin, claims.AdminID).Error; err != nil {
			log.Printf("❌ Admin not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Admin not found",
				"code":  "auth_error",
			})
			c.Abort()
			return
		}

		c.Set("admin_id", admin.ID)
		c.Next()
	}
}
