package websocket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
)

// ProviderHandler serves the live notification stream
type ProviderHandler struct {
	hub *Hub
}

// NewProviderHandler creates a handler bound to the hub
func NewProviderHandler(hub *Hub) *ProviderHandler {
	return &ProviderHandler{hub: hub}
}

// HandleProvider upgrades GET /ws/provider?provider_id= to a WebSocket and
// streams the provider's notifications.
func (h *ProviderHandler) HandleProvider(c *gin.Context) {
	providerID, err := strconv.ParseUint(c.Query("provider_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing or invalid provider_id",
			"code":  "validation_error",
		})
		return
	}

	var provider models.User
	if err := database.DB.First(&provider, providerID).Error; err != nil ||
		provider.Role != models.RoleProvider {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Provider not found",
			"code":  "not_found",
		})
		return
	}

	ServeProvider(h.hub, c.Writer, c.Request, uint(providerID))
}
