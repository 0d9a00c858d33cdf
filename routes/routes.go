package routes

import (
	"github.com/gin-gonic/gin"

	ws "taiz-marketplace-server/websocket"
)

// notifHub delivers provider notifications to connected WebSocket clients.
// Nil is fine; notifications then only land in the table.
var notifHub *ws.Hub

// InitNotificationHub wires the WebSocket hub used for live provider
// notifications.
func InitNotificationHub(hub *ws.Hub) {
	notifHub = hub
}

// Register mounts the complete API surface on the router.
func Register(router *gin.Engine) {
	RegisterProbeRoutes(router)
	RegisterAuthRoutes(router)
	RegisterAdminRoutes(router)
	RegisterProviderRoutes(router)
	RegisterServiceRoutes(router)
	RegisterBookingRoutes(router)
	RegisterPaymentRoutes(router)
}
