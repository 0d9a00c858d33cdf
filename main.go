package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taiz-marketplace-server/cache"
	"taiz-marketplace-server/config"
	"taiz-marketplace-server/database"
	"taiz-marketplace-server/jobs"
	"taiz-marketplace-server/middleware"
	"taiz-marketplace-server/routes"
	ws "taiz-marketplace-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := seedAdmin(); err != nil {
		log.Fatal("Failed to seed admin:", err)
	}

	// Optional Redis cache for the discovery aggregations
	if addr := config.AppConfig.Redis.Addr; addr != "" {
		if err := cache.Init(addr, config.AppConfig.Redis.Password, config.AppConfig.Redis.DB); err != nil {
			log.Printf("⚠️ Redis unavailable, running without cache: %v", err)
		}
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Provider notification hub
	notifHub := ws.NewHub()
	go notifHub.Run()
	routes.InitNotificationHub(notifHub)

	providerHandler := ws.NewProviderHandler(notifHub)
	router.GET("/ws/provider", providerHandler.HandleProvider)

	// API routes
	routes.Register(router)

	// Start background jobs
	cleanupJob := jobs.NewCodeCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	port := config.AppConfig.Server.Port

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
