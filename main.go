package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := LoadConfig()

	// Initialize database
	db, err := InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := RunMigrations(cfg); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize services
	loc := loadLocation(cfg.Timezone)
	identity := NewIdentityProvider()
	deviceService := NewDeviceService(db)
	checkinService := NewCheckinService(db, deviceService, loc)
	adminService := NewAdminService(db, deviceService, loc)

	// Setup router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.AllowedOrigins}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, deviceIDHeader)
	router.Use(cors.New(corsConfig))

	// Device-facing flows: registration and daily check-in
	api := router.Group("/api/v1", DeviceIdentity(identity))
	{
		api.GET("/session", checkinService.Session)
		api.POST("/devices", deviceService.Register)
		api.PUT("/devices/nickname", deviceService.UpdateNickname)
		api.GET("/checkin/today", checkinService.Today)
		api.POST("/checkin", checkinService.Submit)
	}

	// Admin flow, gated by the device's isadmin flag
	admin := api.Group("/admin", adminService.RequireAdmin())
	{
		admin.GET("/checkins", adminService.ListCheckins)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
