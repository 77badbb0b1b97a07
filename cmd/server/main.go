package main

import (
	"log"

	"github.com/Deglobeal/countrys-api/config"
	"github.com/Deglobeal/countrys-api/db"
	"github.com/Deglobeal/countrys-api/handlers"
	"github.com/Deglobeal/countrys-api/models"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Country{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Routes
	e.GET("/", handlers.RootHandler)
	e.GET("/health", handlers.HealthHandler)
	e.GET("/status", handlers.StatusHandler)
	e.POST("/countries/refresh", handlers.RefreshCountriesHandler)
	e.GET("/countries", handlers.GetCountriesHandler)
	e.GET("/countries/image", handlers.SummaryImageHandler)
	e.GET("/countries/:name", handlers.GetCountryHandler)
	e.DELETE("/countries/:name", handlers.DeleteCountryHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
