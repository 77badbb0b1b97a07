package handlers

import (
	"net/http"
	"time"

	"github.com/Deglobeal/countrys-api/db"
	"github.com/labstack/echo/v4"
)

const serviceName = "Country Currency & Exchange API"

// RootHandler returns the service descriptor
// GET /
func RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": serviceName,
		"version": "1.0.0",
		"status":  "running",
		"endpoints": map[string]string{
			"refresh":        "POST /countries/refresh",
			"get_countries":  "GET /countries",
			"get_country":    "GET /countries/{name}",
			"delete_country": "DELETE /countries/{name}",
			"status":         "GET /status",
			"image":          "GET /countries/image",
		},
		"timestamp": time.Now().UTC(),
	})
}

// HealthHandler reports liveness and datastore connectivity
// GET /health
func HealthHandler(c echo.Context) error {
	dbStatus := "connected"
	if err := db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  dbStatus,
		"service":   serviceName,
		"timestamp": time.Now().UTC(),
	})
}
