package handlers

import (
	"net/http"
	"os"

	"github.com/Deglobeal/countrys-api/config"
	"github.com/Deglobeal/countrys-api/db"
	"github.com/Deglobeal/countrys-api/services"
	"github.com/labstack/echo/v4"
)

// StatusHandler reports aggregate table state
// GET /status
func StatusHandler(c echo.Context) error {
	total, err := services.CountCountries(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch status"})
	}

	last, err := services.LatestRefreshTime(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch status"})
	}

	return c.JSON(http.StatusOK, StatusResponse{
		TotalCountries:  total,
		LastRefreshedAt: last,
	})
}

// SummaryImageHandler serves the generated summary artifact
// GET /countries/image
func SummaryImageHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	if _, err := os.Stat(cfg.CachePath); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Summary image not found"})
	}

	return c.File(cfg.CachePath)
}
