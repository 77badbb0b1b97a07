package handlers

import (
	"errors"
	"net/http"

	"github.com/Deglobeal/countrys-api/config"
	"github.com/Deglobeal/countrys-api/db"
	"github.com/Deglobeal/countrys-api/services"
	"github.com/labstack/echo/v4"
)

// RefreshCountriesHandler runs the full fetch/merge/upsert/render
// pipeline
// POST /countries/refresh
func RefreshCountriesHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	client := services.NewExternalAPIClient(cfg)
	result, err := services.RefreshCountries(db.DB, client, cfg.CachePath)
	if err != nil {
		if errors.Is(err, services.ErrUpstreamUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error:   "External data source unavailable",
				Details: err.Error(),
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to refresh countries",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, RefreshResponse{
		Message:            "Countries data refreshed successfully",
		CountriesProcessed: result.CountriesProcessed,
		Timestamp:          result.Timestamp,
	})
}
