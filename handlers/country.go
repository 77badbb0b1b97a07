package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Deglobeal/countrys-api/db"
	"github.com/Deglobeal/countrys-api/models"
	"github.com/Deglobeal/countrys-api/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// maxListLimit caps what a single list request can return. The
// repository layer does not enforce one.
const maxListLimit = 1000

// GetCountriesHandler lists countries with optional filtering and
// sorting
// GET /countries?region=&currency=&sort=&skip=&limit=
func GetCountriesHandler(c echo.Context) error {
	filter := services.CountryFilter{
		Region:   c.QueryParam("region"),
		Currency: c.QueryParam("currency"),
		Sort:     c.QueryParam("sort"),
		Limit:    maxListLimit,
	}

	if v := c.QueryParam("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Skip = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < maxListLimit {
			filter.Limit = n
		}
	}

	countries, err := services.ListCountries(db.DB, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch countries"})
	}

	if countries == nil {
		countries = []models.Country{}
	}
	return c.JSON(http.StatusOK, countries)
}

// GetCountryHandler returns a single country by name
// GET /countries/:name
func GetCountryHandler(c echo.Context) error {
	country, err := services.GetCountryByName(db.DB, pathName(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Country not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch country"})
	}
	return c.JSON(http.StatusOK, country)
}

// DeleteCountryHandler removes a country by name
// DELETE /countries/:name
func DeleteCountryHandler(c echo.Context) error {
	name := pathName(c)

	deleted, err := services.DeleteCountry(db.DB, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete country"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Country not found"})
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Country %s deleted successfully", name),
	})
}

// pathName extracts the country name path param, tolerating
// percent-encoded names like "United%20States".
func pathName(c echo.Context) string {
	raw := c.Param("name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
