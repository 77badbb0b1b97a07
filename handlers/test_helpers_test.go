package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Deglobeal/countrys-api/config"
	"github.com/Deglobeal/countrys-api/db"
	"github.com/Deglobeal/countrys-api/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.Country{})
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment: "test",
	})

	return e, c, rec
}

func stringToPtr(s string) *string {
	return &s
}

func floatToPtr(f float64) *float64 {
	return &f
}

func seedCountry(t *testing.T, database *gorm.DB, name, region, currency string, population int64, gdp *float64) *models.Country {
	country := &models.Country{
		Name:            name,
		Population:      population,
		EstimatedGDP:    gdp,
		LastRefreshedAt: time.Now().UTC(),
	}
	if region != "" {
		country.Region = stringToPtr(region)
	}
	if currency != "" {
		country.CurrencyCode = stringToPtr(currency)
	}
	assert.NoError(t, database.Create(country).Error)
	return country
}
