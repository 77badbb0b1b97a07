package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Deglobeal/countrys-api/config"
	"github.com/Deglobeal/countrys-api/models"
	"github.com/stretchr/testify/assert"
)

func stubJSONServer(t *testing.T, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const stubCountriesBody = `[
	{"name":"Nigeria","capital":"Abuja","region":"Africa","population":200000000,"flag":"https://flags.example/ng.svg","currencies":[{"code":"NGN"}]},
	{"name":"Utopia","capital":"Nowhere","region":"Fiction","population":1000000,"currencies":[]},
	{"name":"Atlantis","region":"Fiction","population":500000,"currencies":[{"code":"ATL"}]}
]`

const stubRatesBody = `{"result":"success","rates":{"NGN":1600.5,"USD":1.0}}`

func refreshConfig(t *testing.T, countriesURL, ratesURL string) *config.Config {
	return &config.Config{
		Environment:     "test",
		CountriesAPIURL: countriesURL,
		ExchangeAPIURL:  ratesURL,
		FetchTimeout:    5 * time.Second,
		CachePath:       filepath.Join(t.TempDir(), "summary.png"),
	}
}

func TestRefreshCountriesHandler(t *testing.T) {
	database := setupTestDB(t)
	countriesSrv := stubJSONServer(t, stubCountriesBody)
	ratesSrv := stubJSONServer(t, stubRatesBody)
	cfg := refreshConfig(t, countriesSrv.URL, ratesSrv.URL)

	t.Run("Processes every entry and writes the artifact", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/countries/refresh", nil)
		c.Set("config", cfg)

		start := time.Now().UTC()
		err := RefreshCountriesHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp RefreshResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Countries data refreshed successfully", resp.Message)
		assert.Equal(t, 3, resp.CountriesProcessed)
		assert.False(t, resp.Timestamp.Before(start))

		var countries []models.Country
		assert.NoError(t, database.Order("name ASC").Find(&countries).Error)
		assert.Len(t, countries, 3)

		// Atlantis: currency known, no rate for it
		assert.Equal(t, "ATL", *countries[0].CurrencyCode)
		assert.Nil(t, countries[0].ExchangeRate)
		assert.Nil(t, countries[0].EstimatedGDP)

		// Nigeria: rate known, GDP lands in the multiplier range
		assert.Equal(t, 1600.5, *countries[1].ExchangeRate)
		if assert.NotNil(t, countries[1].EstimatedGDP) {
			low := 200_000_000 * 1000.0 / 1600.5
			high := 200_000_000 * 2000.0 / 1600.5
			assert.GreaterOrEqual(t, *countries[1].EstimatedGDP, low)
			assert.LessOrEqual(t, *countries[1].EstimatedGDP, high)
		}

		// Utopia: no currency at all, GDP stays absent
		assert.Nil(t, countries[2].CurrencyCode)
		assert.Nil(t, countries[2].EstimatedGDP)

		info, err := os.Stat(cfg.CachePath)
		assert.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("Second refresh keeps one record per name", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/countries/refresh", nil)
		c.Set("config", cfg)

		err := RefreshCountriesHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var count int64
		database.Model(&models.Country{}).Count(&count)
		assert.Equal(t, int64(3), count)
	})
}

func TestRefreshCountriesHandlerUpstreamFailures(t *testing.T) {
	t.Run("Countries API error returns 503", func(t *testing.T) {
		setupTestDB(t)
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(failing.Close)
		ratesSrv := stubJSONServer(t, stubRatesBody)

		_, c, rec := setupEcho(http.MethodPost, "/countries/refresh", nil)
		c.Set("config", refreshConfig(t, failing.URL, ratesSrv.URL))

		err := RefreshCountriesHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "External data source unavailable", resp.Error)
		assert.NotEmpty(t, resp.Details)
	})

	t.Run("Reported failure in the rates body returns 503", func(t *testing.T) {
		database := setupTestDB(t)
		countriesSrv := stubJSONServer(t, stubCountriesBody)
		badRates := stubJSONServer(t, `{"result":"error","rates":{}}`)

		_, c, rec := setupEcho(http.MethodPost, "/countries/refresh", nil)
		c.Set("config", refreshConfig(t, countriesSrv.URL, badRates.URL))

		err := RefreshCountriesHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		// Nothing was upserted
		var count int64
		database.Model(&models.Country{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}
