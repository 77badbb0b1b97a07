package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Deglobeal/countrys-api/config"
)

// ErrUpstreamUnavailable marks a failed external fetch. The refresh
// endpoint maps it to a 503.
var ErrUpstreamUnavailable = errors.New("external data source unavailable")

// CountryEntry is one record from the country directory API.
type CountryEntry struct {
	Name       string          `json:"name"`
	Capital    string          `json:"capital"`
	Region     string          `json:"region"`
	Population int64           `json:"population"`
	Flag       string          `json:"flag"`
	Currencies []CurrencyEntry `json:"currencies"`
}

type CurrencyEntry struct {
	Code string `json:"code"`
}

// exchangeRatesResponse is the rate API body. Result carries an
// in-band success flag alongside the HTTP status.
type exchangeRatesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// ExternalAPIClient calls the two upstream sources. Each call is a
// single attempt bounded by the configured timeout; there are no
// retries.
type ExternalAPIClient struct {
	countriesURL string
	exchangeURL  string
	client       *http.Client
}

func NewExternalAPIClient(cfg *config.Config) *ExternalAPIClient {
	return &ExternalAPIClient{
		countriesURL: cfg.CountriesAPIURL,
		exchangeURL:  cfg.ExchangeAPIURL,
		client:       &http.Client{Timeout: cfg.FetchTimeout},
	}
}

// FetchCountries retrieves the country directory.
func (a *ExternalAPIClient) FetchCountries() ([]CountryEntry, error) {
	resp, err := a.client.Get(a.countriesURL)
	if err != nil {
		return nil, fmt.Errorf("%w: countries API: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: countries API returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var entries []CountryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: failed to decode countries response: %v", ErrUpstreamUnavailable, err)
	}

	return entries, nil
}

// FetchExchangeRates retrieves the USD-relative rate table. A reported
// failure in the body is treated the same as a transport failure.
func (a *ExternalAPIClient) FetchExchangeRates() (map[string]float64, error) {
	resp, err := a.client.Get(a.exchangeURL)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange rates API: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: exchange rates API returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body exchangeRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode exchange rates response: %v", ErrUpstreamUnavailable, err)
	}

	if body.Result != "success" {
		return nil, fmt.Errorf("%w: exchange rates API reported result %q", ErrUpstreamUnavailable, body.Result)
	}

	return body.Rates, nil
}
