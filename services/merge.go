package services

import (
	"math"
	"math/rand"
	"time"

	"github.com/Deglobeal/countrys-api/models"
)

// MergeCountry joins one directory entry with the fetched rate table and
// derives the estimated GDP. Pure except for the rng draw, which the
// caller injects so tests can seed it.
//
// Estimated GDP is intentionally noisy: the multiplier is redrawn from
// [1000, 2000) on every refresh, so only its range is stable.
func MergeCountry(entry CountryEntry, rates map[string]float64, rng *rand.Rand, now time.Time) models.Country {
	country := models.Country{
		Name:            entry.Name,
		Population:      entry.Population,
		LastRefreshedAt: now,
	}

	if v := entry.Capital; v != "" {
		country.Capital = &v
	}
	if v := entry.Region; v != "" {
		country.Region = &v
	}
	if v := entry.Flag; v != "" {
		country.FlagURL = &v
	}

	if len(entry.Currencies) == 0 || entry.Currencies[0].Code == "" {
		// No currency at all: GDP stays absent, never a zero sentinel.
		return country
	}

	code := entry.Currencies[0].Code
	country.CurrencyCode = &code

	rate, ok := rates[code]
	if !ok {
		return country
	}
	country.ExchangeRate = &rate

	if gdp, ok := estimateGDP(entry.Population, rate, rng); ok {
		country.EstimatedGDP = &gdp
	}

	return country
}

// estimateGDP computes population * uniform(1000, 2000) / rate rounded
// to one decimal place. Refuses non-positive rates.
func estimateGDP(population int64, rate float64, rng *rand.Rand) (float64, bool) {
	if rate <= 0 {
		return 0, false
	}
	multiplier := 1000 + rng.Float64()*1000
	gdp := float64(population) * multiplier / rate
	return math.Round(gdp*10) / 10, true
}
