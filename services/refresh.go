package services

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/Deglobeal/countrys-api/models"
	"gorm.io/gorm"
)

// summaryReadLimit bounds the read-back used to build the summary
// artifact.
const summaryReadLimit = 1000

// RefreshResult is what a successful refresh reports back.
type RefreshResult struct {
	CountriesProcessed int
	Timestamp          time.Time
}

// RefreshCountries runs the full pipeline: fetch both upstreams, merge
// per country, upsert by name, then regenerate the summary artifact.
// Either fetch failing aborts the whole refresh; once upserts begin
// there is no rollback. A rendering failure is logged, never surfaced.
func RefreshCountries(database *gorm.DB, client *ExternalAPIClient, imagePath string) (*RefreshResult, error) {
	countries, err := client.FetchCountries()
	if err != nil {
		return nil, err
	}

	rates, err := client.FetchExchangeRates()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	processed := 0
	for _, entry := range countries {
		if entry.Name == "" {
			log.Println("[REFRESH] Skipping directory entry with empty name")
			continue
		}

		merged := MergeCountry(entry, rates, rng, now)
		if err := UpsertCountry(database, merged); err != nil {
			return nil, err
		}
		processed++
	}

	log.Printf("[REFRESH] Upserted %d countries", processed)

	if err := RenderSummary(database, imagePath); err != nil {
		// Upserts are already committed; the artifact can catch up on
		// the next refresh.
		log.Printf("[REFRESH] Summary image generation failed: %v", err)
	}

	return &RefreshResult{
		CountriesProcessed: processed,
		Timestamp:          time.Now().UTC(),
	}, nil
}

// UpsertCountry matches by name (case-insensitive) and overwrites the
// record in place, or inserts it when absent.
func UpsertCountry(database *gorm.DB, merged models.Country) error {
	existing, err := GetCountryByName(database, merged.Name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CreateCountry(database, &merged)
	}
	if err != nil {
		return err
	}

	existing.Name = merged.Name
	existing.Capital = merged.Capital
	existing.Region = merged.Region
	existing.Population = merged.Population
	existing.CurrencyCode = merged.CurrencyCode
	existing.ExchangeRate = merged.ExchangeRate
	existing.EstimatedGDP = merged.EstimatedGDP
	existing.FlagURL = merged.FlagURL
	existing.LastRefreshedAt = merged.LastRefreshedAt

	// Save writes every column, including the ones that went absent.
	return database.Save(existing).Error
}

// RenderSummary reads the current table back and regenerates the
// summary artifact at path.
func RenderSummary(database *gorm.DB, path string) error {
	countries, err := ListCountries(database, CountryFilter{Sort: SortGDPDesc, Limit: summaryReadLimit})
	if err != nil {
		// Leave a placeholder behind so the image endpoint keeps
		// serving something.
		log.Printf("[IMAGE] Read-back failed, writing placeholder: %v", err)
		return writeAtomic(path, blankPixelPNG())
	}

	total, err := CountCountries(database)
	if err != nil {
		total = int64(len(countries))
	}

	var top []models.Country
	for _, c := range countries {
		if c.EstimatedGDP == nil {
			continue
		}
		top = append(top, c)
		if len(top) == summaryTopN {
			break
		}
	}

	lastRefresh := time.Now().UTC()
	if ts, err := LatestRefreshTime(database); err == nil && ts != nil {
		lastRefresh = *ts
	}

	return GenerateSummaryImage(path, total, top, lastRefresh)
}
