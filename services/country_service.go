package services

import (
	"errors"
	"time"

	"github.com/Deglobeal/countrys-api/models"
	"gorm.io/gorm"
)

// Sort orders accepted by ListCountries. Anything else falls back to
// name ascending.
const (
	SortGDPDesc        = "gdp_desc"
	SortGDPAsc         = "gdp_asc"
	SortPopulationDesc = "population_desc"
	SortPopulationAsc  = "population_asc"
)

// CountryFilter narrows and orders a ListCountries query. Zero values
// mean "no constraint"; Limit is not capped here, callers must cap it.
type CountryFilter struct {
	Region   string
	Currency string
	Sort     string
	Skip     int
	Limit    int
}

// ListCountries returns countries matching the filter. Region and
// currency matches are case-insensitive.
func ListCountries(database *gorm.DB, filter CountryFilter) ([]models.Country, error) {
	query := database.Model(&models.Country{})

	if filter.Region != "" {
		query = query.Where("LOWER(region) = LOWER(?)", filter.Region)
	}
	if filter.Currency != "" {
		query = query.Where("LOWER(currency_code) = LOWER(?)", filter.Currency)
	}

	// NULLS modifiers keep sqlite and postgres agreeing on where
	// absent GDP rows land.
	switch filter.Sort {
	case SortGDPDesc:
		query = query.Order("estimated_gdp DESC NULLS LAST")
	case SortGDPAsc:
		query = query.Order("estimated_gdp ASC NULLS FIRST")
	case SortPopulationDesc:
		query = query.Order("population DESC")
	case SortPopulationAsc:
		query = query.Order("population ASC")
	default:
		query = query.Order("name ASC")
	}

	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var countries []models.Country
	if err := query.Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// GetCountryByName looks a country up by its name, case-insensitively.
// Returns gorm.ErrRecordNotFound when absent.
func GetCountryByName(database *gorm.DB, name string) (*models.Country, error) {
	var country models.Country
	if err := database.Where("LOWER(name) = LOWER(?)", name).First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// CreateCountry inserts a new record. The unique index on name rejects
// duplicates.
func CreateCountry(database *gorm.DB, country *models.Country) error {
	return database.Create(country).Error
}

// UpdateCountry applies a partial update to the named record and
// returns the refreshed row. Returns gorm.ErrRecordNotFound when no
// record matches.
func UpdateCountry(database *gorm.DB, name string, patch models.CountryPatch) (*models.Country, error) {
	updates := patch.Updates()
	if len(updates) == 0 {
		return GetCountryByName(database, name)
	}

	result := database.Model(&models.Country{}).
		Where("LOWER(name) = LOWER(?)", name).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return GetCountryByName(database, name)
}

// DeleteCountry removes the named record. Reports whether anything was
// deleted.
func DeleteCountry(database *gorm.DB, name string) (bool, error) {
	result := database.Where("LOWER(name) = LOWER(?)", name).Delete(&models.Country{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountCountries returns the total number of records.
func CountCountries(database *gorm.DB) (int64, error) {
	var count int64
	if err := database.Model(&models.Country{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LatestRefreshTime returns the most recent refresh timestamp across
// all records, or nil for an empty table.
func LatestRefreshTime(database *gorm.DB) (*time.Time, error) {
	var country models.Country
	err := database.Order("last_refreshed_at DESC").First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &country.LastRefreshedAt, nil
}
