package models

import (
	"time"

	"gorm.io/gorm"
)

// Country is the single persisted entity: one row per country name,
// overwritten in place on every refresh. Name is the natural key for
// lookups, deletes and upserts.
type Country struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Capital         *string   `gorm:"size:255" json:"capital"`
	Region          *string   `gorm:"size:255;index" json:"region"`
	Population      int64     `gorm:"not null" json:"population"`
	CurrencyCode    *string   `gorm:"size:10" json:"currency_code"`
	ExchangeRate    *float64  `json:"exchange_rate"`    // units of local currency per USD
	EstimatedGDP    *float64  `json:"estimated_gdp"`    // derived, absent without a positive rate
	FlagURL         *string   `gorm:"type:text" json:"flag_url"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// BeforeCreate hook to default the refresh timestamp
func (c *Country) BeforeCreate(tx *gorm.DB) error {
	if c.LastRefreshedAt.IsZero() {
		c.LastRefreshedAt = time.Now().UTC()
	}
	return nil
}

// TableName specifies the table name
func (Country) TableName() string {
	return "countries"
}

// CountryPatch enumerates the fields a partial update may overwrite.
// Nil fields are left untouched.
type CountryPatch struct {
	Capital         *string
	Region          *string
	Population      *int64
	CurrencyCode    *string
	ExchangeRate    *float64
	EstimatedGDP    *float64
	FlagURL         *string
	LastRefreshedAt *time.Time
}

// Updates returns the set fields as a column map for gorm Updates.
func (p CountryPatch) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Capital != nil {
		updates["capital"] = *p.Capital
	}
	if p.Region != nil {
		updates["region"] = *p.Region
	}
	if p.Population != nil {
		updates["population"] = *p.Population
	}
	if p.CurrencyCode != nil {
		updates["currency_code"] = *p.CurrencyCode
	}
	if p.ExchangeRate != nil {
		updates["exchange_rate"] = *p.ExchangeRate
	}
	if p.EstimatedGDP != nil {
		updates["estimated_gdp"] = *p.EstimatedGDP
	}
	if p.FlagURL != nil {
		updates["flag_url"] = *p.FlagURL
	}
	if p.LastRefreshedAt != nil {
		updates["last_refreshed_at"] = *p.LastRefreshedAt
	}
	return updates
}
