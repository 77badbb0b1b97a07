package handlers

import "time"

// ErrorResponse is the flat error body every endpoint uses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RefreshResponse is the success body of POST /countries/refresh.
type RefreshResponse struct {
	Message            string    `json:"message"`
	CountriesProcessed int       `json:"countries_processed"`
	Timestamp          time.Time `json:"timestamp"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}
