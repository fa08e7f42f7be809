package model

import (
	"time"
)

// LocationSuggestion is one autocomplete entry for a city.
type LocationSuggestion struct {
	Label    string `json:"label"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Context  string `json:"context"`
}

// CityFromCoordinates is the result of a reverse geocoding lookup.
type CityFromCoordinates struct {
	City     string `json:"city"`
	Postcode string `json:"postcode,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Position is a device location fix.
type Position struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}
