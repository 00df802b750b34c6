package models

// Coordinates is a (latitude, longitude) pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CitySuggestion is a place resolved by the geocoding provider. It is never
// persisted; suggestions live for the duration of one lookup (plus an optional
// short-lived cache entry).
type CitySuggestion struct {
	City        string  `json:"city"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	CountryCode *string `json:"countryCode"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Label       string  `json:"label"`
}

// Coordinates returns the suggestion's coordinate pair.
func (s *CitySuggestion) Coordinates() Coordinates {
	return Coordinates{Lat: s.Lat, Lon: s.Lon}
}
