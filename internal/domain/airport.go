package domain

// Airport is the data contract of the airport autocomplete; only the shape is
// owned here, the data comes from the upstream backend.
type Airport struct {
	IATACode    string `json:"iataCode"`
	Name        string `json:"name"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
}
