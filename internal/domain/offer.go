package domain

// FlightOffer is the typed form of an offer returned by the upstream search
// backend. It is validated once at the boundary and treated as an immutable
// value from then on; timestamps and amounts stay strings so that a decoded
// offer reproduces the upstream payload exactly.
type FlightOffer struct {
	ID          string      `json:"id"`
	OneWay      bool        `json:"oneWay,omitempty"`
	Itineraries []Itinerary `json:"itineraries"`
	Price       Price       `json:"price"`
	Seats       int         `json:"numberOfBookableSeats,omitempty"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number,omitempty"`
	Duration    string   `json:"duration,omitempty"`
}

type Endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// Price amounts are decimal strings as delivered by the backend, e.g. "285.00".
type Price struct {
	Base     string `json:"base"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}
