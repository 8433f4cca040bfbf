// Package offer implements the token codec that carries a selected flight
// offer across the navigation boundary as a single URL-safe value.
package offer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/naturalclinic/flightbooking/internal/domain"
)

// ErrMalformed is returned for any token that cannot be turned into a
// well-formed offer: unparseable encoding, invalid JSON, or JSON that decodes
// to the wrong shape. Consumers must treat all three identically.
var ErrMalformed = errors.New("malformed offer token")

// Encode serializes the offer to percent-encoded JSON. The result is safe to
// place in a query parameter and round-trips every field through Decode.
func Encode(o *domain.FlightOffer) (string, error) {
	if o == nil {
		return "", fmt.Errorf("encode offer: nil offer")
	}
	if err := Validate(o); err != nil {
		return "", fmt.Errorf("encode offer: %w", err)
	}
	data, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("encode offer: %w", err)
	}
	return url.QueryEscape(string(data)), nil
}

// Decode is the inverse of Encode. A token that decodes to a structurally
// invalid offer is just as malformed as one that does not parse at all.
func Decode(token string) (*domain.FlightOffer, error) {
	if token == "" {
		return nil, fmt.Errorf("decode offer: empty token: %w", ErrMalformed)
	}
	raw, err := url.QueryUnescape(token)
	if err != nil {
		return nil, fmt.Errorf("decode offer: %v: %w", err, ErrMalformed)
	}

	var o domain.FlightOffer
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return nil, fmt.Errorf("decode offer: %v: %w", err, ErrMalformed)
	}
	if err := Validate(&o); err != nil {
		return nil, fmt.Errorf("decode offer: %v: %w", err, ErrMalformed)
	}
	return &o, nil
}

// Validate checks the structural invariants every offer in the system relies
// on. It is applied both when decoding tokens and when parsing upstream
// search responses, so offers are validated exactly once per entry path.
func Validate(o *domain.FlightOffer) error {
	if len(o.Itineraries) == 0 {
		return errors.New("offer has no itineraries")
	}
	for i, it := range o.Itineraries {
		if len(it.Segments) == 0 {
			return fmt.Errorf("itinerary %d has no segments", i)
		}
		for j, seg := range it.Segments {
			if seg.Departure.IATACode == "" || seg.Arrival.IATACode == "" {
				return fmt.Errorf("itinerary %d segment %d is missing airport codes", i, j)
			}
			if seg.Departure.At == "" || seg.Arrival.At == "" {
				return fmt.Errorf("itinerary %d segment %d is missing timestamps", i, j)
			}
		}
	}
	if o.Price.Total == "" || o.Price.Currency == "" {
		return errors.New("offer is missing price information")
	}
	return nil
}
