// Package upstream is the HTTP client for the external flight/airport
// backend. Responses are parsed into the typed domain schema here, exactly
// once, so nothing downstream handles untyped payloads.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/naturalclinic/flightbooking/internal/domain"
	"github.com/naturalclinic/flightbooking/internal/offer"
)

type SearchParams struct {
	OriginCode      string `form:"originCode"`
	DestinationCode string `form:"destinationCode"`
	DepartureDate   string `form:"departureDate"`
	ReturnDate      string `form:"returnDate"`
	TripType        string `form:"tripType"`
	Adults          int    `form:"adults"`
	Children        int    `form:"children"`
	Infants         int    `form:"infants"`
	CabinClass      string `form:"cabinClass"`
}

type API interface {
	SearchFlights(ctx context.Context, params SearchParams) ([]domain.FlightOffer, error)
	SearchAirports(ctx context.Context, query string) ([]domain.Airport, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Data []domain.FlightOffer `json:"data"`
}

type airportsResponse struct {
	Data []domain.Airport `json:"data"`
}

func (c *Client) SearchFlights(ctx context.Context, params SearchParams) ([]domain.FlightOffer, error) {
	q := url.Values{}
	q.Set("originCode", params.OriginCode)
	q.Set("destinationCode", params.DestinationCode)
	q.Set("departureDate", params.DepartureDate)
	q.Set("tripType", params.TripType)
	q.Set("adults", strconv.Itoa(params.Adults))
	if params.ReturnDate != "" {
		q.Set("returnDate", params.ReturnDate)
	}
	if params.Children > 0 {
		q.Set("children", strconv.Itoa(params.Children))
	}
	if params.Infants > 0 {
		q.Set("infants", strconv.Itoa(params.Infants))
	}
	if params.CabinClass != "" {
		q.Set("cabinClass", params.CabinClass)
	}

	var body searchResponse
	if err := c.getJSON(ctx, "/flights/search?"+q.Encode(), &body); err != nil {
		return nil, err
	}

	// Offers that do not satisfy the schema are dropped at the boundary so a
	// bad upstream record can never reach the booking flow.
	offers := make([]domain.FlightOffer, 0, len(body.Data))
	for i := range body.Data {
		if err := offer.Validate(&body.Data[i]); err != nil {
			log.Printf("drop invalid upstream offer %s: %v", body.Data[i].ID, err)
			continue
		}
		offers = append(offers, body.Data[i])
	}
	return offers, nil
}

func (c *Client) SearchAirports(ctx context.Context, query string) ([]domain.Airport, error) {
	q := url.Values{}
	q.Set("q", query)

	var body airportsResponse
	if err := c.getJSON(ctx, "/airports/search?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("upstream request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream request: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream response: %w", err)
	}
	return nil
}

var _ API = (*Client)(nil)
