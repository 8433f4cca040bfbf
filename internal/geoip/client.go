// Package geoip looks up a visitor's country from a third-party IP
// geolocation service. The lookup is advisory: callers treat every failure,
// including the timeout, as "no opinion".
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

type lookupResponse struct {
	CountryCode string `json:"country_code"`
}

// NewClient builds a client against an ipapi-style endpoint. The timeout
// bounds the whole request; there are no retries.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CountryCode resolves the country for ip, or for the caller's own address
// when ip is empty. Returns an ISO 3166-1 alpha-2 code.
func (c *Client) CountryCode(ctx context.Context, ip string) (string, error) {
	url := c.endpoint + "/json/"
	if ip != "" {
		url = fmt.Sprintf("%s/%s/json/", c.endpoint, ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("geo lookup: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geo lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geo lookup: unexpected status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geo lookup: %w", err)
	}
	if body.CountryCode == "" {
		return "", fmt.Errorf("geo lookup: response has no country code")
	}
	return body.CountryCode, nil
}
