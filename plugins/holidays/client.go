// Package holidays looks up public holidays and long weekends from Nager.Date.
package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/tools"
	"golang.org/x/text/language"
)

const BaseURL = "https://date.nager.at/api/v3"

// Client handles Nager.Date API requests
type Client struct {
	BaseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a Nager.Date client and registers its tools
func NewClient(timeout time.Duration, gk *genkit.Genkit, registry *tools.Registry) *Client {
	c := &Client{
		BaseURL:    BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
	c.registerTools(gk, registry)
	return c
}

// Holiday represents a public holiday from Nager.Date API
type Holiday struct {
	Date      string   `json:"date"`
	LocalName string   `json:"localName"`
	Name      string   `json:"name"`
	Global    bool     `json:"global"`
	Counties  []string `json:"counties"`
	Types     []string `json:"types"`
}

// LongWeekend represents a long weekend from Nager.Date API
type LongWeekend struct {
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	DayCount      int    `json:"dayCount"`
	NeedBridgeDay bool   `json:"needBridgeDay"`
}

// APIError is a non-200 answer from Nager.Date
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusNotFound {
		return "country not supported by the holiday calendar"
	}
	return fmt.Sprintf("holiday API request failed with status %d", e.StatusCode)
}

// ParseCountry validates an ISO 3166 alpha-2 country code
func ParseCountry(code string) (string, error) {
	region, err := language.ParseRegion(strings.TrimSpace(code))
	if err != nil || !region.IsCountry() || len(strings.TrimSpace(code)) != 2 {
		return "", fmt.Errorf("invalid country code %q", code)
	}
	return region.String(), nil
}

func (c *Client) year(year int) int {
	if year <= 0 {
		return c.now().Year()
	}
	return year
}

// PublicHolidays returns public holidays for a country and year. A zero year means this year.
func (c *Client) PublicHolidays(ctx context.Context, year int, country string) ([]Holiday, error) {
	country, err := ParseCountry(country)
	if err != nil {
		return nil, err
	}
	year = c.year(year)

	var holidays []Holiday
	path := fmt.Sprintf("/PublicHolidays/%d/%s", year, country)
	if err := c.get(ctx, path, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

// LongWeekends returns long weekends for a country and year. A zero year means this year.
func (c *Client) LongWeekends(ctx context.Context, year int, country string) ([]LongWeekend, error) {
	country, err := ParseCountry(country)
	if err != nil {
		return nil, err
	}
	year = c.year(year)

	var weekends []LongWeekend
	path := fmt.Sprintf("/LongWeekend/%d/%s", year, country)
	if err := c.get(ctx, path, &weekends); err != nil {
		return nil, err
	}
	return weekends, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	log.Debugf(ctx, "[Holidays] GET %s", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach holiday API: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return nil
	default:
		return &APIError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
