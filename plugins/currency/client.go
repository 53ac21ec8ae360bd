package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/config"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/tools"
	"golang.org/x/text/currency"
)

const BaseURL = "https://v6.exchangerate-api.com/v6"

// Client talks to exchangerate-api.com
type Client struct {
	apiKey     string
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a currency client and registers its tools
func NewClient(apiKey string, timeout time.Duration, gk *genkit.Genkit, registry *tools.Registry) (*Client, error) {
	if err := config.RequireKey("currency", "EXCHANGE_RATE_API_KEY", apiKey); err != nil {
		return nil, err
	}

	c := &Client{
		apiKey:     apiKey,
		BaseURL:    BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	c.registerTools(gk, registry)
	return c, nil
}

// APIError is an unsuccessful API result
type APIError struct {
	StatusCode int
	Type       string
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("exchange rate API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("exchange rate API error: %s", e.Type)
}

type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// ParseCode validates an ISO 4217 code
func ParseCode(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("invalid currency code %q", code)
	}
	return unit.String(), nil
}

// Rates returns the conversion table for base
func (c *Client) Rates(ctx context.Context, base string) (map[string]float64, error) {
	base, err := ParseCode(base)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, base)
}

func (c *Client) fetch(ctx context.Context, base string) (map[string]float64, error) {
	reqURL := fmt.Sprintf("%s/%s/latest/%s", c.BaseURL, c.apiKey, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", transportError(err))
	}

	log.Debugf(ctx, "[Currency] Fetching latest rates for %s", base)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", transportError(err))
	}
	defer resp.Body.Close()

	var body latestResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Type: body.ErrorType}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("invalid API response: %w", decodeErr)
	}
	if body.Result != "success" {
		errType := body.ErrorType
		if errType == "" {
			errType = "unknown-error"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Type: errType}
	}
	return body.ConversionRates, nil
}

// Convert returns amount in to and the effective rate
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (float64, float64, error) {
	if amount <= 0 {
		return 0, 0, fmt.Errorf("amount must be greater than 0")
	}
	to, err := ParseCode(to)
	if err != nil {
		return 0, 0, err
	}

	rates, err := c.Rates(ctx, from)
	if err != nil {
		return 0, 0, err
	}

	rate, ok := rates[to]
	if !ok {
		return 0, 0, fmt.Errorf("currency %s not found in exchange rates", to)
	}
	return amount * rate, rate, nil
}

// transportError drops the request URL from client errors; it carries the API key
func transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
