package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/config"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/tools"
)

const BaseURL = "https://api.openweathermap.org/data/2.5"

// Client is an OpenWeatherMap client
type Client struct {
	apiKey     string
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client and registers its tools
func NewClient(apiKey string, timeout time.Duration, gk *genkit.Genkit, registry *tools.Registry) (*Client, error) {
	if err := config.RequireKey("weather", "OPENWEATHERMAP_API_KEY", apiKey); err != nil {
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

type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  int     `json:"humidity"`
}

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// CurrentResponse is the /weather payload
type CurrentResponse struct {
	Name     string      `json:"name"`
	Timezone int         `json:"timezone"`
	Main     Main        `json:"main"`
	Weather  []Condition `json:"weather"`
	Wind     struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

// ForecastItem is one 3-hour forecast slot
type ForecastItem struct {
	Dt      int64       `json:"dt"`
	Main    Main        `json:"main"`
	Weather []Condition `json:"weather"`
}

// ForecastResponse is the /forecast payload
type ForecastResponse struct {
	List []ForecastItem `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// APIError is returned for non-200 responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather API returned status %d: %s", e.StatusCode, e.Message)
}

// Current fetches the current weather for a place ("London" or "London,uk")
func (c *Client) Current(ctx context.Context, place string) (*CurrentResponse, error) {
	var resp CurrentResponse
	if err := c.get(ctx, "/weather", url.Values{"q": {place}}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Forecast fetches days*8 three-hour forecast slots
func (c *Client) Forecast(ctx context.Context, place string, days int) (*ForecastResponse, error) {
	params := url.Values{
		"q":   {place},
		"cnt": {strconv.Itoa(days * 8)},
	}
	var resp ForecastResponse
	if err := c.get(ctx, "/forecast", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("appid", c.apiKey)
	reqURL := c.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", transportError(err))
	}

	log.Debugf(ctx, "[Weather] GET %s q=%s", path, params.Get("q"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather API request failed: %w", transportError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		var apiErr struct {
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode weather response: %w", err)
	}
	return nil
}

// transportError drops the request URL from client errors; it carries the API key
func transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
