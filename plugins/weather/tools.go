package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/metrics"
	"github.com/va6996/travelscout/tools"
)

type CurrentInput struct {
	Place string `json:"place" description:"City name and optional country code, e.g. 'London' or 'London,uk'"`
}

type ForecastInput struct {
	City string `json:"city" description:"City name and optional country code"`
	Days int    `json:"days,omitempty" description:"Number of days to forecast (1-5, default: 3)"`
}

// CurrentWeather returns a report or an error description; it never fails
func (c *Client) CurrentWeather(ctx context.Context, place string) string {
	start := time.Now()
	log.Infof(ctx, "[Weather] get_current_weather(%s)", place)

	w, err := c.Current(ctx, strings.TrimSpace(place))
	metrics.RecordToolCall("get_current_weather", time.Since(start).Seconds(), err)
	if err != nil {
		log.Warnf(ctx, "[Weather] Current weather failed for %s: %v", place, err)
		return fmt.Sprintf("Error getting weather for %s: %v", place, err)
	}
	return FormatCurrent(w)
}

// WeatherForecast returns a per-day forecast or an error description
func (c *Client) WeatherForecast(ctx context.Context, city string, days int) string {
	start := time.Now()
	days = clampDays(days)
	log.Infof(ctx, "[Weather] get_weather_forecast(%s, %d)", city, days)

	f, err := c.Forecast(ctx, strings.TrimSpace(city), days)
	metrics.RecordToolCall("get_weather_forecast", time.Since(start).Seconds(), err)
	if err != nil {
		log.Warnf(ctx, "[Weather] Forecast failed for %s: %v", city, err)
		return fmt.Sprintf("Error getting forecast for %s: %v", city, err)
	}
	if len(f.List) == 0 {
		return fmt.Sprintf("Could not fetch forecast for %s", city)
	}
	return FormatForecast(f, days)
}

func (c *Client) registerTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	registry.Register(genkit.DefineTool(gk, "get_current_weather", "Get detailed current weather for a specific location",
		func(ctx *ai.ToolContext, input *CurrentInput) (string, error) {
			if input == nil {
				return "", fmt.Errorf("place is required")
			}
			return c.CurrentWeather(ctx, input.Place), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		place, ok := args["place"].(string)
		if !ok || place == "" {
			return nil, fmt.Errorf("place is required and must be a string")
		}
		return c.CurrentWeather(ctx, place), nil
	})

	registry.Register(genkit.DefineTool(gk, "get_weather_forecast", "Get detailed weather forecast for a city",
		func(ctx *ai.ToolContext, input *ForecastInput) (string, error) {
			if input == nil {
				return "", fmt.Errorf("city is required")
			}
			days := input.Days
			if days == 0 {
				days = 3
			}
			return c.WeatherForecast(ctx, input.City, days), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		city, ok := args["city"].(string)
		if !ok || city == "" {
			return nil, fmt.Errorf("city is required and must be a string")
		}
		days := 3
		if d, ok := args["days"].(float64); ok {
			days = int(d)
		}
		return c.WeatherForecast(ctx, city, days), nil
	})

	log.Info(context.Background(), "[Weather] Registered tools: get_current_weather, get_weather_forecast")
}
