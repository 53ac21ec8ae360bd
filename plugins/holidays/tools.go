package holidays

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

type CalendarInput struct {
	CountryCode string `json:"country_code" description:"ISO 3166 alpha-2 country code, e.g. 'FR' or 'JP'"`
	Year        int    `json:"year,omitempty" description:"Year, e.g. 2025 (default: current year)"`
}

// PublicHolidaysText renders the holidays of a country for a year
func (c *Client) PublicHolidaysText(ctx context.Context, year int, country string) string {
	start := time.Now()
	holidays, err := c.PublicHolidays(ctx, year, country)
	metrics.RecordToolCall("get_public_holidays", time.Since(start).Seconds(), err)
	if err != nil {
		log.Warnf(ctx, "[Holidays] Public holidays for %s failed: %v", country, err)
		return fmt.Sprintf("Error getting public holidays for %s: %v", country, err)
	}

	code := strings.ToUpper(strings.TrimSpace(country))
	year = c.year(year)
	if len(holidays) == 0 {
		return fmt.Sprintf("No public holidays found for %s in %d", code, year)
	}

	lines := []string{fmt.Sprintf("Public Holidays in %s (%d):", code, year), strings.Repeat("=", 40)}
	for _, h := range holidays {
		line := fmt.Sprintf("- %s %s: %s", h.Date, weekday(h.Date), h.Name)
		if h.LocalName != "" && h.LocalName != h.Name {
			line += fmt.Sprintf(" (%s)", h.LocalName)
		}
		if !h.Global && len(h.Counties) > 0 {
			line += " [regional]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// LongWeekendsText renders the long weekends of a country for a year
func (c *Client) LongWeekendsText(ctx context.Context, year int, country string) string {
	start := time.Now()
	weekends, err := c.LongWeekends(ctx, year, country)
	metrics.RecordToolCall("get_long_weekends", time.Since(start).Seconds(), err)
	if err != nil {
		log.Warnf(ctx, "[Holidays] Long weekends for %s failed: %v", country, err)
		return fmt.Sprintf("Error getting long weekends for %s: %v", country, err)
	}

	code := strings.ToUpper(strings.TrimSpace(country))
	year = c.year(year)
	if len(weekends) == 0 {
		return fmt.Sprintf("No long weekends found for %s in %d", code, year)
	}

	lines := []string{fmt.Sprintf("Long Weekends in %s (%d):", code, year), strings.Repeat("=", 40)}
	for _, w := range weekends {
		line := fmt.Sprintf("- %s to %s: %d days", w.StartDate, w.EndDate, w.DayCount)
		if w.NeedBridgeDay {
			line += " (needs a bridge day)"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func weekday(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

func calendarArgs(args map[string]interface{}) (string, int, error) {
	country, ok := args["country_code"].(string)
	if !ok {
		return "", 0, fmt.Errorf("country_code is required and must be a string")
	}
	year := 0
	if y, ok := args["year"].(float64); ok {
		year = int(y)
	}
	return country, year, nil
}

func (c *Client) registerTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	registry.Register(genkit.DefineTool(gk, "get_public_holidays",
		"Returns public holidays for a country and year. Useful to know when shops and sights may be closed.",
		func(ctx *ai.ToolContext, input *CalendarInput) (string, error) {
			if input == nil {
				return "", fmt.Errorf("country_code is required")
			}
			return c.PublicHolidaysText(ctx, input.Year, input.CountryCode), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		country, year, err := calendarArgs(args)
		if err != nil {
			return nil, err
		}
		return c.PublicHolidaysText(ctx, year, country), nil
	})

	registry.Register(genkit.DefineTool(gk, "get_long_weekends",
		"Returns long weekends for a country and year, when local travel is busiest.",
		func(ctx *ai.ToolContext, input *CalendarInput) (string, error) {
			if input == nil {
				return "", fmt.Errorf("country_code is required")
			}
			return c.LongWeekendsText(ctx, input.Year, input.CountryCode), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		country, year, err := calendarArgs(args)
		if err != nil {
			return nil, err
		}
		return c.LongWeekendsText(ctx, year, country), nil
	})

	log.Info(context.Background(), "[Holidays] Registered tools: get_public_holidays, get_long_weekends")
}
