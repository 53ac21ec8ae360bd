package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

func kelvin(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "K"
}

func describe(conds []Condition) string {
	if len(conds) == 0 {
		return "N/A"
	}
	return conds[0].Description
}

// FormatCurrent renders a current weather report. Times use the city's own offset.
func FormatCurrent(w *CurrentResponse) string {
	zone := time.FixedZone("", w.Timezone)
	country := w.Sys.Country
	if country == "" {
		country = "N/A"
	}

	lines := []string{
		"Current Weather Report",
		strings.Repeat("=", 40),
		fmt.Sprintf("Location: %s, %s", w.Name, country),
		fmt.Sprintf("Temperature: %s (Feels like: %s)", kelvin(w.Main.Temp), kelvin(w.Main.FeelsLike)),
		fmt.Sprintf("Conditions: %s", titleCaser.String(describe(w.Weather))),
		fmt.Sprintf("Humidity: %d%%", w.Main.Humidity),
		fmt.Sprintf("Wind: %s m/s", strconv.FormatFloat(w.Wind.Speed, 'f', -1, 64)),
		fmt.Sprintf("Cloudiness: %d%%", w.Clouds.All),
		fmt.Sprintf("Sunrise: %s Sunset: %s",
			time.Unix(w.Sys.Sunrise, 0).In(zone).Format("15:04"),
			time.Unix(w.Sys.Sunset, 0).In(zone).Format("15:04")),
	}
	return strings.Join(lines, "\n")
}

type dayForecast struct {
	date  time.Time
	items []ForecastItem
}

// groupByDay buckets forecast slots by local calendar day, keeping API order
func groupByDay(items []ForecastItem, zone *time.Location) []dayForecast {
	var days []dayForecast
	index := map[string]int{}
	for _, item := range items {
		local := time.Unix(item.Dt, 0).In(zone)
		key := local.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, dayForecast{date: local})
		}
		days[i].items = append(days[i].items, item)
	}
	return days
}

// mostCommon returns the most frequent description; ties go to the earliest
func mostCommon(items []ForecastItem) string {
	counts := map[string]int{}
	best, bestCount := "", 0
	for _, item := range items {
		d := describe(item.Weather)
		counts[d]++
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

// FormatForecast renders up to days local days, each with its range, dominant
// condition and the first four time points
func FormatForecast(f *ForecastResponse, days int) string {
	zone := time.FixedZone("", f.City.Timezone)

	result := []string{
		fmt.Sprintf("%d-Day Weather Forecast for %s, %s", days, f.City.Name, f.City.Country),
		strings.Repeat("=", 60),
	}

	grouped := groupByDay(f.List, zone)
	if len(grouped) > days {
		grouped = grouped[:days]
	}

	for _, day := range grouped {
		low, high := day.items[0].Main.Temp, day.items[0].Main.Temp
		for _, item := range day.items[1:] {
			if item.Main.Temp < low {
				low = item.Main.Temp
			}
			if item.Main.Temp > high {
				high = item.Main.Temp
			}
		}

		result = append(result,
			fmt.Sprintf("\n%s (%s)", day.date.Format("Monday"), day.date.Format("2006-01-02")),
			fmt.Sprintf("   %.1fK - %.1fK", low, high),
			fmt.Sprintf("   %s", titleCaser.String(mostCommon(day.items))),
			"   Hourly:",
		)

		points := day.items
		if len(points) > 4 {
			points = points[:4]
		}
		for _, item := range points {
			result = append(result, fmt.Sprintf("      %s: %.1fK, %s",
				time.Unix(item.Dt, 0).In(zone).Format("15:04"), item.Main.Temp, describe(item.Weather)))
		}
	}

	return strings.Join(result, "\n")
}

// clampDays keeps the forecast within what the free API serves
func clampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > 5 {
		return 5
	}
	return days
}
