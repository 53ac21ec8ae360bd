package core

import (
	"context"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/tools"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// DefaultCurrency is used when a country has no known currency
const DefaultCurrency = "USD"

type CountryInput struct {
	CountryCode string `json:"country_code" description:"ISO 3166-1 alpha-2 country code, e.g. JP"`
}

// CurrencyForCountry maps an ISO 3166-1 alpha-2 code to its ISO 4217 currency
func CurrencyForCountry(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return DefaultCurrency
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return DefaultCurrency
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return DefaultCurrency
	}
	return unit.String()
}

// RegisterCountryCurrency exposes CurrencyForCountry as core_get_currency.
// The agent pairs it with convert_currency when the destination is known
// but its currency is not.
func RegisterCountryCurrency(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	registry.Register(genkit.DefineTool(gk, "core_get_currency",
		"Returns the currency code for a given country code (ISO 3166-1 alpha-2).",
		func(ctx *ai.ToolContext, input *CountryInput) (string, error) {
			return CurrencyForCountry(input.CountryCode), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		countryCode, _ := args["country_code"].(string)
		return CurrencyForCountry(countryCode), nil
	})
}
