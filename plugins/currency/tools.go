package currency

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/metrics"
	"github.com/va6996/travelscout/tools"
)

// CommonCurrencies are always listed by ExchangeRates
var CommonCurrencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "INR"}

type RatesInput struct {
	BaseCurrency string `json:"base_currency,omitempty" description:"Base currency code (default: USD)"`
}

type ConvertInput struct {
	Amount       float64 `json:"amount" description:"The amount to convert (must be greater than 0)"`
	FromCurrency string  `json:"from_currency" description:"Source currency code, e.g. USD"`
	ToCurrency   string  `json:"to_currency" description:"Target currency code, e.g. INR"`
}

// ExchangeRates lists the common currencies against base
func (c *Client) ExchangeRates(ctx context.Context, base string) string {
	start := time.Now()
	if strings.TrimSpace(base) == "" {
		base = "USD"
	}
	base = strings.ToUpper(strings.TrimSpace(base))

	rates, err := c.Rates(ctx, base)
	metrics.RecordToolCall("get_exchange_rates", time.Since(start).Seconds(), err)
	if err != nil {
		log.Warnf(ctx, "[Currency] Rates for %s failed: %v", base, err)
		return fmt.Sprintf("Error getting exchange rates: %v", err)
	}
	if len(rates) == 0 {
		return "No exchange rates available"
	}

	codes := append([]string{}, CommonCurrencies...)
	if !contains(codes, base) {
		codes = append(codes, base)
	}
	sort.Strings(codes)

	result := []string{fmt.Sprintf("Exchange Rates (1 %s = ?):", base), strings.Repeat("=", 40)}
	for _, code := range codes {
		rate, ok := rates[code]
		if code == base || !ok {
			continue
		}
		result = append(result, fmt.Sprintf("- %s: %.4f", code, rate))
	}
	return strings.Join(result, "\n")
}

// ConvertText converts and renders the result, or describes the failure
func (c *Client) ConvertText(ctx context.Context, amount float64, from, to string) string {
	start := time.Now()
	converted, rate, err := c.Convert(ctx, amount, from, to)
	metrics.RecordToolCall("convert_currency", time.Since(start).Seconds(), err)
	if err != nil {
		log.Warnf(ctx, "[Currency] Convert %v %s->%s failed: %v", amount, from, to, err)
		return fmt.Sprintf("Error: %v", err)
	}

	from, to = strings.ToUpper(strings.TrimSpace(from)), strings.ToUpper(strings.TrimSpace(to))
	return fmt.Sprintf("Currency Conversion:\n- %s %s = %.2f %s\n- Exchange Rate: 1 %s = %.4f %s",
		strconv.FormatFloat(amount, 'f', -1, 64), from, converted, to, from, rate, to)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (c *Client) registerTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	registry.Register(genkit.DefineTool(gk, "get_exchange_rates", "Get exchange rates for a base currency compared to common currencies",
		func(ctx *ai.ToolContext, input *RatesInput) (string, error) {
			base := ""
			if input != nil {
				base = input.BaseCurrency
			}
			return c.ExchangeRates(ctx, base), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		base, _ := args["base_currency"].(string)
		return c.ExchangeRates(ctx, base), nil
	})

	registry.Register(genkit.DefineTool(gk, "convert_currency", "Convert an amount from one currency to another",
		func(ctx *ai.ToolContext, input *ConvertInput) (string, error) {
			if input == nil {
				return "", fmt.Errorf("amount, from_currency and to_currency are required")
			}
			return c.ConvertText(ctx, input.Amount, input.FromCurrency, input.ToCurrency), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		amount, ok := args["amount"].(float64)
		if !ok {
			return nil, fmt.Errorf("amount is required and must be a number")
		}
		from, _ := args["from_currency"].(string)
		to, _ := args["to_currency"].(string)
		return c.ConvertText(ctx, amount, from, to), nil
	})

	log.Info(context.Background(), "[Currency] Registered tools: get_exchange_rates, convert_currency")
}
