package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/tools"
)

type HotelCostInput struct {
	PricePerNight string `json:"price_per_night" description:"Price per night for the hotel"`
	TotalDays     string `json:"total_days" description:"Total number of days for the stay"`
}

type TotalExpenseInput struct {
	Costs []float64 `json:"costs" description:"List of cost items to sum up"`
}

type DailyBudgetInput struct {
	TotalCost string `json:"total_cost" description:"Total budget for the trip"`
	Days      string `json:"days" description:"Number of days for the trip"`
}

type ExpressionInput struct {
	Expression string             `json:"expression" description:"Arithmetic expression, e.g. 'hotel * nights + flights'"`
	Variables  map[string]float64 `json:"variables,omitempty" description:"Values for the names used in the expression"`
}

// Calculator holds the trip expense helpers
type Calculator struct{}

// parseAmount accepts numbers and numeric strings such as "5" or "5.0"
func parseAmount(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// HotelCost multiplies price by days; unparsable input yields 0
func (Calculator) HotelCost(pricePerNight, totalDays interface{}) float64 {
	price, ok := parseAmount(pricePerNight)
	if !ok {
		return 0
	}
	days, ok := parseAmount(totalDays)
	if !ok {
		return 0
	}
	return price * days
}

// TotalExpense sums costs
func (Calculator) TotalExpense(costs []float64) float64 {
	total := 0.0
	for _, c := range costs {
		total += c
	}
	return total
}

// DailyBudget divides total by the whole number of days; bad input or
// fewer than one day yields 0
func (Calculator) DailyBudget(totalCost, days interface{}) float64 {
	total, ok := parseAmount(totalCost)
	if !ok {
		return 0
	}
	d, ok := parseAmount(days)
	if !ok || int(d) <= 0 {
		return 0
	}
	return total / float64(int(d))
}

// Evaluate runs an arithmetic expression over named amounts
func (Calculator) Evaluate(expression string, variables map[string]float64) (float64, error) {
	expr, err := govaluate.NewEvaluableExpression(strings.TrimSpace(expression))
	if err != nil {
		return 0, fmt.Errorf("failed to parse expression: %w", err)
	}

	params := make(map[string]interface{}, len(variables))
	for _, name := range expr.Vars() {
		v, ok := variables[name]
		if !ok {
			return 0, fmt.Errorf("missing value for %q", name)
		}
		params[name] = v
	}

	result, err := expr.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate expression: %w", err)
	}

	n, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("expression result is not a number: %v", result)
	}
	return n, nil
}

// NewCalculator registers the expense tools
func NewCalculator(gk *genkit.Genkit, registry *tools.Registry) *Calculator {
	calc := &Calculator{}
	if gk == nil || registry == nil {
		return calc
	}

	registry.Register(genkit.DefineTool(gk, "estimate_total_hotel_cost",
		"Calculate total hotel cost based on price per night and total days",
		func(ctx *ai.ToolContext, input *HotelCostInput) (float64, error) {
			log.Infof(ctx, "[Core] estimate_total_hotel_cost(%s, %s)", input.PricePerNight, input.TotalDays)
			return calc.HotelCost(input.PricePerNight, input.TotalDays), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return calc.HotelCost(args["price_per_night"], args["total_days"]), nil
	})

	registry.Register(genkit.DefineTool(gk, "calculate_total_expense",
		"Calculate total expense by summing up all individual costs",
		func(ctx *ai.ToolContext, input *TotalExpenseInput) (float64, error) {
			log.Infof(ctx, "[Core] calculate_total_expense(%v)", input.Costs)
			return calc.TotalExpense(input.Costs), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		raw, ok := args["costs"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("costs must be a list of numbers")
		}
		costs := make([]float64, 0, len(raw))
		for _, item := range raw {
			c, ok := parseAmount(item)
			if !ok {
				return nil, fmt.Errorf("invalid cost %v", item)
			}
			costs = append(costs, c)
		}
		return calc.TotalExpense(costs), nil
	})

	registry.Register(genkit.DefineTool(gk, "calculate_daily_expense_budget",
		"Calculate daily expense budget by dividing total cost by number of days",
		func(ctx *ai.ToolContext, input *DailyBudgetInput) (float64, error) {
			log.Infof(ctx, "[Core] calculate_daily_expense_budget(%s, %s)", input.TotalCost, input.Days)
			return calc.DailyBudget(input.TotalCost, input.Days), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return calc.DailyBudget(args["total_cost"], args["days"]), nil
	})

	registry.Register(genkit.DefineTool(gk, "evaluate_expense_expression",
		"Evaluate an arithmetic expression over named trip costs, e.g. 'hotel * nights + flights'",
		func(ctx *ai.ToolContext, input *ExpressionInput) (float64, error) {
			return calc.Evaluate(input.Expression, input.Variables)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		expression, ok := args["expression"].(string)
		if !ok || expression == "" {
			return nil, fmt.Errorf("expression is required")
		}
		variables := map[string]float64{}
		if raw, ok := args["variables"].(map[string]interface{}); ok {
			for name, v := range raw {
				n, ok := parseAmount(v)
				if !ok {
					return nil, fmt.Errorf("invalid value for %q", name)
				}
				variables[name] = n
			}
		}
		return calc.Evaluate(expression, variables)
	})

	return calc
}
