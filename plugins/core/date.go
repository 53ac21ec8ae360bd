package core

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/tools"
)

// DateInput defines the input for the date tool
type DateInput struct {
	Expression string `json:"expression" description:"JavaScript expression that yields a date. 'now' holds the current time in milliseconds."`
}

// DateResult is the resolved date
type DateResult struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// DateTool resolves relative travel dates ("next Friday", "in 10 days")
type DateTool struct {
	Now func() time.Time
}

// NewDateTool creates a DateTool and registers it
func NewDateTool(gk *genkit.Genkit, registry *tools.Registry) *DateTool {
	t := &DateTool{Now: time.Now}

	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool(gk, t.Name(), t.Description(),
		func(ctx *ai.ToolContext, input *DateInput) (*DateResult, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		expression, ok := args["expression"].(string)
		if !ok {
			return nil, fmt.Errorf("missing expression")
		}
		return t.Execute(ctx, &DateInput{Expression: expression})
	})

	return t
}

func (t *DateTool) Name() string {
	return "date_tool"
}

func (t *DateTool) Description() string {
	return `Evaluates a JavaScript expression to work out travel dates. 'now' is the current timestamp in milliseconds.
The last expression is the result and must be a Date, an ISO-8601 string or a millisecond timestamp.
Examples:
- Tomorrow: "new Date(now + 86400000)"
- In two weeks: "now + 14 * 86400000"
- Next Saturday: "var d = new Date(now); d.setDate(d.getDate() + ((6 - d.getDay() + 7) % 7 || 7)); d"`
}

// Execute runs the expression in a fresh VM
func (t *DateTool) Execute(ctx context.Context, input *DateInput) (*DateResult, error) {
	if input == nil || input.Expression == "" {
		return nil, fmt.Errorf("expression is required")
	}
	log.Debugf(ctx, "[DateTool] Evaluating: %s", input.Expression)

	vm := goja.New()
	if err := vm.Set("now", t.Now().UnixMilli()); err != nil {
		return nil, fmt.Errorf("failed to set 'now': %w", err)
	}

	val, err := vm.RunString(input.Expression)
	if err != nil {
		log.Warnf(ctx, "[DateTool] Evaluation failed: %v", err)
		return nil, fmt.Errorf("js execution failed: %w", err)
	}
	if goja.IsUndefined(val) || goja.IsNull(val) {
		return nil, fmt.Errorf("result is null or undefined")
	}

	var resolved time.Time
	switch v := val.Export().(type) {
	case time.Time:
		resolved = v
	case int64:
		resolved = time.UnixMilli(v)
	case float64:
		resolved = time.UnixMilli(int64(v))
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", v)
		}
		if err != nil {
			return nil, fmt.Errorf("result %q is not an ISO-8601 date", v)
		}
		resolved = parsed
	default:
		return nil, fmt.Errorf("result is not a date, ISO string or timestamp (got %T)", v)
	}

	resolved = resolved.UTC()
	return &DateResult{
		Date:    resolved.Format(time.RFC3339),
		Weekday: resolved.Weekday().String(),
	}, nil
}
