package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/tools"
)

// ErrNoModel is returned when no language model is configured
var ErrNoModel = errors.New("no model configured")

const askUserTool = "askUser"

const systemPrompt = `You are a helpful travel agent. Answer the traveller's question with a concrete, well organised plan.

Use the tools instead of guessing:
- search_attractions, search_restaurants, search_activities, search_transportation for what to see, eat, do and how to get around.
- get_current_weather and get_weather_forecast before recommending outdoor plans.
- get_exchange_rates, convert_currency and core_get_currency for money questions.
- estimate_total_hotel_cost, calculate_total_expense, calculate_daily_expense_budget and evaluate_expense_expression for budgets. Never do arithmetic in your head.
- date_tool to turn relative dates such as "next weekend" into real dates.
- get_public_holidays and get_long_weekends to warn about closures and busy travel dates.
- tavily_search for anything else that needs current information.

Call askUser only when the destination or another essential detail is missing.
Quote tool results faithfully and say which source they came from.`

// GenerateFunc matches genkit.Generate bound to a Genkit instance
type GenerateFunc func(ctx context.Context, opts ...ai.GenerateOption) (*ai.ModelResponse, error)

// AskUserRequest is the input for the askUser tool
type AskUserRequest struct {
	Question string `json:"question" description:"The clarifying question to ask the user"`
}

// Answer is the agent's reply. When NeedsClarification is set, Text is a
// question for the user rather than a plan.
type Answer struct {
	Text               string `json:"answer"`
	NeedsClarification bool   `json:"needs_clarification,omitempty"`
}

// TravelAgent answers free-form travel questions with the registered tools
type TravelAgent struct {
	registry *tools.Registry
	model    ai.Model
	askUser  ai.Tool
	maxTurns int

	Now      func() time.Time
	generate GenerateFunc
}

// NewTravelAgent creates an agent over every tool in registry
func NewTravelAgent(gk *genkit.Genkit, registry *tools.Registry, model ai.Model, maxTurns int) *TravelAgent {
	if maxTurns <= 0 {
		maxTurns = 10
	}

	askUser := genkit.DefineTool(gk, askUserTool, "Ask the user a clarifying question when essential information is missing.",
		func(ctx *ai.ToolContext, req *AskUserRequest) (string, error) {
			return "", ctx.Interrupt(&ai.InterruptOptions{
				Metadata: map[string]any{
					"question": req.Question,
				},
			})
		},
	)

	return &TravelAgent{
		registry: registry,
		model:    model,
		askUser:  askUser,
		maxTurns: maxTurns,
		Now:      time.Now,
		generate: func(ctx context.Context, opts ...ai.GenerateOption) (*ai.ModelResponse, error) {
			return genkit.Generate(ctx, gk, opts...)
		},
	}
}

func (a *TravelAgent) toolRefs() []ai.ToolRef {
	var refs []ai.ToolRef
	if a.registry != nil {
		for _, tool := range a.registry.GetTools() {
			refs = append(refs, tool)
		}
	}
	if a.askUser != nil {
		refs = append(refs, a.askUser)
	}
	return refs
}

// Ask runs one question through the model with automatic tool calling
func (a *TravelAgent) Ask(ctx context.Context, query string) (*Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if a.model == nil {
		return nil, ErrNoModel
	}

	refs := a.toolRefs()
	log.Infof(ctx, "[Agent] Answering %q with %d tools", query, len(refs))

	system := fmt.Sprintf("Today is %s.\n%s", a.Now().Format("2006-01-02"), systemPrompt)

	response, err := a.generate(ctx,
		ai.WithModel(a.model),
		ai.WithSystem(system),
		ai.WithPrompt(query),
		ai.WithTools(refs...),
		ai.WithMaxTurns(a.maxTurns),
	)
	if err != nil {
		log.Errorf(ctx, "[Agent] Generate failed: %v", err)
		return nil, fmt.Errorf("agent failed: %w", err)
	}

	if response.FinishReason == ai.FinishReasonInterrupted {
		if question := clarifyingQuestion(response); question != "" {
			log.Infof(ctx, "[Agent] Asking user: %s", question)
			return &Answer{Text: question, NeedsClarification: true}, nil
		}
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		return nil, fmt.Errorf("agent returned an empty answer")
	}
	log.Debugf(ctx, "[Agent] Final answer: %s", text)
	return &Answer{Text: text}, nil
}

// clarifyingQuestion pulls the question out of a pending askUser call
func clarifyingQuestion(resp *ai.ModelResponse) string {
	if resp == nil || resp.Message == nil {
		return ""
	}
	for _, part := range resp.Message.Content {
		if !part.IsToolRequest() || part.ToolRequest.Name != askUserTool {
			continue
		}
		if input, ok := part.ToolRequest.Input.(map[string]any); ok {
			if q, ok := input["question"].(string); ok {
				return q
			}
		}
	}
	return ""
}
