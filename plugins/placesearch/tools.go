// Package placesearch exposes the place resolver to the agent as one tool per category.
package placesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/metrics"
	"github.com/va6996/travelscout/places"
	"github.com/va6996/travelscout/tools"
)

// Resolver produces an outcome for a category and place
type Resolver interface {
	Outcome(ctx context.Context, category places.Category, place string) places.Outcome
}

// Recorder keeps a history of outcomes
type Recorder interface {
	Record(ctx context.Context, o places.Outcome) error
}

// PlaceInput is the argument shared by every search tool
type PlaceInput struct {
	Place string `json:"place" description:"City or region to search, e.g. 'Paris' or 'Kyoto, Japan'"`
}

var descriptions = map[places.Category]string{
	places.Attractions:    "Search for tourist attractions in a specific location",
	places.Restaurants:    "Search for restaurants and eateries in a specific location",
	places.Activities:     "Search for activities and things to do in a specific location",
	places.Transportation: "Search for transportation options available in a specific location",
}

// Client owns the four search tools
type Client struct {
	resolver Resolver
	recorder Recorder
}

// NewClient creates the façade and registers one tool per category. recorder may be nil.
func NewClient(resolver Resolver, recorder Recorder, gk *genkit.Genkit, registry *tools.Registry) *Client {
	c := &Client{resolver: resolver, recorder: recorder}
	c.registerTools(gk, registry)
	return c
}

// Lookup runs one resolution and records it. It never returns an error;
// failures are carried by the outcome.
func (c *Client) Lookup(ctx context.Context, category places.Category, place string) places.Outcome {
	start := time.Now()
	outcome := c.resolver.Outcome(ctx, category, place)

	metrics.RecordToolCall(category.ToolName(), time.Since(start).Seconds(), outcome.Failure)
	metrics.RecordLookup(category.String(), outcome.Source, outcome.OK(), outcome.FellBack())

	if !outcome.OK() {
		log.Warnf(ctx, "[PlaceSearch] %s failed for %q: %v", category.ToolName(), place, outcome.Failure)
	}

	if c.recorder != nil && outcome.Place != "" {
		if err := c.recorder.Record(ctx, outcome); err != nil {
			log.Errorf(ctx, "[PlaceSearch] Failed to record lookup: %v", err)
		}
	}

	return outcome
}

// Search is Lookup rendered as text for the agent
func (c *Client) Search(ctx context.Context, category places.Category, place string) string {
	return c.Lookup(ctx, category, place).Text()
}

func (c *Client) registerTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	for _, category := range places.Categories() {
		category := category
		registry.Register(genkit.DefineTool(
			gk,
			category.ToolName(),
			descriptions[category],
			func(ctx *ai.ToolContext, input *PlaceInput) (string, error) {
				if input == nil {
					return "", fmt.Errorf("place is required")
				}
				return c.Search(ctx, category, input.Place), nil
			},
		), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			place, ok := args["place"].(string)
			if !ok {
				return nil, fmt.Errorf("place is required and must be a string")
			}
			return c.Search(ctx, category, place), nil
		})
		log.Infof(context.Background(), "[PlaceSearch] Registered tool: %s", category.ToolName())
	}
}
