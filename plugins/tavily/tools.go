package tavily

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/tools"
)

// SearchTool exposes raw Tavily search to the agent
type SearchTool struct {
	client *Client
}

func (t *SearchTool) Name() string {
	return "tavily_search"
}

func (t *SearchTool) Description() string {
	return "Searches the web for current information using Tavily. Useful for facts not covered by the other tools. Arguments: query (string, required), search_depth (basic/advanced, optional), max_results (1-20, optional), topic (general/news/finance, optional), time_range (day/week/month/year, optional), include_answer (basic/advanced, optional)."
}

func (t *SearchTool) Execute(ctx context.Context, input *SearchRequest) (*SearchResponse, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "[Tavily] SearchTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("tavily client not initialized")
	}
	if input == nil || input.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	resp, err := t.client.Search(ctx, input)
	if err != nil {
		log.Errorf(ctx, "[Tavily] SearchTool failed: %v", err)
		return nil, err
	}

	return resp, nil
}

// searchRequestFromArgs adapts loosely typed registry arguments
func searchRequestFromArgs(args map[string]interface{}) (*SearchRequest, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query is required and must be a string")
	}

	req := &SearchRequest{Query: query}
	if depth, ok := args["search_depth"].(string); ok {
		req.SearchDepth = depth
	}
	if maxResults, ok := args["max_results"].(float64); ok {
		req.MaxResults = int(maxResults)
	}
	if topic, ok := args["topic"].(string); ok {
		req.Topic = topic
	}
	if timeRange, ok := args["time_range"].(string); ok {
		req.TimeRange = timeRange
	}
	switch v := args["include_answer"].(type) {
	case string:
		req.IncludeAnswer = v
	case bool:
		if v {
			req.IncludeAnswer = "basic"
		}
	}
	if includeRawContent, ok := args["include_raw_content"].(bool); ok {
		req.IncludeRawContent = includeRawContent
	}
	return req, nil
}

func (c *Client) registerTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	searchTool := &SearchTool{client: c}
	registry.Register(genkit.DefineTool(gk, searchTool.Name(), searchTool.Description(),
		func(ctx *ai.ToolContext, input *SearchRequest) (*SearchResponse, error) {
			return searchTool.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		req, err := searchRequestFromArgs(args)
		if err != nil {
			return nil, err
		}
		return searchTool.Execute(ctx, req)
	})

	log.Info(context.Background(), "[Tavily] Registered tool: tavily_search")
}
