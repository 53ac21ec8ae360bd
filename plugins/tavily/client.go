package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/config"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/places"
	"github.com/va6996/travelscout/tools"
)

const (
	BaseURL = "https://api.tavily.com"

	// ProviderName is how the client identifies itself in reports
	ProviderName = "tavily"
)

// Client is the Tavily API client
type Client struct {
	apiKey     string
	BaseURL    string
	httpClient *http.Client
}

var _ places.Provider = (*Client)(nil)

// NewClient creates a new Tavily client and registers its tools
func NewClient(apiKey string, timeout time.Duration, gk *genkit.Genkit, registry *tools.Registry) (*Client, error) {
	if err := config.RequireKey("tavily", "TAVILY_API_KEY", apiKey); err != nil {
		return nil, err
	}

	client := &Client{
		apiKey:  apiKey,
		BaseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	client.registerTools(gk, registry)

	return client, nil
}

// SearchRequest represents a Tavily search request
type SearchRequest struct {
	Query       string `json:"query" description:"The search query to execute"`
	SearchDepth string `json:"search_depth,omitempty" description:"Search depth: basic or advanced (default: basic)"`
	MaxResults  int    `json:"max_results,omitempty" description:"Maximum number of results (1-20, default: 5)"`
	Topic       string `json:"topic,omitempty" description:"Search category: general, news, or finance (default: general)"`
	TimeRange   string `json:"time_range,omitempty" description:"Time range: day, week, month, or year"`
	// IncludeAnswer is "basic" or "advanced"; empty means no synthesized answer
	IncludeAnswer     string   `json:"include_answer,omitempty" description:"Include an LLM-generated answer: basic or advanced"`
	IncludeRawContent bool     `json:"include_raw_content,omitempty" description:"Include raw content from search results"`
	IncludeDomains    []string `json:"include_domains,omitempty" description:"Domains to specifically include"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty" description:"Domains to specifically exclude"`
}

// SearchResult represents a single search result
type SearchResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	RawContent *string `json:"raw_content,omitempty"`
}

// SearchResponse represents the Tavily search response
type SearchResponse struct {
	Query        string         `json:"query"`
	Answer       string         `json:"answer,omitempty"`
	Results      []SearchResult `json:"results"`
	ResponseTime json.Number    `json:"response_time,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
}

// StatusError is returned for non-200 responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// Search performs a Tavily search
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	if req.SearchDepth == "" {
		req.SearchDepth = "basic"
	}
	if req.MaxResults == 0 {
		req.MaxResults = 5
	}
	if req.Topic == "" {
		req.Topic = "general"
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debugf(ctx, "[Tavily] Sending search request: query=%s, depth=%s, max_results=%d", req.Query, req.SearchDepth, req.MaxResults)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Debugf(ctx, "[Tavily] Search completed successfully: %d results found", len(searchResp.Results))

	return &searchResp, nil
}

func (c *Client) Name() string {
	return ProviderName
}

// Lookup asks Tavily for the category phrase. The synthesized answer is
// preferred; without one the raw search payload is returned as JSON.
func (c *Client) Lookup(ctx context.Context, category places.Category, place string) (string, error) {
	log.Infof(ctx, "[Tavily] Searching %s for %s", category, place)

	resp, err := c.Search(ctx, &SearchRequest{
		Query:         category.SearchQuery(place),
		Topic:         "general",
		IncludeAnswer: "advanced",
	})
	if err != nil {
		return "", providerError(category, err)
	}

	if answer := strings.TrimSpace(resp.Answer); answer != "" {
		return answer, nil
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", &places.ProviderError{Provider: ProviderName, Category: category, Err: fmt.Errorf("failed to encode payload: %w", err)}
	}
	return string(raw), nil
}

// providerError carries the HTTP status of a StatusError anywhere in err's chain
func providerError(category places.Category, err error) *places.ProviderError {
	pe := &places.ProviderError{Provider: ProviderName, Category: category, Err: err}
	var se *StatusError
	if errors.As(err, &se) {
		pe.StatusCode = se.StatusCode
	}
	return pe
}
