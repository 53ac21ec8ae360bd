package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/va6996/travelscout/config"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/places"
	"googlemaps.github.io/maps"
)

// ProviderName is how the client identifies itself in reports
const ProviderName = "google"

// Client answers place queries with the Google Places text search API
type Client struct {
	MapsClient *maps.Client
	MaxResults int
}

var _ places.Provider = (*Client)(nil)

// NewClient creates a new Google Places client.
// Extra maps options (base URL, HTTP client) are applied after the API key.
func NewClient(apiKey string, maxResults int, httpClient *http.Client, opts ...maps.ClientOption) (*Client, error) {
	if err := config.RequireKey("google places", "GPLACES_API_KEY", apiKey); err != nil {
		return nil, err
	}

	options := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if httpClient != nil {
		options = append(options, maps.WithHTTPClient(httpClient))
	}
	options = append(options, opts...)

	c, err := maps.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	if maxResults <= 0 {
		maxResults = 10
	}

	return &Client{
		MapsClient: c,
		MaxResults: maxResults,
	}, nil
}

func (c *Client) Name() string {
	return ProviderName
}

// Lookup runs one text search for the category phrase and renders the hits.
// No hits renders as an empty string.
func (c *Client) Lookup(ctx context.Context, category places.Category, place string) (string, error) {
	if c.MapsClient == nil {
		return "", &places.ProviderError{Provider: ProviderName, Category: category, Err: fmt.Errorf("maps client not initialized")}
	}

	query := category.StructuredQuery(place)
	log.Infof(ctx, "[GooglePlaces] Searching %s for %s: %q", category, place, query)

	resp, err := c.MapsClient.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		err = transportError(err)
		log.Errorf(ctx, "[GooglePlaces] Text search failed: %v", err)
		return "", &places.ProviderError{Provider: ProviderName, Category: category, Err: err}
	}

	log.Debugf(ctx, "[GooglePlaces] Text search returned %d results", len(resp.Results))
	return FormatResults(resp.Results, c.MaxResults), nil
}

// FormatResults renders at most limit results as a numbered list
func FormatResults(results []maps.PlacesSearchResult, limit int) string {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	entries := make([]string, 0, len(results))
	for i, r := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s", i+1, r.Name)
		if r.FormattedAddress != "" {
			fmt.Fprintf(&b, "\nAddress: %s", r.FormattedAddress)
		}
		if r.Rating > 0 {
			fmt.Fprintf(&b, "\nRating: %.1f", r.Rating)
			if r.UserRatingsTotal > 0 {
				fmt.Fprintf(&b, " (%d reviews)", r.UserRatingsTotal)
			}
		}
		if r.PlaceID != "" {
			fmt.Fprintf(&b, "\nGoogle place ID: %s", r.PlaceID)
		}
		entries = append(entries, b.String())
	}

	return strings.Join(entries, "\n\n")
}

// transportError drops the request URL from client errors; it carries the API key
func transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
