package googlemaps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/travelscout/config"
	"github.com/va6996/travelscout/places"
	"googlemaps.github.io/maps"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient("test-api-key", 2, ts.Client(), maps.WithBaseURL(ts.URL))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("EmptyAPIKey", func(t *testing.T) {
		client, err := NewClient("", 0, nil)
		assert.Nil(t, client)

		var cfgErr *config.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "GPLACES_API_KEY", cfgErr.Key)
	})

	t.Run("DefaultMaxResults", func(t *testing.T) {
		client, err := NewClient("test-api-key", 0, nil)
		require.NoError(t, err)
		assert.NotNil(t, client.MapsClient)
		assert.Equal(t, 10, client.MaxResults)
		assert.Equal(t, "google", client.Name())
	})
}

func TestClient_Lookup(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"name": "Louvre Museum", "formatted_address": "Rue de Rivoli, Paris", "rating": 4.7, "user_ratings_total": 300000, "place_id": "p1"},
				{"name": "Eiffel Tower", "formatted_address": "Champ de Mars, Paris", "place_id": "p2"},
				{"name": "Arc de Triomphe", "place_id": "p3"}
			]
		}`))
	})

	out, err := client.Lookup(context.Background(), places.Attractions, "Paris")
	require.NoError(t, err)

	assert.Equal(t, "top attractive places in and around Paris", gotQuery)
	assert.Contains(t, out, "1. Louvre Museum\nAddress: Rue de Rivoli, Paris\nRating: 4.7 (300000 reviews)\nGoogle place ID: p1")
	assert.Contains(t, out, "2. Eiffel Tower")
	// limited to MaxResults
	assert.NotContains(t, out, "Arc de Triomphe")
}

func TestClient_Lookup_ZeroResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	out, err := client.Lookup(context.Background(), places.Restaurants, "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClient_Lookup_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid.", "results": []}`))
	})

	_, err := client.Lookup(context.Background(), places.Activities, "Paris")
	require.Error(t, err)

	var pe *places.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "google", pe.Provider)
	assert.Equal(t, places.Activities, pe.Category)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestClient_Lookup_Uninitialized(t *testing.T) {
	client := &Client{}
	_, err := client.Lookup(context.Background(), places.Activities, "Paris")
	assert.Error(t, err)
}

func TestFormatResults(t *testing.T) {
	assert.Empty(t, FormatResults(nil, 5))

	out := FormatResults([]maps.PlacesSearchResult{{Name: "A"}, {Name: "B", Rating: 3.5}}, 0)
	assert.Equal(t, "1. A\n\n2. B\nRating: 3.5", out)
}

type answeringProvider struct{}

func (answeringProvider) Name() string { return "tavily" }

func (answeringProvider) Lookup(ctx context.Context, category places.Category, place string) (string, error) {
	return "Sushi Dai", nil
}

func TestClient_Lookup_TimeoutHidesAPIKey(t *testing.T) {
	const key = "SECRET-GPLACES-KEY"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(ts.Close)

	client, err := NewClient(key, 5, &http.Client{Timeout: 50 * time.Millisecond}, maps.WithBaseURL(ts.URL))
	require.NoError(t, err)

	_, err = client.Lookup(context.Background(), places.Restaurants, "Tokyo")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)

	resolver, err := places.NewResolver(client, answeringProvider{})
	require.NoError(t, err)

	res, err := resolver.Resolve(context.Background(), places.Restaurants, "Tokyo")
	require.NoError(t, err)
	assert.Contains(t, res.Report, "Sushi Dai")
	assert.NotContains(t, res.Report, key)
	assert.False(t, strings.Contains(res.PrimaryFailure.Error(), key))
}
