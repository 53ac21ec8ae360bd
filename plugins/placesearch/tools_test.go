package placesearch

import (
	"context"
	"errors"
	"testing"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/travelscout/places"
	"github.com/va6996/travelscout/tools"
)

type stubProvider struct {
	name   string
	answer string
	err    error
	calls  int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Lookup(ctx context.Context, category places.Category, place string) (string, error) {
	p.calls++
	return p.answer, p.err
}

type memoryRecorder struct {
	outcomes []places.Outcome
	err      error
}

func (r *memoryRecorder) Record(ctx context.Context, o places.Outcome) error {
	r.outcomes = append(r.outcomes, o)
	return r.err
}

func newResolver(t *testing.T, primary, fallback *stubProvider) *places.Resolver {
	t.Helper()
	r, err := places.NewResolver(primary, fallback)
	require.NoError(t, err)
	return r
}

func TestClient_Search(t *testing.T) {
	t.Run("Primary answers", func(t *testing.T) {
		primary := &stubProvider{name: "google", answer: "Louvre, Eiffel Tower"}
		fallback := &stubProvider{name: "tavily"}
		rec := &memoryRecorder{}

		c := NewClient(newResolver(t, primary, fallback), rec, nil, nil)
		out := c.Search(context.Background(), places.Attractions, "Paris")

		assert.Equal(t, "Following are the attractions of Paris as suggested by google: Louvre, Eiffel Tower", out)
		assert.Equal(t, 0, fallback.calls)
		require.Len(t, rec.outcomes, 1)
		assert.Equal(t, "google", rec.outcomes[0].Source)
	})

	t.Run("Both fail returns failure text", func(t *testing.T) {
		primary := &stubProvider{name: "google", err: errors.New("timeout")}
		fallback := &stubProvider{name: "tavily", err: errors.New("unauthorized")}
		rec := &memoryRecorder{err: errors.New("disk full")}

		c := NewClient(newResolver(t, primary, fallback), rec, nil, nil)
		out := c.Search(context.Background(), places.Transportation, "Lima")

		assert.Contains(t, out, "Could not find the transportation of Lima")
		assert.Contains(t, out, "unauthorized")
		require.Len(t, rec.outcomes, 1)
		assert.False(t, rec.outcomes[0].OK())
	})

	t.Run("Blank place is not recorded", func(t *testing.T) {
		primary := &stubProvider{name: "google", answer: "x"}
		fallback := &stubProvider{name: "tavily"}
		rec := &memoryRecorder{}

		c := NewClient(newResolver(t, primary, fallback), rec, nil, nil)
		out := c.Search(context.Background(), places.Restaurants, "   ")

		assert.Contains(t, out, places.ErrEmptyPlace.Error())
		assert.Equal(t, 0, primary.calls)
		assert.Empty(t, rec.outcomes)
	})
}

func TestRegisterTools(t *testing.T) {
	primary := &stubProvider{name: "google", err: errors.New("quota exceeded")}
	fallback := &stubProvider{name: "tavily", answer: "Sushi Dai, Ichiran"}

	gk := genkit.Init(context.Background())
	registry := tools.NewRegistry()
	NewClient(newResolver(t, primary, fallback), nil, gk, registry)

	assert.Equal(t, []string{
		"search_activities",
		"search_attractions",
		"search_restaurants",
		"search_transportation",
	}, registry.Names())

	out, err := registry.ExecuteTool(context.Background(), "search_restaurants", map[string]interface{}{"place": "Tokyo"})
	require.NoError(t, err)
	assert.Equal(t, "Google cannot find the details due to quota exceeded. \nFollowing are the restaurants of Tokyo: Sushi Dai, Ichiran", out)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}
