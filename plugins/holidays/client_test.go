package holidays

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/travelscout/tools"
)

const frHolidays = `[
	{"date": "2025-01-01", "localName": "Jour de l'an", "name": "New Year's Day", "global": true, "counties": null, "types": ["Public"]},
	{"date": "2025-07-14", "localName": "Fête nationale", "name": "Bastille Day", "global": true, "counties": null, "types": ["Public"]},
	{"date": "2025-12-26", "localName": "Saint-Étienne", "name": "St. Stephen's Day", "global": false, "counties": ["FR-57"], "types": ["Public"]}
]`

const frWeekends = `[
	{"startDate": "2025-04-19", "endDate": "2025-04-21", "dayCount": 3, "needBridgeDay": false},
	{"startDate": "2025-05-29", "endDate": "2025-06-01", "dayCount": 4, "needBridgeDay": true}
]`

func newTestClient(t *testing.T, status int, body string, calls *int32, path *string) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if path != nil {
			*path = r.URL.Path
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c := NewClient(5*time.Second, nil, nil)
	c.BaseURL = ts.URL
	c.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestParseCountry(t *testing.T) {
	code, err := ParseCountry(" fr ")
	require.NoError(t, err)
	assert.Equal(t, "FR", code)

	for _, bad := range []string{"", "France", "FRA"} {
		_, err := ParseCountry(bad)
		assert.Error(t, err, bad)
	}
}

func TestPublicHolidaysText(t *testing.T) {
	var path string
	c := newTestClient(t, http.StatusOK, frHolidays, nil, &path)

	out := c.PublicHolidaysText(context.Background(), 0, "fr")

	assert.Equal(t, "/PublicHolidays/2025/FR", path)
	assert.Equal(t, "Public Holidays in FR (2025):\n"+
		"========================================\n"+
		"- 2025-01-01 Wednesday: New Year's Day (Jour de l'an)\n"+
		"- 2025-07-14 Monday: Bastille Day (Fête nationale)\n"+
		"- 2025-12-26 Friday: St. Stephen's Day (Saint-Étienne) [regional]", out)
}

func TestLongWeekendsText(t *testing.T) {
	var path string
	c := newTestClient(t, http.StatusOK, frWeekends, nil, &path)

	out := c.LongWeekendsText(context.Background(), 2025, "FR")

	assert.Equal(t, "/LongWeekend/2025/FR", path)
	assert.Equal(t, "Long Weekends in FR (2025):\n"+
		"========================================\n"+
		"- 2025-04-19 to 2025-04-21: 3 days\n"+
		"- 2025-05-29 to 2025-06-01: 4 days (needs a bridge day)", out)
}

func TestPublicHolidays_Errors(t *testing.T) {
	c := newTestClient(t, http.StatusNotFound, "", nil, nil)

	_, err := c.PublicHolidays(context.Background(), 2025, "MC")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	out := c.PublicHolidaysText(context.Background(), 2025, "Narnia")
	assert.Contains(t, out, "Error getting public holidays for Narnia: invalid country code")
}

func TestPublicHolidays_NoContent(t *testing.T) {
	c := newTestClient(t, http.StatusNoContent, "", nil, nil)

	assert.Equal(t, "No public holidays found for MC in 2025", c.PublicHolidaysText(context.Background(), 2025, "MC"))
}

func TestPublicHolidays_FetchesEveryCall(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.StatusOK, frHolidays, &calls, nil)

	first, err := c.PublicHolidays(context.Background(), 2025, "FR")
	require.NoError(t, err)
	second, err := c.PublicHolidays(context.Background(), 2025, "fr")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, first, second)
}

func TestRegisteredTools(t *testing.T) {
	registry := tools.NewRegistry()
	c := NewClient(time.Second, genkit.Init(context.Background()), registry)
	assert.NotNil(t, c)

	assert.Equal(t, []string{"get_long_weekends", "get_public_holidays"}, registry.Names())

	_, err := registry.ExecuteTool(context.Background(), "get_public_holidays", map[string]interface{}{"country_code": 33})
	var vErr *tools.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
