package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLookup(t *testing.T) {
	success := LookupsTotal.WithLabelValues("attractions", "google", StatusSuccess)
	failure := LookupsTotal.WithLabelValues("attractions", "none", StatusFailure)
	fallbacks := FallbacksTotal.WithLabelValues("attractions")

	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)
	beforeFallbacks := testutil.ToFloat64(fallbacks)

	RecordLookup("attractions", "google", true, false)
	RecordLookup("attractions", "tavily", false, true)

	assert.Equal(t, beforeSuccess+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeFailure+1, testutil.ToFloat64(failure))
	assert.Equal(t, beforeFallbacks+1, testutil.ToFloat64(fallbacks))
}

func TestRecordToolCall(t *testing.T) {
	ok := ToolCallsTotal.WithLabelValues("date_tool", StatusSuccess)
	failed := ToolCallsTotal.WithLabelValues("date_tool", StatusFailure)
	beforeOK := testutil.ToFloat64(ok)
	beforeFailed := testutil.ToFloat64(failed)

	RecordToolCall("date_tool", 0.2, nil)
	RecordToolCall("date_tool", 0.1, errors.New("boom"))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
	assert.Equal(t, beforeFailed+1, testutil.ToFloat64(failed))
}

func TestHandler(t *testing.T) {
	RecordToolCall("search_restaurants", 0.3, nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "travelscout_tool_calls_total")
}
