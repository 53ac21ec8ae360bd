package core

import (
	"context"
	"testing"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/travelscout/tools"
)

func TestDateTool_Execute(t *testing.T) {
	registry := tools.NewRegistry()
	gk := genkit.Init(context.Background())

	dt := NewDateTool(gk, registry)
	dt.Now = func() time.Time {
		// Thursday
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name            string
		code            string
		expectErr       bool
		expectedDate    string
		expectedWeekday string
	}{
		{
			name:            "Date Object",
			code:            "new Date('2026-01-02T00:00:00Z')",
			expectedDate:    "2026-01-02T00:00:00Z",
			expectedWeekday: "Friday",
		},
		{
			name:            "ISO String",
			code:            "'2026-01-05T10:30:00Z'",
			expectedDate:    "2026-01-05T10:30:00Z",
			expectedWeekday: "Monday",
		},
		{
			name:            "Plain Date String",
			code:            "'2026-02-14'",
			expectedDate:    "2026-02-14T00:00:00Z",
			expectedWeekday: "Saturday",
		},
		{
			name:            "Timestamp",
			code:            "now + 14 * 86400000",
			expectedDate:    "2026-01-15T00:00:00Z",
			expectedWeekday: "Thursday",
		},
		{
			name:      "Not A Date",
			code:      "'soon'",
			expectErr: true,
		},
		{
			name:      "Null Return",
			code:      "null",
			expectErr: true,
		},
		{
			name:      "Undefined Return",
			code:      "var x = 1;",
			expectErr: true,
		},
		{
			name:      "Syntax Error",
			code:      "new Date(",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := dt.Execute(context.Background(), &DateInput{Expression: tt.code})
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedDate, res.Date)
			assert.Equal(t, tt.expectedWeekday, res.Weekday)
		})
	}

	_, err := dt.Execute(context.Background(), nil)
	assert.Error(t, err)

	out, err := registry.ExecuteTool(context.Background(), "date_tool", map[string]interface{}{"expression": "new Date(now + 86400000)"})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02T00:00:00Z", out.(*DateResult).Date)
}
