package agents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/travelscout/plugins/core"
	"github.com/va6996/travelscout/tools"
)

// stubModel only needs to be non-nil; generation is replaced in tests
type stubModel struct {
	ai.Model
}

func newTestAgent(t *testing.T, generate GenerateFunc) *TravelAgent {
	t.Helper()
	gk := genkit.Init(context.Background())
	registry := tools.NewRegistry()
	core.NewClient(gk, registry)

	agent := NewTravelAgent(gk, registry, &stubModel{}, 0)
	agent.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	agent.generate = generate
	return agent
}

func TestTravelAgent_Ask(t *testing.T) {
	calls := 0
	agent := newTestAgent(t, func(ctx context.Context, opts ...ai.GenerateOption) (*ai.ModelResponse, error) {
		calls++
		return &ai.ModelResponse{Message: ai.NewModelTextMessage("  Day 1: Louvre. Day 2: Montmartre.  ")}, nil
	})

	answer, err := agent.Ask(context.Background(), "Plan two days in Paris")
	require.NoError(t, err)
	assert.Equal(t, "Day 1: Louvre. Day 2: Montmartre.", answer.Text)
	assert.False(t, answer.NeedsClarification)
	assert.Equal(t, 1, calls)

	assert.Equal(t, 10, agent.maxTurns)
	// six core tools plus askUser
	assert.Len(t, agent.toolRefs(), 7)
}

func TestTravelAgent_Ask_Clarification(t *testing.T) {
	agent := newTestAgent(t, func(ctx context.Context, opts ...ai.GenerateOption) (*ai.ModelResponse, error) {
		part := ai.NewToolRequestPart(&ai.ToolRequest{
			Name:  "askUser",
			Input: map[string]any{"question": "Which city are you visiting?"},
		})
		return &ai.ModelResponse{
			FinishReason: ai.FinishReasonInterrupted,
			Message:      &ai.Message{Role: ai.RoleModel, Content: []*ai.Part{part}},
		}, nil
	})

	answer, err := agent.Ask(context.Background(), "Plan my holiday")
	require.NoError(t, err)
	assert.True(t, answer.NeedsClarification)
	assert.Equal(t, "Which city are you visiting?", answer.Text)
}

func TestTravelAgent_Ask_Errors(t *testing.T) {
	agent := newTestAgent(t, func(ctx context.Context, opts ...ai.GenerateOption) (*ai.ModelResponse, error) {
		return nil, errors.New("model overloaded")
	})

	_, err := agent.Ask(context.Background(), "   ")
	assert.ErrorContains(t, err, "query is required")

	_, err = agent.Ask(context.Background(), "Plan a trip")
	assert.ErrorContains(t, err, "model overloaded")

	agent.generate = func(ctx context.Context, opts ...ai.GenerateOption) (*ai.ModelResponse, error) {
		return &ai.ModelResponse{Message: ai.NewModelTextMessage("")}, nil
	}
	_, err = agent.Ask(context.Background(), "Plan a trip")
	assert.ErrorContains(t, err, "empty answer")

	agent.model = nil
	_, err = agent.Ask(context.Background(), "Plan a trip")
	assert.ErrorIs(t, err, ErrNoModel)
}
