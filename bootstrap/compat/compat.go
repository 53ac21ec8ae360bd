// Package compat is a Genkit plugin for any OpenAI-compatible chat completions
// endpoint (OpenRouter, Groq, vLLM, LM Studio, Z.ai and similar).
package compat

import (
	"context"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/openai/openai-go/option"
)

// DefaultProvider namespaces models when Provider is empty
const DefaultProvider = "compat"

// Compat wraps compat_oai with a configurable provider name and endpoint
type Compat struct {
	// Provider is the model namespace, e.g. "openrouter" gives "openrouter/<model>"
	Provider string
	// BaseURL of the API, e.g. https://openrouter.ai/api/v1/
	BaseURL string
	// APIKey may be empty for local servers
	APIKey string
	// Models are registered as tool-capable chat models during Init
	Models []string

	openAICompatible *compat_oai.OpenAICompatible
}

func (c *Compat) provider() string {
	if p := strings.TrimSpace(c.Provider); p != "" {
		return p
	}
	return DefaultProvider
}

// Name implements genkit.Plugin.
func (c *Compat) Name() string {
	return c.provider()
}

// Init implements genkit.Plugin.
func (c *Compat) Init(ctx context.Context) []api.Action {
	if c.BaseURL == "" {
		panic("compat plugin initialization failed: BaseURL is required (set COMPAT_BASE_URL)")
	}

	apiKey := c.APIKey
	if apiKey == "" {
		// local servers ignore the key but the client always sends one
		apiKey = "unused"
	}

	if c.openAICompatible == nil {
		c.openAICompatible = &compat_oai.OpenAICompatible{}
	}
	c.openAICompatible.Opts = []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.BaseURL),
	}
	c.openAICompatible.Provider = c.provider()

	actions := c.openAICompatible.Init(ctx)
	for _, id := range c.Models {
		actions = append(actions, c.DefineChatModel(id).(api.Action))
	}
	return actions
}

// Model returns a model by name.
func (c *Compat) Model(g *genkit.Genkit, name string) ai.Model {
	return c.openAICompatible.Model(g, api.NewName(c.provider(), name))
}

// DefineModel defines a model with the given ID and options.
func (c *Compat) DefineModel(id string, opts ai.ModelOptions) ai.Model {
	return c.openAICompatible.DefineModel(c.provider(), id, opts)
}

// DefineChatModel defines a tool-capable text model
func (c *Compat) DefineChatModel(id string) ai.Model {
	return c.DefineModel(id, ai.ModelOptions{
		Label: c.provider() + " " + id,
		Supports: &ai.ModelSupports{
			Multiturn:  true,
			SystemRole: true,
			Tools:      true,
		},
		Versions: []string{id},
	})
}

// ListActions returns a list of actions provided by this plugin.
func (c *Compat) ListActions(ctx context.Context) []api.ActionDesc {
	return c.openAICompatible.ListActions(ctx)
}

// ResolveAction resolves an action by type and name.
func (c *Compat) ResolveAction(atype api.ActionType, name string) api.Action {
	return c.openAICompatible.ResolveAction(atype, name)
}
