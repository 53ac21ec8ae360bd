package core

import (
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/travelscout/tools"
)

// Client manages the core set of tools that need no external service
type Client struct {
	DateTool   *DateTool
	Calculator *Calculator
}

// NewClient initializes the core plugin and registers its tools
func NewClient(gk *genkit.Genkit, registry *tools.Registry) *Client {
	RegisterCountryCurrency(gk, registry)
	return &Client{
		DateTool:   NewDateTool(gk, registry),
		Calculator: NewCalculator(gk, registry),
	}
}
