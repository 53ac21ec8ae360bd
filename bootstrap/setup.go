package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"github.com/va6996/travelscout/agents"
	"github.com/va6996/travelscout/bootstrap/compat"
	"github.com/va6996/travelscout/config"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/orm"
	"github.com/va6996/travelscout/places"
	"github.com/va6996/travelscout/plugins/core"
	"github.com/va6996/travelscout/plugins/currency"
	"github.com/va6996/travelscout/plugins/googlemaps"
	"github.com/va6996/travelscout/plugins/holidays"
	"github.com/va6996/travelscout/plugins/placesearch"
	"github.com/va6996/travelscout/plugins/tavily"
	"github.com/va6996/travelscout/plugins/weather"
	"github.com/va6996/travelscout/tools"
	"gorm.io/gorm"
)

// App holds the initialized components of the application
type App struct {
	Agent    *agents.TravelAgent
	Genkit   *genkit.Genkit
	Registry *tools.Registry
	Model    ai.Model
	Resolver *places.Resolver
	Places   *placesearch.Client
	// Journal and DB are nil when DB_DRIVER is empty
	Journal *orm.Journal
	DB      *gorm.DB
}

// Close releases the database connection
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitGenkit starts Genkit with the configured model plugin. With AI_PLUGIN=none
// the returned model is nil and only the tools are usable.
func InitGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, ai.Model, error) {
	switch cfg.AI.Plugin {
	case "ollama":
		log.Infof(ctx, "Using Ollama Plugin (Model: %s)...", cfg.AI.Ollama.Model)
		ollamaPlugin := &ollama.Ollama{
			ServerAddress: cfg.AI.Ollama.BaseURL,
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))

		model := ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
			Name: cfg.AI.Ollama.Model,
			Type: "chat",
		}, &ai.ModelOptions{
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
				Tools:      true,
				Media:      false,
			},
		})
		return gk, model, nil

	case "compat":
		log.Infof(ctx, "Using OpenAI-compatible Plugin (%s, Model: %s)...", cfg.AI.Compat.BaseURL, cfg.AI.Compat.Model)
		plugin := &compat.Compat{
			Provider: cfg.AI.Compat.Provider,
			BaseURL:  cfg.AI.Compat.BaseURL,
			APIKey:   cfg.AI.Compat.APIKey,
			Models:   []string{cfg.AI.Compat.Model},
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(plugin))
		model := plugin.Model(gk, cfg.AI.Compat.Model)
		if model == nil {
			return nil, nil, fmt.Errorf("compat model %q not registered", cfg.AI.Compat.Model)
		}
		return gk, model, nil

	case "none":
		log.Info(ctx, "No AI plugin configured, agent disabled")
		return genkit.Init(ctx), nil, nil

	default:
		log.Info(ctx, "Using Gemini Plugin...")
		if cfg.AI.Gemini.APIKey == "" {
			return nil, nil, &config.ConfigurationError{Component: "gemini", Key: "GEMINI_API_KEY"}
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: cfg.AI.Gemini.APIKey,
		}))
		return gk, googlegenai.GoogleAIModel(gk, cfg.AI.Gemini.Model), nil
	}
}

// NewResolver builds the Google Places primary and Tavily fallback. Tavily
// registers its raw search tool when gk and registry are set.
func NewResolver(cfg *config.Config, gk *genkit.Genkit, registry *tools.Registry) (*places.Resolver, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout()}

	primary, err := googlemaps.NewClient(cfg.Places.APIKey, cfg.Places.MaxResults, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Places client: %w", err)
	}

	fallback, err := tavily.NewClient(cfg.Tavily.APIKey, cfg.Timeout(), gk, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Tavily client: %w", err)
	}

	return places.NewResolver(primary, fallback)
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Genkit and model
	gk, model, err := InitGenkit(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Genkit:   gk,
		Registry: tools.NewRegistry(),
		Model:    model,
	}

	// 2. Journal
	if cfg.Database.Driver != "" {
		db, err := orm.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		app.DB = db
		app.Journal = orm.NewJournal(db)
		log.Infof(ctx, "Lookup journal enabled (%s)", cfg.Database.Driver)
	}

	// 3. Tools. Initializing each client registers its tools.
	resolver, err := NewResolver(cfg, gk, app.Registry)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Resolver = resolver

	var recorder placesearch.Recorder
	if app.Journal != nil {
		recorder = app.Journal
	}
	app.Places = placesearch.NewClient(resolver, recorder, gk, app.Registry)

	if _, err := weather.NewClient(cfg.Weather.APIKey, cfg.Timeout(), gk, app.Registry); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize weather client: %w", err)
	}
	if _, err := currency.NewClient(cfg.Currency.APIKey, cfg.Timeout(), gk, app.Registry); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize currency client: %w", err)
	}
	holidays.NewClient(cfg.Timeout(), gk, app.Registry)
	core.NewClient(gk, app.Registry)

	log.Infof(ctx, "Registered %d tools", len(app.Registry.GetTools()))

	// 4. Agent
	if model != nil {
		app.Agent = agents.NewTravelAgent(gk, app.Registry, model, cfg.AI.MaxTurns)
	}

	return app, nil
}
