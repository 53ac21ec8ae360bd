package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/va6996/travelscout/bootstrap"
	"github.com/va6996/travelscout/config"
	"github.com/va6996/travelscout/log"
)

var app *bootstrap.App

// loadApp builds the application from the environment. Tests swap it out.
var loadApp = func(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Init(cfg.Log.Level)
	return bootstrap.Setup(ctx, cfg)
}

var rootCmd = &cobra.Command{
	Use:           "travelscout",
	Short:         "travelscout: place lookups, weather, currency and a travel assistant from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		app = a
		return nil
	},
}

// run executes the command line and always releases the app, including when
// the command fails.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if app != nil {
		if closeErr := app.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		app = nil
	}
	return err
}
