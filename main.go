package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/va6996/travelscout/bootstrap"
	"github.com/va6996/travelscout/config"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/server"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}
	log.Init(cfg.Log.Level)

	// Handle Ctrl+C (SIGINT) and SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(ctx, "Setup failed: %v", err)
	}
	defer app.Close()

	deps := server.Deps{Tools: app.Registry}
	if app.Agent != nil {
		deps.Agent = app.Agent
	}
	if app.Journal != nil {
		deps.Journal = app.Journal
	}

	// Use h2c for HTTP/2 without TLS
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: h2c.NewHandler(server.New(deps).Handler(), &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf(shutdownCtx, "Shutdown failed: %v", err)
		}
	}()

	log.Infof(ctx, "Starting server on port %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf(ctx, "Server failed: %v", err)
	}
}
