// Package app wires configuration, stores, the model client and the
// HTTP surface into one runnable unit.
package app

import (
	"context"
	"fmt"

	"medisynth/internal/config"
	"medisynth/internal/server"
	"medisynth/internal/session"
	"medisynth/internal/settings"
	"medisynth/internal/synthesis"
)

type App struct {
	server *server.Server
	client synthesis.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	prefs := settings.NewStore(cfg.SettingsPath)
	hist := newHistoryStore(cfg)
	docs := newDocumentStore(cfg)

	// The client is only built when a credential exists; without one the
	// orchestrator fails each call with a configuration error instead of
	// the process failing to start.
	var client synthesis.Client
	if cfg.GeminiAPIKey != "" {
		client, err = synthesis.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to init gemini client: %w", err)
		}
	}
	orch := synthesis.NewOrchestrator(client, cfg.GeminiAPIKey, cfg.Model, cfg.SynthesisTimeout, prefs)

	sess := session.New()
	handler := server.NewHandler(sess, orch, hist, docs, prefs)
	mux := server.NewMux(handler)
	srv := server.New(cfg.Port, mux)

	return &App{server: srv, client: client}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a.client != nil {
		_ = a.client.Close()
	}
	return a.server.Shutdown(ctx)
}
