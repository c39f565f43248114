package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mmesoai/Omarim-AI-sub000/internal/capability"
	"github.com/mmesoai/Omarim-AI-sub000/internal/config"
	"github.com/mmesoai/Omarim-AI-sub000/internal/delivery"
	"github.com/mmesoai/Omarim-AI-sub000/internal/funnel"
	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
	"github.com/mmesoai/Omarim-AI-sub000/internal/interpreter"
	"github.com/mmesoai/Omarim-AI-sub000/internal/leads"
	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
	"github.com/mmesoai/Omarim-AI-sub000/internal/orchestrator"
	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
	"github.com/mmesoai/Omarim-AI-sub000/internal/store"
)

// app holds the wired collaborators for one CLI invocation.
type app struct {
	cfg    *config.Config
	orch   *orchestrator.Orchestrator
	interp *interpreter.Interpreter
	caps   *capability.Set
	log    *zap.Logger

	closers []func() error
}

// buildApp loads configuration and wires every collaborator.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if debugMode {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	if err := logging.Initialize(cfg.Workspace, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: newBoundaryLogger()}
	a.closers = append(a.closers, func() error { logging.Close(); return nil })

	client, err := a.buildGenerationClient(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	provider, err := a.buildLeadsProvider()
	if err != nil {
		a.close()
		return nil, err
	}

	records, err := a.buildRecordStore()
	if err != nil {
		a.close()
		return nil, err
	}

	deps := capability.Deps{
		Leads:     leads.NewQualifier(provider, cfg.Leads.TitleKeywords...),
		Email:     delivery.NewHTTPEmailSender(a.emailConfig()),
		Social:    delivery.NewNetworkPublisher(delivery.SocialConfig{Tokens: cfg.Delivery.SocialTokens}),
		Records:   records,
		Blueprint: loadBlueprint(cfg.Workspace),
		Enricher:  leads.NewHTTPEnricher(a.enrichConfig()),
	}

	a.caps = capability.NewSet(schema.NewRegistry(), client)
	capability.RegisterBuiltins(a.caps, deps)

	a.interp = interpreter.New(client)
	a.orch, err = orchestrator.New(orchestrator.Config{
		Capabilities: a.caps,
		Interpreter:  a.interp,
		Funnels:      funnel.Builtins(),
		Records:      records,
		Blueprint:    deps.Blueprint,
	})
	if err != nil {
		a.close()
		return nil, err
	}

	a.log.Debug("omarim wired",
		zap.String("backend", cfg.Generation.Backend),
		zap.Int("capabilities", a.caps.Registry().Count()))
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

func (a *app) buildGenerationClient(ctx context.Context) (generation.Client, error) {
	gen := a.cfg.Generation
	switch gen.Backend {
	case "genai":
		client, err := generation.NewGenAIClient(ctx, gen.APIKey, gen.Model)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return client, nil
	default:
		cc := generation.DefaultGeminiConfig(gen.APIKey)
		cc.Model = gen.Model
		cc.Timeout = gen.Timeout()
		cc.MaxRetries = gen.MaxRetries
		return generation.NewGeminiClientWithConfig(cc), nil
	}
}

func (a *app) buildLeadsProvider() (leads.Provider, error) {
	if path := a.cfg.Leads.DatasetPath; path != "" {
		provider, err := leads.NewFileProvider(path, true)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, provider.Close)
		return provider, nil
	}
	return leads.NewStaticProvider(leads.DefaultDataset()), nil
}

func (a *app) buildRecordStore() (store.RecordStore, error) {
	if a.cfg.Store.Driver == "memory" {
		s := store.NewMemoryStore()
		a.closers = append(a.closers, s.Close)
		return s, nil
	}
	path := a.cfg.Store.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.Workspace, path)
	}
	s, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, s.Close)
	return s, nil
}

func (a *app) emailConfig() delivery.EmailConfig {
	ec := delivery.DefaultEmailConfig(a.cfg.Delivery.EmailAPIKey)
	if a.cfg.Delivery.EmailBaseURL != "" {
		ec.BaseURL = a.cfg.Delivery.EmailBaseURL
	}
	if a.cfg.Delivery.EmailFrom != "" {
		ec.From = a.cfg.Delivery.EmailFrom
	}
	return ec
}

func (a *app) enrichConfig() leads.EnrichConfig {
	ec := leads.DefaultEnrichConfig(a.cfg.Leads.EnrichmentAPIKey)
	if a.cfg.Leads.EnrichmentBaseURL != "" {
		ec.BaseURL = a.cfg.Leads.EnrichmentBaseURL
	}
	return ec
}

// loadBlueprint reads the business blueprint document when present. The
// blueprint is opaque ground truth for self-knowledge answers; a missing
// file falls back to a minimal built-in description.
func loadBlueprint(workspace string) map[string]any {
	path := filepath.Join(workspace, ".omarim", "blueprint.yaml")
	data, err := os.ReadFile(path)
	if err == nil {
		var blueprint map[string]any
		if yaml.Unmarshal(data, &blueprint) == nil && len(blueprint) > 0 {
			return blueprint
		}
	}
	return map[string]any{
		"product": "Omarim AI business co-pilot",
		"features": []any{
			"classify free-text requests into business actions",
			"find and qualify local-business leads",
			"generate marketing content, landing pages and social posts",
			"launch complete digital-product funnels",
			"send outreach emails and publish social posts",
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requestArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return "", fmt.Errorf("a request string is required")
}
