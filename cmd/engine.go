package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frontendschool-official/interview-engine/internal/config"
	"github.com/frontendschool-official/interview-engine/internal/llm"
	"github.com/frontendschool-official/interview-engine/internal/problemgen"
	"github.com/frontendschool-official/interview-engine/internal/progress"
	"github.com/frontendschool-official/interview-engine/internal/prompt"
	"github.com/frontendschool-official/interview-engine/internal/session"
	"github.com/frontendschool-official/interview-engine/internal/store"
)

// engine bundles the wired services a command needs. Close releases the
// underlying database.
type engine struct {
	store      *store.SQLiteStore
	templates  *prompt.Store
	manager    *session.Manager
	aggregator *progress.Aggregator
	cfg        config.Config
}

func (e *engine) Close() error {
	return e.store.Close()
}

// buildEngine opens the store, constructs the generation pipeline, and
// returns the session manager plus its collaborators.
func buildEngine(ctx context.Context, cmd *cobra.Command) (*engine, error) {
	cfg, err := config.Discover()
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg.DBPath = dbPath

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("generation provider not configured: %w", err)
	}

	templates := prompt.NewStore()
	selector := prompt.NewSelector(templates, cfg.TemplateVersion)

	genCfg := problemgen.DefaultConfig()
	genCfg.AttemptBudget = cfg.AttemptBudget

	client := problemgen.NewClient(provider, genCfg)
	controller := problemgen.NewController(selector, client, st, nil, genCfg)
	manager := session.NewManager(st, controller, nil, cfg.MaxParallel)

	return &engine{
		store:      st,
		templates:  templates,
		manager:    manager,
		aggregator: progress.NewAggregator(st),
		cfg:        cfg,
	}, nil
}
