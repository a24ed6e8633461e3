package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"planner/internal/config"
	"planner/internal/engine"
	"planner/internal/logger"
	"planner/internal/storage"
	"planner/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "planner",
		Short:         "Day-by-day personal task planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.close()
			return ui.Run(a.eng, a.cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $PLANNER_CONFIG or the user config dir)")

	cmd.AddCommand(
		datesCmd(opts),
		listCmd(opts),
		addCmd(opts),
		toggleCmd(opts),
		deleteCmd(opts),
		categoriesCmd(opts),
	)
	return cmd
}

type app struct {
	cfg   config.Config
	eng   *engine.Engine
	store io.Closer
}

// open loads config, logging and the configured store. When reload is set
// the engine is populated before returning; the TUI loads on its own.
func (o *rootOptions) open(ctx context.Context, reload bool) (*app, error) {
	path := o.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Development, cfg.LogPath); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	eng := engine.New(store, engine.WithDateField(cfg.Field()))
	a := &app{cfg: cfg, eng: eng, store: closer}

	if reload {
		if ctx == nil {
			ctx = context.Background()
		}
		if err := eng.Reload(ctx); err != nil {
			a.close()
			return nil, err
		}
	}
	return a, nil
}

func (a *app) close() {
	logger.Sync()
	if a.store != nil {
		a.store.Close()
	}
}

func openStore(cfg config.Config) (engine.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendYAML:
		s, err := storage.OpenYAML(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		s, err := storage.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
}
