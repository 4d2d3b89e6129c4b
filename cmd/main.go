package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/bandit-backend/internal/app"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

func main() {
	log, err := app.NewLogger()
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := newRootCommand(log).ExecuteContext(context.Background()); err != nil {
		log.Error("Command failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func newRootCommand(log *logger.Logger) *cobra.Command {
	var configFile string

	serve := newServeCommand(log)
	cmd := &cobra.Command{
		Use:           "bandit",
		Short:         "Two-armed bandit experiment backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				return os.Setenv("CONFIG_FILE", configFile)
			}
			return nil
		},
		// Running without a subcommand serves.
		RunE: serve.RunE,
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (env vars still win)")

	cmd.AddCommand(serve)
	cmd.AddCommand(newMigrateCommand(log))
	return cmd
}

func newServeCommand(log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the store and serve the experiment API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, log)
			if err != nil {
				return err
			}
			defer a.Close()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return a.Run(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Info("Shutting down", "cause", context.Cause(gctx))
				return nil
			})
			return g.Wait()
		},
	}
}

func newMigrateCommand(log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the sessions, trials and ratings tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(log)
			if err != nil {
				return err
			}
			if err := app.Migrate(cmd.Context(), log, cfg); err != nil {
				return err
			}
			log.Info("Migration complete", "driver", cfg.DB.Driver)
			return nil
		},
	}
}
