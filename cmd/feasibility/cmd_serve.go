package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"agent-feasibility/internal/di"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the evaluation HTTP API",
		Long: `Start the evaluation HTTP API.

The database schema is migrated on startup. The server stops gracefully on
SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialise: %w", err)
			}
			defer container.Close()

			container.Logger.Info("Service starting",
				"version", version,
				"llm_provider", cfg.LLMProvider,
				"llm_model", cfg.LLMModel,
				"db_driver", cfg.DBDriver,
			)
			return container.Server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	return cmd
}
