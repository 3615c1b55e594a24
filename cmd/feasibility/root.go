package main

import (
	"fmt"

	"agent-feasibility/internal/config"
	"agent-feasibility/internal/infrastructure/env"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feasibility",
		Short: "Score how feasible an AI agent project is",
		Long: `feasibility evaluates proposed AI agent projects on five dimensions
(task clarity, model capability, objectivity, data availability, error
tolerance), places them on the capability matrix and stores the reports.

Configuration comes from the environment and from .env / .env.$APP_ENV files.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newMigrateCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(env.NewEnvService())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
