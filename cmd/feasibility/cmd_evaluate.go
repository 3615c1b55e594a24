package main

import (
	"encoding/json"
	"fmt"

	"agent-feasibility/internal/di"
	"agent-feasibility/internal/domain/entity"
	"agent-feasibility/internal/usecase/submission"

	"github.com/spf13/cobra"
)

type evaluateOutput struct {
	entity.EvaluationResult
	Recommendation entity.Recommendation  `json:"recommendation"`
	Input          entity.EvaluationInput `json:"input"`
}

func newEvaluateCommand() *cobra.Command {
	var in entity.EvaluationInput

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one project and print the report as JSON",
		Long: `Evaluate one project and print the report as JSON.

Nothing is written to the database. Without an LLM credential the heuristic
estimate is used.`,
		Example: `  feasibility evaluate --name "Support Bot" \
    --description "Answers tier-1 tickets from the knowledge base" \
    --feature triage --feature "kb search" --constraint "no PII leaves the VPC"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			in = submission.Normalize(in, cfg.DefaultModelID)
			if err := submission.Validate(in); err != nil {
				return err
			}

			container, err := di.NewEvaluatorContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialise: %w", err)
			}
			defer container.Close()

			res := container.Evaluator.Run(cmd.Context(), in)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(evaluateOutput{
				EvaluationResult: res,
				Recommendation:   entity.RecommendationFor(res.TotalScore),
				Input:            in,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.ProjectName, "name", "", "Project name (required)")
	f.StringVar(&in.Description, "description", "", "What the agent should do (required)")
	f.StringVar(&in.TargetUsers, "target-users", "", "Who will use the agent")
	f.StringArrayVar(&in.Features, "feature", nil, "Key feature (repeatable)")
	f.StringArrayVar(&in.Constraints, "constraint", nil, "Constraint (repeatable)")
	f.StringVar(&in.ModelID, "model", "", "Model the project intends to use")

	return cmd
}
