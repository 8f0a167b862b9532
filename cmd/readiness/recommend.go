package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/career-readiness/internal/observability"
	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Build a prioritized roadmap from an insight",
	Long:  "Read a readiness insight JSON (as printed by analyze) and print prioritized recommendations for its gaps.",
	RunE:  runRecommend,
}

var (
	recommendInput  string
	recommendRole   string
	recommendOutput string
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendInput, "in", "i", "", "Path to an insight JSON file")
	recommendCmd.Flags().StringVar(&recommendRole, "role", "", "Role to plan for (default: the insight's primary role)")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Write the recommendations to this file instead of stdout")
	_ = recommendCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(recommendCmd)
}

// readInsight loads an insight file written by analyze.
func readInsight(path string) (*types.ReadinessInsight, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read insight file: %w", err)
	}
	var insight types.ReadinessInsight
	if err := json.Unmarshal(data, &insight); err != nil {
		return nil, fmt.Errorf("failed to parse insight file: %w", err)
	}
	return &insight, nil
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	insight, err := readInsight(recommendInput)
	if err != nil {
		return err
	}

	role := recommendRole
	if role == "" {
		role = readiness.RoleFor(insight, types.DefaultRole)
	}

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	svc, client, err := newPipelines(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	recs, err := svc.Recommend(ctx, insight.Gaps, role)
	if err != nil {
		return fmt.Errorf("%s: %w", readiness.NewFailure(readiness.PipelineRecommendations, err).Message, err)
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRecommendations(recs)
	}
	return writeJSON(cmd, recommendOutput, recs)
}
