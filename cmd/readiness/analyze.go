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

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a target role",
	Long:  "Run the readiness analysis for one resume and print the insight JSON. Without --text-file the built-in demo resume is analyzed.",
	RunE:  runAnalyze,
}

var (
	analyzeRole     string
	analyzeYear     string
	analyzeFile     string
	analyzeTextFile string
	analyzeOutput   string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", types.DefaultRole, "Target role")
	analyzeCmd.Flags().StringVar(&analyzeYear, "year", types.DefaultAcademicYear, "Academic year")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Resume file name (.pdf, .txt or .docx)")
	analyzeCmd.Flags().StringVar(&analyzeTextFile, "text-file", "", "Plain text file holding the resume's extracted text")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the insight to this file instead of stdout")
	_ = analyzeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	req := types.AnalyzeRequest{
		Role:         analyzeRole,
		AcademicYear: analyzeYear,
		FileName:     analyzeFile,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid intake: %w", err)
	}
	if analyzeTextFile != "" {
		text, err := os.ReadFile(analyzeTextFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		req.DocumentText = string(text)
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

	insight, err := svc.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", readiness.NewFailure(readiness.PipelineAnalysis, err).Message, err)
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintInsight(insight)
	}
	return writeJSON(cmd, analyzeOutput, insight)
}

// writeJSON prints v as indented JSON to path, or to the command's output when path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", path)
	return nil
}
