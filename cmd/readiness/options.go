package main

import (
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Print the intake form choices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeJSON(cmd, "", types.IntakeOptions())
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
