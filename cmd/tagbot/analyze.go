package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var analyzeDetails bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [message]",
	Short: "Tag a single message",
	Long:  "Analyze one message and print its primary and secondary tags.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeDetails, "details", false, "print the per-category scores")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := cliLogger()
	defer logger.Sync()

	svc, _, err := buildService(cmd.Context(), logger)
	if err != nil {
		return err
	}

	message := strings.Join(args, " ")
	printAnalysis(svc.AnalyzeDetailed(message), analyzeDetails)
	return nil
}
