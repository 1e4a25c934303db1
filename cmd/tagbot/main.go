// Package main implements the tagbot CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tagbot",
	Short: "Keyword-based message tagger",
	Long: `tagbot assigns the two best-matching categories to short text messages
by scoring configured keyword lists against the message tokens.`,
}

var (
	cfgFile   string
	rulesFile string
	debugMode bool
)

func main() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(rulesCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "application config file (default config.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "rule file override (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
