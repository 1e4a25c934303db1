package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var runDetails bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interactive tagging console",
	Long:  "Read messages from the terminal and tag each one. Type quit, exit or q to stop.",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	runCmd.Flags().BoolVar(&runDetails, "details", false, "print the per-category scores for every message")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	logger := cliLogger()
	defer logger.Sync()

	svc, _, err := buildService(cmd.Context(), logger)
	if err != nil {
		return err
	}

	fmt.Println("🏷  tagbot interactive console")
	fmt.Printf("📋 Categories: %s (fallback: %s)\n", strings.Join(svc.Categories(), ", "), svc.Fallback())
	fmt.Println("Type a message to tag it, or quit/exit/q to stop.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n💬 Enter message: ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}

		message := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(message) {
		case "quit", "exit", "q":
			fmt.Println("👋 Goodbye!")
			return nil
		case "":
			fmt.Println("⚠️  Please enter a message.")
			continue
		}

		printAnalysis(svc.AnalyzeDetailed(message), runDetails)
	}

	return scanner.Err()
}
