package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the built-in acceptance cases",
	Long:  "Analyze a fixed set of sample messages against the loaded rules and compare the tags with the expected ones.",
	Args:  cobra.NoArgs,
	RunE:  runSelftest,
}

type acceptanceCase struct {
	message   string
	primary   string
	secondary string
}

var acceptanceCases = []acceptanceCase{
	{"I want to buy your product and see pricing", "SALES", "OTHER"},
	{"My account is broken and I need help now", "SUPPORT", "OTHER"},
	{"Why was I charged twice on my invoice?", "BILLING", "OTHER"},
	{"", "OTHER", "OTHER"},
}

func runSelftest(cmd *cobra.Command, args []string) error {
	logger := cliLogger()
	defer logger.Sync()

	svc, _, err := buildService(cmd.Context(), logger)
	if err != nil {
		return err
	}

	passed, failed := 0, 0
	for i, tc := range acceptanceCases {
		result := svc.Analyze(tc.message)

		fmt.Printf("Test Case #%d\n", i+1)
		fmt.Printf("Message:  %q\n", tc.message)
		fmt.Printf("Expected: Primary=%s, Secondary=%s\n", tc.primary, tc.secondary)
		fmt.Printf("Actual:   Primary=%s, Secondary=%s\n", result.Primary, result.Secondary)

		if result.Primary == tc.primary && result.Secondary == tc.secondary {
			fmt.Println(passColor.Sprint("✅ PASSED"))
			passed++
		} else {
			fmt.Println(failColor.Sprint("❌ FAILED"))
			failed++
		}
		fmt.Println()
	}

	fmt.Printf("Results: %d passed, %d failed out of %d tests\n", passed, failed, len(acceptanceCases))
	if failed > 0 {
		return fmt.Errorf("%d acceptance cases failed", failed)
	}
	return nil
}
