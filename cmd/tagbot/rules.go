package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xaenox/tagbot/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and manage keyword rules",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a rule file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesValidate,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active rule set",
	Args:  cobra.NoArgs,
	RunE:  runRulesShow,
}

var rulesSeedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load a rule file into the configured database",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesSeed,
}

func init() {
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesSeedCmd)
}

// ruleFilePath resolves which rule file a rules subcommand works on: the
// positional argument, then the --rules flag, then the configured path.
func ruleFilePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if rulesFile != "" {
		return rulesFile, nil
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return "", err
	}
	return cfg.Rules.Path, nil
}

func runRulesValidate(cmd *cobra.Command, args []string) error {
	path, err := ruleFilePath(args)
	if err != nil {
		return err
	}

	rs, err := rules.FromFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("✅ %s is valid: %d categories, fallback %s\n", path, rs.Len(), rs.Fallback())
	return nil
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	logger := cliLogger()
	defer logger.Sync()

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	rs, err := loadRuleSet(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	for _, name := range rs.Categories() {
		marker := ""
		if name == rs.Fallback() {
			marker = " (fallback)"
		}
		fmt.Printf("%s%s\n", primaryColor.Sprint(name), marker)

		keywords, _ := rs.Keywords(name)
		for _, phrase := range keywords {
			fmt.Printf("  - %s\n", phrase)
		}
	}
	return nil
}

func runRulesSeed(cmd *cobra.Command, args []string) error {
	logger := cliLogger()
	defer logger.Sync()

	path, err := ruleFilePath(args)
	if err != nil {
		return err
	}

	rs, err := rules.FromFile(path)
	if err != nil {
		return err
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveRules(cmd.Context(), rs); err != nil {
		return err
	}

	fmt.Printf("✅ Seeded %d categories from %s into the %s store\n", rs.Len(), path, cfg.Database.Driver)
	return nil
}
