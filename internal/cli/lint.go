package cli

import (
	"fmt"

	"github.com/hardenctl/hardenctl/internal/observability/logging"
	"github.com/hardenctl/hardenctl/internal/profile"
	"github.com/hardenctl/hardenctl/internal/rules"
	"github.com/spf13/cobra"
)

// lintCmd validates without evaluating
var lintCmd = &cobra.Command{
	Use:   "lint --rules <file>",
	Short: "Validate a directive file without evaluating it",
	Long: `Parses every directive in the file and reports unknown keywords and
malformed option grammars with their line numbers. No plan snapshot is
needed and nothing is evaluated.

Example:
  hardenctl lint --rules profile.rules`,
	RunE:         runLint,
	SilenceUsage: true,
}

var lintRulesFlag string

func init() {
	lintCmd.Flags().StringVar(&lintRulesFlag, "rules", "", "Path to directive file (required)")
	_ = lintCmd.MarkFlagRequired("rules")
}

// GetLintCmd export
func GetLintCmd() *cobra.Command {
	return lintCmd
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.From(ctx)

	directives, err := profile.LoadFile(lintRulesFlag)
	if err != nil {
		return err
	}

	// Unlike evaluation, lint keeps going past failures so the author sees
	// every problem at once.
	ruleSet := rules.NewRuleSet()
	bad := 0
	for _, d := range directives {
		if parseErr := ruleSet.NewRule(d.Text); parseErr != nil {
			bad++
			fmt.Fprintf(cmd.OutOrStdout(), "line %d: %v\n", d.Line, parseErr)
		}
	}

	log.Info("lint", "directives checked", "count", len(directives), "errors", bad)

	if bad > 0 {
		return fmt.Errorf("%d invalid directive(s) in %s", bad, lintRulesFlag)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d directive(s) OK\n", len(directives))
	return nil
}
