package cli

import (
	"fmt"

	"github.com/hardenctl/hardenctl/internal/profile"
	"github.com/hardenctl/hardenctl/internal/rules"
	"github.com/spf13/cobra"
)

// renderCmd prints the canonical directive form
var renderCmd = &cobra.Command{
	Use:   "render --rules <file>",
	Short: "Print the canonical form of a directive file",
	Long: `Parses the directive file, merges duplicate rules per the engine's merge
semantics, and prints the deterministic re-serialization: one line per
non-empty rule collection. The output parses back into an equivalent rule
set, which makes it useful for audits and fixture diffs.

Example:
  hardenctl render --rules profile.rules`,
	RunE:         runRender,
	SilenceUsage: true,
}

var renderRulesFlag string

func init() {
	renderCmd.Flags().StringVar(&renderRulesFlag, "rules", "", "Path to directive file (required)")
	_ = renderCmd.MarkFlagRequired("rules")
}

// GetRenderCmd export
func GetRenderCmd() *cobra.Command {
	return renderCmd
}

func runRender(cmd *cobra.Command, args []string) error {
	directives, err := profile.LoadFile(renderRulesFlag)
	if err != nil {
		return err
	}

	ruleSet := rules.NewRuleSet()
	if err := profile.Apply(ruleSet, directives); err != nil {
		return fmt.Errorf("%s: %w", renderRulesFlag, err)
	}

	if out := ruleSet.String(); out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}
