package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/hardenctl/hardenctl/internal/differ"
	"github.com/hardenctl/hardenctl/internal/observability"
	"github.com/hardenctl/hardenctl/internal/observability/logging"
	otelobs "github.com/hardenctl/hardenctl/internal/observability/otel"
	"github.com/hardenctl/hardenctl/internal/observability/receipt"
	"github.com/hardenctl/hardenctl/internal/profile"
	"github.com/hardenctl/hardenctl/internal/rules"
	"github.com/hardenctl/hardenctl/internal/state"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// evaluateCmd reconciles directives with a plan snapshot
var evaluateCmd = &cobra.Command{
	Use:   "evaluate --rules <file> --state <file>",
	Short: "Evaluate compliance directives against a plan snapshot",
	Long: `Loads a directive file and a plan snapshot, checks every accumulated rule
against the plan, and reports the discrepancies. By default nothing is
mutated (dry run); with --apply the automatic fixes are performed and the
snapshot is written back.

The exit code is nonzero when any message reaches the --fail-on severity
threshold (default fatal), so the command can gate an installation in CI.

Examples:
  # Dry run, human-readable output
  hardenctl evaluate --rules profile.rules --state plan.yaml

  # Show what apply mode would change, without changing it
  hardenctl evaluate --rules profile.rules --state plan.yaml --diff

  # Apply the automatic fixes in place
  hardenctl evaluate --rules profile.rules --state plan.yaml --apply

  # JSON output for CI, failing on warnings too
  hardenctl evaluate --rules profile.rules --state plan.yaml --format=json --fail-on=warning`,
	RunE:         runEvaluate,
	SilenceUsage: true,
}

var (
	evalRulesFlag  string
	evalStateFlag  string
	evalApplyFlag  bool
	evalOutFlag    string
	evalFormatFlag string
	evalFailOnFlag string
	evalDiffFlag   bool
)

func init() {
	evaluateCmd.Flags().StringVar(&evalRulesFlag, "rules", "", "Path to directive file (required)")
	evaluateCmd.Flags().StringVar(&evalStateFlag, "state", "", "Path to plan snapshot YAML (required)")
	evaluateCmd.Flags().BoolVar(&evalApplyFlag, "apply", false, "Apply automatic fixes and write the snapshot back")
	evaluateCmd.Flags().StringVar(&evalOutFlag, "out", "", "Output path for the mutated snapshot (default: the --state path)")
	evaluateCmd.Flags().StringVar(&evalFormatFlag, "format", "text", "Output format: text or json")
	evaluateCmd.Flags().StringVar(&evalFailOnFlag, "fail-on", "fatal", "Severity threshold for failure: fatal, warning, or info")
	evaluateCmd.Flags().BoolVar(&evalDiffFlag, "diff", false, "Show the plan mutations apply mode would perform")

	_ = evaluateCmd.MarkFlagRequired("rules")
	_ = evaluateCmd.MarkFlagRequired("state")
}

// GetEvaluateCmd export
func GetEvaluateCmd() *cobra.Command {
	return evaluateCmd
}

func runEvaluate(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	sess := receipt.Start(ctx, "hardenctl evaluate", os.Args[1:])
	var receiptOpts []receipt.Option

	directiveCount := 0
	defer func() {
		receiptOpts = append(receiptOpts, receipt.WithRules(evalRulesFlag, directiveCount))
		_ = sess.Finish(err, receiptOpts...)
	}()

	log := logging.From(ctx)
	start := time.Now()

	// Start OTel span if enabled
	if h := otelobs.From(ctx); h != nil {
		var span trace.Span
		ctx, span = h.Tracer.Start(ctx, "hardenctl.evaluate",
			trace.WithAttributes(
				attribute.String("hardenctl.op_id", observability.OpID(ctx)),
				attribute.String("hardenctl.rules", evalRulesFlag),
				attribute.Bool("hardenctl.apply", evalApplyFlag),
			))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed")
			} else {
				span.SetStatus(codes.Ok, "success")
			}
			span.End()
		}()
	}

	log.Event(ctx, "evaluate.start", nil)

	var resultStatus string
	defer func() {
		log.Event(ctx, "evaluate.complete", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
			"result":      resultStatus,
		})
	}()

	failOn, parseErr := ParseFailOnLevel(evalFailOnFlag)
	if parseErr != nil {
		resultStatus = "fail"
		return parseErr
	}

	directives, err := profile.LoadFile(evalRulesFlag)
	if err != nil {
		resultStatus = "fail"
		return err
	}
	directiveCount = len(directives)

	ruleSet := rules.NewRuleSet()
	if err = profile.Apply(ruleSet, directives); err != nil {
		resultStatus = "fail"
		return fmt.Errorf("%s: %w", evalRulesFlag, err)
	}

	snap, err := state.Load(evalStateFlag)
	if err != nil {
		resultStatus = "fail"
		return err
	}

	// Preview on a copy so --diff works in dry-run mode too.
	var changes []string
	if evalDiffFlag {
		preview := snap.Clone()
		ruleSet.Evaluate(preview, false)
		diff, diffErr := differ.Preview(snap, preview)
		if diffErr != nil {
			resultStatus = "fail"
			return diffErr
		}
		changes = diff.Translations
	}

	messages := ruleSet.Evaluate(snap, !evalApplyFlag)

	if evalApplyFlag {
		outPath := evalOutFlag
		if outPath == "" {
			outPath = evalStateFlag
		}
		if err = snap.Save(outPath); err != nil {
			resultStatus = "fail"
			return err
		}
		log.Info("evaluate", "snapshot written", "path", outPath)
	}

	result := BuildEvalResult(evalRulesFlag, evalStateFlag, evalApplyFlag, messages, changes, failOn)

	receiptOpts = append(receiptOpts, receipt.WithEvaluation(
		result.Summary.Fatal, result.Summary.Warning, result.Summary.Info,
		result.Outcome, evalApplyFlag))

	switch evalFormatFlag {
	case "json":
		out, jsonErr := result.RenderJSON()
		if jsonErr != nil {
			resultStatus = "fail"
			return jsonErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	default:
		fmt.Fprint(cmd.OutOrStdout(), result.RenderText())
	}

	if result.Outcome == "FAIL" {
		resultStatus = "fail"
		return fmt.Errorf("evaluation failed: %d message(s) at or above %s", result.Summary.Failing, failOn)
	}

	resultStatus = "pass"
	return nil
}
