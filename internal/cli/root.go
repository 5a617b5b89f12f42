package cli

import (
	"fmt"
	"os"

	"github.com/hardenctl/hardenctl/internal/observability"
	"github.com/hardenctl/hardenctl/internal/observability/logging"
	otelobs "github.com/hardenctl/hardenctl/internal/observability/otel"
	"github.com/hardenctl/hardenctl/internal/observability/receipt"
	"github.com/hardenctl/hardenctl/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hardenctl",
	Short: "Compliance directive engine for installer plans",
	Long: `hardenctl: reconcile security-compliance directives with an installation plan.
Loads partition, password, package and bootloader requirements and reports
on or applies the automatic fixes against a plan snapshot.`,
	Version:           version.BuildVersion(),
	PersistentPreRunE: setupContext,
	PersistentPostRun: teardownContext,
}

var (
	logFormatFlag string
	logLevelFlag  string
	logOutputFlag string

	otelFlag         bool
	otelEndpointFlag string
	otelProtocolFlag string
	otelInsecureFlag bool

	receiptFlag     string
	receiptModeFlag string
)

// Held between pre-run and post-run for shutdown.
var (
	activeLogger  logging.Logger
	activeReceipt receipt.Writer
	activeOtel    *otelobs.Handle
)

func setupContext(cmd *cobra.Command, args []string) error {
	ctx := observability.WithOpID(cmd.Context())

	logger, err := logging.NewLogger(logging.Config{
		Format: logFormatFlag,
		Level:  logLevelFlag,
		Output: logOutputFlag,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	activeLogger = logger
	ctx = logging.WithLogger(ctx, logger)

	if receiptFlag != "" {
		w, err := receipt.NewWriter(receiptFlag, receiptModeFlag)
		if err != nil {
			return err
		}
		activeReceipt = w
		ctx = receipt.WithWriter(ctx, w)
	}

	if otelFlag {
		cfg := otelobs.DefaultConfig()
		cfg.Enabled = true
		cfg.Endpoint = otelEndpointFlag
		cfg.Protocol = otelProtocolFlag
		cfg.Insecure = otelInsecureFlag
		h, err := otelobs.Init(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		activeOtel = h
		ctx = otelobs.WithHandle(ctx, h)
	}

	cmd.SetContext(ctx)
	return nil
}

func teardownContext(cmd *cobra.Command, args []string) {
	if activeOtel != nil {
		_ = activeOtel.Shutdown(cmd.Context())
	}
	if activeReceipt != nil {
		_ = activeReceipt.Close()
	}
	if activeLogger != nil {
		_ = activeLogger.Close()
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logFormatFlag, "log-format", "pretty", "Log format: pretty or jsonl")
	pf.StringVar(&logLevelFlag, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&logOutputFlag, "log-output", "stderr", "Log output: stderr or file path")
	pf.BoolVar(&otelFlag, "otel", false, "Enable OpenTelemetry tracing")
	pf.StringVar(&otelEndpointFlag, "otel-endpoint", "", "OTLP endpoint (default from env or localhost)")
	pf.StringVar(&otelProtocolFlag, "otel-protocol", otelobs.ProtocolHTTP, "OTLP protocol: otlphttp or otlpgrpc")
	pf.BoolVar(&otelInsecureFlag, "otel-insecure", false, "Allow insecure OTLP connections")
	pf.StringVar(&receiptFlag, "receipt", "", "Write an audit receipt to this path")
	pf.StringVar(&receiptModeFlag, "receipt-mode", "append", "Receipt write mode: overwrite or append")

	rootCmd.AddCommand(GetEvaluateCmd())
	rootCmd.AddCommand(GetLintCmd())
	rootCmd.AddCommand(GetRenderCmd())
}
