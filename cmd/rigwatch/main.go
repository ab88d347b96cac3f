package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rigwatch/cmd/rigwatch/ui"
	"rigwatch/internal/config"
	"rigwatch/internal/export"
	"rigwatch/internal/narrative"
	"rigwatch/internal/pipeline"
	"rigwatch/internal/report"
	"rigwatch/internal/watch"
)

var (
	// Global flags
	verbose    bool
	configPath string
	outputDir  string

	// Logger
	logger *zap.Logger

	// Loaded configuration
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rigwatch",
	Short: "rigwatch - drilling operations monitoring",
	Long: `rigwatch ingests drilling-rig sensor CSV exports, evaluates the anomaly
rule battery, and produces reports and downloadable artifacts.

Each invocation processes one file in a single synchronous pass:
load -> evaluate -> classify -> render/export. Runs are isolated; a bad
file never affects the next one.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if outputDir != "" {
			cfg.Export.OutputDir = outputDir
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// analyzeCmd runs the pipeline and prints alerts and guidance
var analyzeCmd = &cobra.Command{
	Use:   "analyze [csv]",
	Short: "Evaluate the anomaly rule battery over a sensor CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

// dashCmd launches the interactive dashboard
var dashCmd = &cobra.Command{
	Use:   "dash [csv]",
	Short: "Open the interactive monitoring dashboard",
	Long: `Opens the terminal dashboard with the monitoring tabs:
trends, alerts & expert guidance, session summary, statistics, and the
ML screen-overload detections.`,
	Args: cobra.ExactArgs(1),
	RunE: runDash,
}

// statsCmd prints the statistical summary table
var statsCmd = &cobra.Command{
	Use:   "stats [csv]",
	Short: "Print the mean/std/min/max summary per channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

// exportCmd writes the downloadable CSV artifacts
var exportCmd = &cobra.Command{
	Use:   "export [csv]",
	Short: "Write cleaned, statistics and ML-flag CSV artifacts",
	Long: `Writes three artifacts into the output directory:
  processed_data.csv               cleaned, timestamp-indexed series
  statistical_summary.csv          per-channel mean/std/min/max
  ml_screen_efficiency_flags.csv   classifier features and binary flag`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// reportCmd writes the PDF alert summary (optionally with narrative)
var reportCmd = &cobra.Command{
	Use:   "report [csv]",
	Short: "Write the alerts/recommendations PDF report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

var withNarrative bool

// watchCmd tails a growing historian export
var watchCmd = &cobra.Command{
	Use:   "watch [csv]",
	Short: "Re-run the analysis whenever the file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "rigwatch.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "out", "o", "", "output directory for artifacts")

	reportCmd.Flags().BoolVar(&withNarrative, "narrative", false, "also generate the session narrative via the chat-completion service")

	rootCmd.AddCommand(analyzeCmd, dashCmd, statsCmd, exportCmd, reportCmd, watchCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	runner := pipeline.NewRunner(cfg, logger)
	res, err := runner.Run(args[0])
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func printResult(res *pipeline.Result) {
	if len(res.Alerts) == 0 {
		fmt.Println("No critical alerts detected.")
	} else {
		fmt.Println("Detected Alerts:")
		for _, a := range res.Alerts {
			fmt.Printf("  ! %s\n", a)
		}
	}
	fmt.Println("\nExpert Recommendations:")
	for _, r := range res.Recommendations {
		fmt.Printf("  - %s\n", r)
	}
	for _, w := range res.Warnings {
		fmt.Printf("\nwarning: %s\n", w)
	}
}

func runDash(cmd *cobra.Command, args []string) error {
	runner := pipeline.NewRunner(cfg, logger)
	res, err := runner.Run(args[0])
	if err != nil {
		return err
	}

	narrativeText := narrative.Summarize(cmd.Context(), newGenerator(cmd.Context()), res.Alerts, res.Recommendations)
	return ui.Run(res, narrativeText)
}

func runStats(cmd *cobra.Command, args []string) error {
	runner := pipeline.NewRunner(cfg, logger)
	res, err := runner.Run(args[0])
	if err != nil {
		return err
	}
	for _, s := range res.Stats {
		fmt.Printf("%-36s mean=%-12.4g std=%-12.4g min=%-12.4g max=%-12.4g\n",
			s.Channel, s.Mean, s.Std, s.Min, s.Max)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	runner := pipeline.NewRunner(cfg, logger)
	res, err := runner.Run(args[0])
	if err != nil {
		return err
	}

	artifacts := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"processed_data.csv", func(f *os.File) error { return export.Cleaned(f, res.Series) }},
		{"statistical_summary.csv", func(f *os.File) error { return export.SummaryCSV(f, res.Stats) }},
		{"ml_screen_efficiency_flags.csv", func(f *os.File) error { return export.FlagsCSV(f, res.Flags) }},
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.Export.OutputDir, a.name)
		if err := writeArtifact(path, a.write); err != nil {
			return err
		}
		logger.Info("artifact written", zap.String("path", path), zap.String("run_id", res.RunID))
		fmt.Printf("wrote %s\n", path)
	}

	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	return nil
}

func writeArtifact(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func runReport(cmd *cobra.Command, args []string) error {
	runner := pipeline.NewRunner(cfg, logger)
	res, err := runner.Run(args[0])
	if err != nil {
		return err
	}

	var gen narrative.Generator = narrative.Unavailable{Err: fmt.Errorf("narrative generation disabled")}
	if withNarrative {
		gen = newGenerator(cmd.Context())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLMTimeout())
	defer cancel()
	rep := report.Compose(ctx, gen, res.Alerts, res.Recommendations)

	pdfBytes, err := rep.PDF()
	if err != nil {
		return err
	}
	pdfPath := filepath.Join(cfg.Export.OutputDir, "drilling_alerts_summary.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0644); err != nil {
		return fmt.Errorf("write %s: %w", pdfPath, err)
	}
	fmt.Printf("wrote %s\n", pdfPath)

	if withNarrative {
		txtPath := filepath.Join(cfg.Export.OutputDir, "session_summary.txt")
		if err := os.WriteFile(txtPath, []byte(rep.Narrative+"\n"), 0644); err != nil {
			return fmt.Errorf("write %s: %w", txtPath, err)
		}
		fmt.Printf("wrote %s\n", txtPath)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	runner := pipeline.NewRunner(cfg, logger)

	w, err := watch.New(args[0], func(path string) error {
		res, err := runner.Run(path)
		if err != nil {
			return err
		}
		fmt.Printf("--- %s (%d rows) ---\n", path, res.Series.Len())
		printResult(res)
		return nil
	}, logger)
	if err != nil {
		return err
	}

	if err := w.Start(cmd.Context()); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Println("watching for changes, Ctrl-C to stop")
	<-cmd.Context().Done()
	return nil
}

// newGenerator builds the chat-completion generator, degrading to an
// Unavailable generator (inline-error narrative) when the service cannot be
// reached or no key is configured.
func newGenerator(ctx context.Context) narrative.Generator {
	gen, err := narrative.NewGenAIGenerator(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		logger.Warn("narrative service unavailable", zap.Error(err))
		return narrative.Unavailable{Err: err}
	}
	logger.Debug("narrative generator ready", zap.String("generator", gen.Name()))
	return gen
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
