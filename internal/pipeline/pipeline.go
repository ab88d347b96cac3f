// Package pipeline orchestrates one synchronous run over one uploaded file:
// Load -> Evaluate -> Classify. Every run starts from fresh state and takes
// its collaborators as explicit arguments; there are no globals and no state
// shared across runs, so one bad file never affects the next.
package pipeline

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rigwatch/internal/advisor"
	"rigwatch/internal/classifier"
	"rigwatch/internal/config"
	"rigwatch/internal/rules"
	"rigwatch/internal/stats"
	"rigwatch/internal/telemetry"
)

// Result is one completed run, consumed by the subcommands and the TUI.
type Result struct {
	RunID           string
	Source          string
	Series          *telemetry.Series
	Alerts          []string
	Recommendations []string
	Stats           []stats.Summary
	Flags           []classifier.Flag

	// Warnings collects non-fatal degradations (classifier fallback etc.).
	Warnings []string
}

// Runner binds the configured thresholds and classifier for repeated runs
// (the watch subcommand re-runs the same Runner on every file change).
type Runner struct {
	cfg    *config.Config
	logger *zap.Logger
	clf    classifier.RiskClassifier

	// clfWarning is non-empty when the model artifact failed to load and the
	// zero-flag fallback is in effect for every run.
	clfWarning string
}

// NewRunner loads the classifier artifact once and prepares a Runner. A
// missing or corrupt artifact is not fatal: the runner degrades to zero
// flags and carries a warning into every Result.
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	r := &Runner{cfg: cfg, logger: logger}

	model, err := classifier.LoadModel(cfg.Classifier.ModelPath)
	if err != nil {
		r.clf = classifier.Zero{}
		r.clfWarning = fmt.Sprintf("could not load ML model: %v (all flags default to 0)", err)
		logger.Warn("classifier unavailable, using zero-flag fallback",
			zap.String("model_path", cfg.Classifier.ModelPath),
			zap.Error(err))
	} else {
		r.clf = model
	}
	return r
}

// Thresholds returns the rule calibration derived from config.
func (r *Runner) Thresholds() rules.Thresholds {
	return rules.Thresholds{
		ROPVolatility:    r.cfg.Thresholds.ROPVolatility,
		VolatilityWindow: r.cfg.VolatilityWindow(),
		HookLoad:         r.cfg.Thresholds.HookLoad,
		ROPFloor:         r.cfg.Thresholds.ROPFloor,
		LateralVibe:      r.cfg.Thresholds.LateralVibe,
	}
}

// Run executes the pipeline over one CSV file.
func (r *Runner) Run(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	series, err := telemetry.Load(f)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:           uuid.NewString(),
		Source:          path,
		Series:          series,
		Recommendations: advisor.Recommendations(),
	}

	res.Alerts = rules.Evaluate(series, r.Thresholds())

	res.Stats = stats.Summarize(series)

	flags, err := r.clf.Flags(series)
	if err != nil {
		// Same contract as a load failure: zero flags plus a warning.
		flags, _ = classifier.Zero{}.Flags(series)
		res.Warnings = append(res.Warnings, fmt.Sprintf("ML model inference failed: %v (all flags default to 0)", err))
	}
	res.Flags = flags
	if r.clfWarning != "" {
		res.Warnings = append(res.Warnings, r.clfWarning)
	}

	r.logger.Info("pipeline run complete",
		zap.String("run_id", res.RunID),
		zap.String("source", path),
		zap.Int("rows", series.Len()),
		zap.Int("alerts", len(res.Alerts)),
		zap.Int("warnings", len(res.Warnings)))

	return res, nil
}
