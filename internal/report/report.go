// Package report assembles the end-of-run artifacts: the alerts/
// recommendations PDF and the narrative text. A Report exists only for the
// duration of an export; nothing here persists between runs.
package report

import (
	"context"

	"rigwatch/internal/narrative"
)

// Report aggregates one run's alerts, recommendations and narrative.
type Report struct {
	Alerts          []string
	Recommendations []string
	Narrative       string
}

// Compose builds a Report, resolving the narrative through the given
// generator. Generator failures surface inline inside the narrative text;
// composition itself cannot fail.
func Compose(ctx context.Context, g narrative.Generator, alerts, recommendations []string) Report {
	return Report{
		Alerts:          alerts,
		Recommendations: recommendations,
		Narrative:       narrative.Summarize(ctx, g, alerts, recommendations),
	}
}
