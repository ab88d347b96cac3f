package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"

	"rigwatch/internal/pipeline"
	"rigwatch/internal/telemetry"
)

// renderTrends draws one line chart per sensor channel. Missing values are
// bridged with the last observation so the chart stays contiguous; an
// entirely missing channel is reported instead of plotted.
func renderTrends(res *pipeline.Result, styles Styles, width int) string {
	if width < 20 {
		width = 72
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Sensor Trends"))
	sb.WriteString("\n\n")

	for _, ch := range telemetry.Channels {
		values := plottable(res, ch)
		sb.WriteString(styles.Header.Render(ch.Name))
		sb.WriteString("\n")
		if len(values) < 2 {
			sb.WriteString(styles.Muted.Render("no data for this channel"))
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(asciigraph.Plot(values,
			asciigraph.Height(8),
			asciigraph.Width(width),
		))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func plottable(res *pipeline.Result, ch telemetry.Channel) []float64 {
	var out []float64
	last := math.NaN()
	for _, r := range res.Series.Records {
		v := ch.Get(r)
		if telemetry.Missing(v) {
			if telemetry.Missing(last) {
				continue
			}
			v = last
		}
		last = v
		out = append(out, v)
	}
	return out
}

// renderAlerts shows the triggered alerts and the expert guidance list.
func renderAlerts(res *pipeline.Result, styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Detected Alerts"))
	sb.WriteString("\n\n")

	if len(res.Alerts) == 0 {
		sb.WriteString(styles.OK.Render("No critical alerts detected."))
		sb.WriteString("\n")
	} else {
		for _, a := range res.Alerts {
			sb.WriteString(styles.Alert.Render("! " + a))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Title.Render("Expert Recommendations"))
	sb.WriteString("\n\n")
	for _, r := range res.Recommendations {
		sb.WriteString("- " + r + "\n")
	}

	if len(res.Warnings) > 0 {
		sb.WriteString("\n")
		for _, w := range res.Warnings {
			sb.WriteString(styles.Warn.Render("warning: " + w))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderSummary shows the narrative session summary.
func renderSummary(narrative string, res *pipeline.Result, styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Session Summary"))
	sb.WriteString("\n\n")
	sb.WriteString(narrative)
	sb.WriteString("\n\n")
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("run %s - %d rows from %s", res.RunID, res.Series.Len(), res.Source)))
	sb.WriteString("\n")
	return sb.String()
}

// renderStats shows the per-channel summary table.
func renderStats(res *pipeline.Result, styles Styles) string {
	t := NewSimpleTable("Statistical Summary of Key Metrics", "Channel", "mean", "std", "min", "max")
	for _, s := range res.Stats {
		t.AddRow(s.Channel, fm(s.Mean), fm(s.Std), fm(s.Min), fm(s.Max))
	}
	return t.View(styles)
}

// renderML shows the flag timeline and the most recent classifier rows.
// Flag = 1 indicates predicted screen overload risk.
func renderML(res *pipeline.Result, styles Styles, width int) string {
	if width < 20 {
		width = 72
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Machine Learning-Based Detections"))
	sb.WriteString("\n\n")
	sb.WriteString("Flag = 1 indicates predicted screen overload risk.\n\n")

	if len(res.Flags) == 0 {
		sb.WriteString(styles.Muted.Render("no scorable rows (missing features)"))
		sb.WriteString("\n")
		return sb.String()
	}

	timeline := make([]float64, len(res.Flags))
	for i, f := range res.Flags {
		timeline[i] = float64(f.Flag)
	}
	sb.WriteString(styles.Header.Render("Screen Overload Risk Flag Over Time"))
	sb.WriteString("\n")
	sb.WriteString(asciigraph.Plot(timeline,
		asciigraph.Height(4),
		asciigraph.Width(width),
	))
	sb.WriteString("\n\n")

	t := NewSimpleTable("Most Recent Detections",
		telemetry.ColTimestamp, telemetry.ColPLCROP, telemetry.ColVibeLateral, "Flag")
	start := len(res.Flags) - 50
	if start < 0 {
		start = 0
	}
	for _, f := range res.Flags[start:] {
		t.AddRow(
			f.Timestamp.Format(telemetry.ExportTimestampLayout),
			fm(f.PLCROP),
			fm(f.VibeLateral),
			strconv.Itoa(f.Flag),
		)
	}
	sb.WriteString(t.View(styles))
	return sb.String()
}

func fm(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
