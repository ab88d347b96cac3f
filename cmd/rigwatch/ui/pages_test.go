package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rigwatch/internal/classifier"
	"rigwatch/internal/pipeline"
	"rigwatch/internal/rules"
	"rigwatch/internal/telemetry"
)

func testResult() *pipeline.Result {
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	series := &telemetry.Series{Records: []telemetry.Record{
		{Timestamp: t0, ROP: 50, PLCROP: 49, VibeLateral: 10},
		{Timestamp: t0.Add(10 * time.Second), ROP: 51, PLCROP: 50, VibeLateral: 30},
	}}
	return &pipeline.Result{
		RunID:           "test-run",
		Source:          "export.csv",
		Series:          series,
		Alerts:          []string{rules.AlertLateralVibe},
		Recommendations: []string{"Tune RPM and WOB if vibration levels exceed 25g."},
		Flags: []classifier.Flag{
			{Timestamp: t0, PLCROP: 49, VibeLateral: 10, Flag: 0},
			{Timestamp: t0.Add(10 * time.Second), PLCROP: 50, VibeLateral: 30, Flag: 1},
		},
		Warnings: []string{"could not load ML model: gone"},
	}
}

func TestRenderAlerts(t *testing.T) {
	out := renderAlerts(testResult(), DefaultStyles())
	assert.Contains(t, out, rules.AlertLateralVibe)
	assert.Contains(t, out, "Expert Recommendations")
	assert.Contains(t, out, "could not load ML model")
}

func TestRenderAlertsQuiet(t *testing.T) {
	res := testResult()
	res.Alerts = nil
	res.Warnings = nil
	out := renderAlerts(res, DefaultStyles())
	assert.Contains(t, out, "No critical alerts detected.")
}

func TestRenderML(t *testing.T) {
	out := renderML(testResult(), DefaultStyles(), 60)
	assert.Contains(t, out, "screen overload risk")
	assert.Contains(t, out, "2025-06-01 08:00:10")
}

func TestSimpleTable(t *testing.T) {
	tbl := NewSimpleTable("Stats", "Channel", "mean")
	tbl.AddRow(telemetry.ColROP, "42")
	out := tbl.View(DefaultStyles())

	assert.Contains(t, out, "Stats")
	assert.Contains(t, out, telemetry.ColROP)
	assert.Contains(t, out, "42")
	assert.True(t, strings.Contains(out, "Channel"))
}

func TestPlottableBridgesGaps(t *testing.T) {
	res := testResult()
	res.Series.Records[1].ROP = math.NaN()
	values := plottable(res, telemetry.Channels[0])
	// The missing sample repeats the last observation.
	assert.Equal(t, []float64{50, 50}, values)
}

func TestTabNavigation(t *testing.T) {
	m := New(testResult(), "all stable")
	m.setTab(tabStats)
	assert.Equal(t, tabStats, m.tab)
	m.setTab(tabCount + 3) // out of range is ignored
	assert.Equal(t, tabStats, m.tab)
}
