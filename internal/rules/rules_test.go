package rules

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigwatch/internal/telemetry"
)

// nominal returns a record with every reading in its quiet operating range.
func nominal(ts time.Time) telemetry.Record {
	return telemetry.Record{
		Timestamp:         ts,
		ROP:               50,
		PLCROP:            49,
		HookLoad:          40,
		StandpipePressure: 2900,
		Pump1:             60,
		Pump2:             58,
		VibeLateral:       4,
		VibeAxial:         3,
	}
}

func seriesOf(records ...telemetry.Record) *telemetry.Series {
	return &telemetry.Series{Records: records}
}

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func TestROPVolatility(t *testing.T) {
	t.Run("alerts when the rolling mean exceeds the threshold", func(t *testing.T) {
		a := nominal(t0)
		b := nominal(t0.Add(10 * time.Second))
		a.ROP = 100
		b.ROP = 10 // |(10-100)/100| = 0.9

		alerts := Evaluate(seriesOf(a, b), DefaultThresholds())
		assert.Contains(t, alerts, AlertROPVolatility)
	})

	t.Run("stays quiet below the threshold", func(t *testing.T) {
		a := nominal(t0)
		b := nominal(t0.Add(10 * time.Second))
		a.ROP = 100
		b.ROP = 110 // 0.1

		alerts := Evaluate(seriesOf(a, b), DefaultThresholds())
		assert.NotContains(t, alerts, AlertROPVolatility)
	})

	t.Run("a spike older than the window does not alert", func(t *testing.T) {
		a := nominal(t0)
		b := nominal(t0.Add(5 * time.Second))
		c := nominal(t0.Add(20 * time.Minute))
		a.ROP = 100
		b.ROP = 10 // 0.9, but 20 minutes before c
		c.ROP = 10 // change vs b is 0

		s := seriesOf(a, b, c)
		means := rollingMean(s.Records, []float64{math.NaN(), 0.9, 0}, 10*time.Minute)
		assert.InDelta(t, 0.9, means[1], 1e-12)
		assert.InDelta(t, 0.0, means[2], 1e-12) // spike fell out of the window
	})

	t.Run("restart from standstill counts as maximal volatility", func(t *testing.T) {
		a := nominal(t0)
		b := nominal(t0.Add(10 * time.Second))
		a.ROP = 0
		b.ROP = 5 // division by zero -> +Inf

		alerts := Evaluate(seriesOf(a, b), DefaultThresholds())
		assert.Contains(t, alerts, AlertROPVolatility)
	})

	t.Run("entirely missing ROP degenerates to no alert", func(t *testing.T) {
		a := nominal(t0)
		b := nominal(t0.Add(10 * time.Second))
		a.ROP = math.NaN()
		b.ROP = math.NaN()

		alerts := Evaluate(seriesOf(a, b), DefaultThresholds())
		assert.NotContains(t, alerts, AlertROPVolatility)
	})
}

func TestStuckPipe(t *testing.T) {
	t.Run("alerts on the conjunction in a single row", func(t *testing.T) {
		bad := nominal(t0.Add(time.Minute))
		bad.HookLoad = 65
		bad.ROP = 0.5
		bad.Pump1 = 0

		alerts := Evaluate(seriesOf(nominal(t0), bad), DefaultThresholds())
		assert.Contains(t, alerts, AlertStuckPipe)
	})

	t.Run("requires all three conditions simultaneously", func(t *testing.T) {
		// Each condition met, but never in the same row.
		a := nominal(t0)
		a.HookLoad = 65
		b := nominal(t0.Add(time.Second))
		b.ROP = 0.5
		c := nominal(t0.Add(2 * time.Second))
		c.Pump1 = 0

		alerts := Evaluate(seriesOf(a, b, c), DefaultThresholds())
		assert.NotContains(t, alerts, AlertStuckPipe)
	})

	t.Run("missing hook load never matches", func(t *testing.T) {
		bad := nominal(t0)
		bad.HookLoad = math.NaN()
		bad.ROP = 0.5
		bad.Pump1 = 0

		alerts := Evaluate(seriesOf(bad), DefaultThresholds())
		assert.NotContains(t, alerts, AlertStuckPipe)
	})
}

func TestLateralVibrationScenario(t *testing.T) {
	// A single lateral-vibration excursion ([10, 30, 5] g) with everything
	// else nominal triggers exactly the lateral-vibration alert.
	a := nominal(t0)
	b := nominal(t0.Add(10 * time.Second))
	c := nominal(t0.Add(20 * time.Second))
	a.VibeLateral = 10
	b.VibeLateral = 30
	c.VibeLateral = 5

	alerts := Evaluate(seriesOf(a, b, c), DefaultThresholds())
	require.Equal(t, []string{AlertLateralVibe}, alerts)
}

func TestIndicatorRules(t *testing.T) {
	t.Run("autodriller limiting", func(t *testing.T) {
		b := nominal(t0.Add(time.Second))
		b.AutoDrillerLimit = 1

		alerts := Evaluate(seriesOf(nominal(t0), b), DefaultThresholds())
		assert.Contains(t, alerts, AlertAutoDriller)
	})

	t.Run("vibration mitigation via WOB reduce", func(t *testing.T) {
		b := nominal(t0)
		b.WOBReduce = 12

		alerts := Evaluate(seriesOf(b), DefaultThresholds())
		assert.Contains(t, alerts, AlertVibeMitigation)
	})

	t.Run("vibration mitigation via RPM reduce", func(t *testing.T) {
		b := nominal(t0)
		b.RPMReduce = 7

		alerts := Evaluate(seriesOf(b), DefaultThresholds())
		assert.Contains(t, alerts, AlertVibeMitigation)
	})
}

func TestQuietSeriesHasNoAlerts(t *testing.T) {
	records := make([]telemetry.Record, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, nominal(t0.Add(time.Duration(i)*10*time.Second)))
	}
	alerts := Evaluate(seriesOf(records...), DefaultThresholds())
	assert.Empty(t, alerts)
}

func TestRowOrderIndependence(t *testing.T) {
	// The point-in-time rules are order independent: shuffling rows must not
	// change which of them trigger. (Only the rolling-window values feeding
	// the volatility rule depend on row order.)
	records := []telemetry.Record{nominal(t0)}
	stuck := nominal(t0.Add(time.Minute))
	stuck.HookLoad = 70
	stuck.ROP = 0.2
	stuck.Pump1 = 0
	vibe := nominal(t0.Add(2 * time.Minute))
	vibe.VibeLateral = 40
	records = append(records, stuck, vibe)

	want := map[string]bool{AlertStuckPipe: true, AlertLateralVibe: true}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]telemetry.Record(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		alerts := Evaluate(seriesOf(shuffled...), DefaultThresholds())
		for _, msg := range []string{AlertStuckPipe, AlertLateralVibe, AlertAutoDriller, AlertVibeMitigation} {
			got := false
			for _, a := range alerts {
				if a == msg {
					got = true
				}
			}
			assert.Equal(t, want[msg], got, "rule %q after shuffle %d", msg, i)
		}
	}
}

func TestEvaluateAttachesDerivedChannel(t *testing.T) {
	a := nominal(t0)
	b := nominal(t0.Add(10 * time.Second))
	a.ROP = 100
	b.ROP = 150

	s := seriesOf(a, b)
	Evaluate(s, DefaultThresholds())

	require.True(t, s.HasROPChange())
	assert.True(t, math.IsNaN(s.ROPChange[0]))
	assert.InDelta(t, 0.5, s.ROPChange[1], 1e-12)
}

func TestBatteryOrderIsPresentationOrder(t *testing.T) {
	// One alert per rule, reported in battery order regardless of which rows
	// trigger first.
	a := nominal(t0)
	a.VibeLateral = 40
	a.AutoDrillerLimit = 2
	b := nominal(t0.Add(time.Second))
	b.HookLoad = 70
	b.ROP = 0.1
	b.Pump1 = 0

	// Dropping ROP from 50 to 0.1 also swings the rolling percent change well
	// past the volatility threshold, so all four fire.
	alerts := Evaluate(seriesOf(a, b), DefaultThresholds())
	require.Equal(t, []string{AlertROPVolatility, AlertStuckPipe, AlertLateralVibe, AlertAutoDriller}, alerts)
}
