// Package rules evaluates the fixed battery of drilling anomaly predicates
// over a loaded telemetry series. Rules are independent: each inspects the
// whole series and yields at most one alert string, and evaluation order
// matters only for presentation.
package rules

import (
	"math"
	"time"

	"rigwatch/internal/telemetry"
)

// Thresholds carries the domain calibration for the rule battery. Defaults
// match the values in use on current rigs; field engineers can override them
// in the config file.
type Thresholds struct {
	// ROPVolatility is the rolling-mean absolute percent-change of ROP above
	// which drilling is considered unstable (ratio, 0.5 = 50%).
	ROPVolatility float64
	// VolatilityWindow is the time-based rolling window for the ROP rule.
	VolatilityWindow time.Duration
	// HookLoad (klbs), ROPFloor (ft/hr): stuck-pipe conjunction bounds.
	HookLoad float64
	ROPFloor float64
	// LateralVibe is the lateral vibration alarm level (g).
	LateralVibe float64
}

// DefaultThresholds returns the rig-standard calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ROPVolatility:    0.5,
		VolatilityWindow: 10 * time.Minute,
		HookLoad:         60,
		ROPFloor:         1,
		LateralVibe:      25,
	}
}

// Alert messages, one per rule. Wording is fixed: supervisors grep shift
// handover notes for these exact strings.
const (
	AlertROPVolatility  = "Significant ROP fluctuation (>50% in 10 min) detected."
	AlertStuckPipe      = "High hook load while pumps are off and ROP is near zero. Possible stuck pipe."
	AlertLateralVibe    = "Excessive lateral vibration detected (>25g)."
	AlertAutoDriller    = "AutoDriller limiting detected."
	AlertVibeMitigation = "DAS vibration mitigation active."
)

// Rule is a single anomaly predicate over the whole series.
type Rule struct {
	Name    string
	Message string
	Match   func(s *telemetry.Series, t Thresholds) bool
}

// Battery returns the rule set in presentation order.
func Battery() []Rule {
	return []Rule{
		{"rop_volatility", AlertROPVolatility, matchROPVolatility},
		{"stuck_pipe", AlertStuckPipe, matchStuckPipe},
		{"lateral_vibration", AlertLateralVibe, matchLateralVibe},
		{"autodriller_limiting", AlertAutoDriller, matchAutoDriller},
		{"vibration_mitigation", AlertVibeMitigation, matchVibeMitigation},
	}
}

// Evaluate runs every rule and returns the triggered alert strings in
// battery order. It also computes and attaches the derived ROP-change
// channel to the series. Columns that are entirely missing values make the
// affected rule degenerate to "no alert"; they never raise.
func Evaluate(s *telemetry.Series, t Thresholds) []string {
	if !s.HasROPChange() {
		s.SetROPChange(ropChange(s))
	}

	var alerts []string
	for _, r := range Battery() {
		if r.Match(s, t) {
			alerts = append(alerts, r.Message)
		}
	}
	return alerts
}

// ropChange computes the absolute percent-change of ROP between consecutive
// samples. Index 0 is NaN. A zero previous reading yields +Inf, which the
// rolling mean propagates, matching how the historian tooling treats a
// restart from standstill as maximal volatility.
func ropChange(s *telemetry.Series) []float64 {
	change := make([]float64, s.Len())
	for i := range change {
		if i == 0 {
			change[i] = math.NaN()
			continue
		}
		prev := s.Records[i-1].ROP
		cur := s.Records[i].ROP
		change[i] = math.Abs((cur - prev) / prev)
	}
	return change
}

func matchROPVolatility(s *telemetry.Series, t Thresholds) bool {
	means := rollingMean(s.Records, s.ROPChange, t.VolatilityWindow)
	for _, m := range means {
		if m > t.ROPVolatility {
			return true
		}
	}
	return false
}

func matchStuckPipe(s *telemetry.Series, t Thresholds) bool {
	for _, r := range s.Records {
		if r.HookLoad > t.HookLoad && r.ROP < t.ROPFloor && r.Pump1 == 0 {
			return true
		}
	}
	return false
}

func matchLateralVibe(s *telemetry.Series, t Thresholds) bool {
	for _, r := range s.Records {
		if r.VibeLateral > t.LateralVibe {
			return true
		}
	}
	return false
}

func matchAutoDriller(s *telemetry.Series, _ Thresholds) bool {
	for _, r := range s.Records {
		if r.AutoDrillerLimit > 0 {
			return true
		}
	}
	return false
}

func matchVibeMitigation(s *telemetry.Series, _ Thresholds) bool {
	for _, r := range s.Records {
		if r.WOBReduce > 0 || r.RPMReduce > 0 {
			return true
		}
	}
	return false
}
