// Package stats computes the per-channel statistical summary shown on the
// dashboard and offered as a CSV download.
package stats

import (
	"math"

	"rigwatch/internal/telemetry"
)

// Summary holds mean / sample standard deviation / min / max for one
// channel. Fields are NaN when the channel has no observed values (or, for
// Std, fewer than two).
type Summary struct {
	Channel string
	Mean    float64
	Std     float64
	Min     float64
	Max     float64
}

// Summarize computes summaries for the eleven sensor channels plus the
// derived ROP-change channel when present, skipping missing values.
func Summarize(s *telemetry.Series) []Summary {
	out := make([]Summary, 0, len(telemetry.Channels)+1)
	for _, ch := range telemetry.Channels {
		values := make([]float64, s.Len())
		for i, r := range s.Records {
			values[i] = ch.Get(r)
		}
		out = append(out, summarize(ch.Name, values))
	}
	if s.HasROPChange() {
		out = append(out, summarize(telemetry.ColROPChange, s.ROPChange))
	}
	return out
}

func summarize(name string, values []float64) Summary {
	sum := Summary{
		Channel: name,
		Mean:    math.NaN(),
		Std:     math.NaN(),
		Min:     math.NaN(),
		Max:     math.NaN(),
	}

	total := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		total += v
		n++
		if math.IsNaN(sum.Min) || v < sum.Min {
			sum.Min = v
		}
		if math.IsNaN(sum.Max) || v > sum.Max {
			sum.Max = v
		}
	}
	if n == 0 {
		return sum
	}

	mean := total / float64(n)
	sum.Mean = mean

	if n >= 2 {
		ss := 0.0
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			d := v - mean
			ss += d * d
		}
		sum.Std = math.Sqrt(ss / float64(n-1))
	}
	return sum
}
