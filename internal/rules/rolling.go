package rules

import (
	"math"
	"time"

	"rigwatch/internal/telemetry"
)

// rollingMean computes, for each row, the NaN-skipping mean of values over
// the time-based window (t-window, t] ending at that row's timestamp. The
// window is left-open so a sample exactly `window` old falls out. Rows are
// scanned in load order; the scan assumes timestamps are non-decreasing, and
// out-of-order rows simply fall out of the window they would otherwise join.
// A window with no observed values yields NaN.
func rollingMean(records []telemetry.Record, values []float64, window time.Duration) []float64 {
	out := make([]float64, len(records))
	for i := range records {
		cutoff := records[i].Timestamp.Add(-window)

		sum := 0.0
		count := 0
		for j := i; j >= 0; j-- {
			if !records[j].Timestamp.After(cutoff) {
				break
			}
			if math.IsNaN(values[j]) {
				continue
			}
			sum += values[j]
			count++
		}

		if count == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(count)
		}
	}
	return out
}
