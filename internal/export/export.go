// Package export serializes run results to the downloadable CSV artifacts:
// the cleaned timestamp-indexed series, the statistical summary, and the
// ML screen-overload flags.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"rigwatch/internal/classifier"
	"rigwatch/internal/stats"
	"rigwatch/internal/telemetry"
)

// Cleaned writes the loaded series, derived channels included, as a
// timestamp-indexed CSV. Numeric formatting is exact ('g', -1), so a
// re-parse reproduces the original float64 values bit-for-bit.
func Cleaned(w io.Writer, s *telemetry.Series) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(telemetry.Channels)+2)
	header = append(header, telemetry.ColTimestamp)
	for _, ch := range telemetry.Channels {
		header = append(header, ch.Name)
	}
	withChange := s.HasROPChange()
	if withChange {
		header = append(header, telemetry.ColROPChange)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write cleaned header: %w", err)
	}

	row := make([]string, 0, len(header))
	for i, r := range s.Records {
		row = row[:0]
		row = append(row, r.Timestamp.Format(telemetry.ExportTimestampLayout))
		for _, ch := range telemetry.Channels {
			row = append(row, formatValue(ch.Get(r)))
		}
		if withChange {
			row = append(row, formatValue(s.ROPChange[i]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write cleaned row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SummaryCSV writes the per-channel statistics table.
func SummaryCSV(w io.Writer, summaries []stats.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Channel", "mean", "std", "min", "max"}); err != nil {
		return fmt.Errorf("write stats header: %w", err)
	}
	for _, s := range summaries {
		err := cw.Write([]string{
			s.Channel,
			formatValue(s.Mean),
			formatValue(s.Std),
			formatValue(s.Min),
			formatValue(s.Max),
		})
		if err != nil {
			return fmt.Errorf("write stats row %s: %w", s.Channel, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FlagsCSV writes the ML screen-overload flags: timestamp index plus the two
// model features and the binary flag.
func FlagsCSV(w io.Writer, flags []classifier.Flag) error {
	cw := csv.NewWriter(w)
	header := []string{
		telemetry.ColTimestamp,
		telemetry.ColPLCROP,
		telemetry.ColVibeLateral,
		"ML Screen Efficiency Flag",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write flags header: %w", err)
	}
	for i, f := range flags {
		err := cw.Write([]string{
			f.Timestamp.Format(telemetry.ExportTimestampLayout),
			formatValue(f.PLCROP),
			formatValue(f.VibeLateral),
			strconv.Itoa(f.Flag),
		})
		if err != nil {
			return fmt.Errorf("write flags row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatValue renders a float with exact round-trip precision; missing
// values export as empty cells.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
