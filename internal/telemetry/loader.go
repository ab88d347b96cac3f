package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// LoadError reports a structurally unusable upload: required columns absent
// or an unparsable timestamp. It halts processing for that file only.
type LoadError struct {
	MissingColumns []string
	Line           int
	Cause          error
}

func (e *LoadError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("csv is missing required columns: %s", strings.Join(e.MissingColumns, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("csv line %d: %v", e.Line, e.Cause)
	}
	return fmt.Sprintf("csv line %d: malformed row", e.Line)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// Load parses a historian CSV export into a Series. The header is validated
// against RequiredColumns in one pass; extra columns are ignored. Date and
// time cells are combined into a single timestamp (month/day/year
// hour:minute:second) and the raw date/time columns are dropped. Numeric
// cells that are empty or malformed load as NaN rather than failing the row.
func Load(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows surface as NaN cells, not parse aborts
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{MissingColumns: RequiredColumns}
	}
	if err != nil {
		return nil, &LoadError{Line: 1, Cause: err}
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{MissingColumns: missing}
	}

	s := &Series{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &LoadError{Line: line, Cause: err}
		}

		ts, err := parseTimestamp(cell(row, idx[ColDate]), cell(row, idx[ColTime]))
		if err != nil {
			return nil, &LoadError{Line: line, Cause: err}
		}

		s.Records = append(s.Records, Record{
			Timestamp:         ts,
			ROP:               parseCell(row, idx[ColROP]),
			PLCROP:            parseCell(row, idx[ColPLCROP]),
			HookLoad:          parseCell(row, idx[ColHookLoad]),
			StandpipePressure: parseCell(row, idx[ColStandpipePressure]),
			Pump1:             parseCell(row, idx[ColPump1]),
			Pump2:             parseCell(row, idx[ColPump2]),
			VibeLateral:       parseCell(row, idx[ColVibeLateral]),
			VibeAxial:         parseCell(row, idx[ColVibeAxial]),
			AutoDrillerLimit:  parseCell(row, idx[ColAutoDrillerLimit]),
			WOBReduce:         parseCell(row, idx[ColWOBReduce]),
			RPMReduce:         parseCell(row, idx[ColRPMReduce]),
		})
	}

	return s, nil
}

func parseTimestamp(date, clock string) (time.Time, error) {
	ts, err := time.Parse(TimestampLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q %q: %w", date, clock, err)
	}
	return ts, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseCell(row []string, i int) float64 {
	raw := cell(row, i)
	if raw == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
