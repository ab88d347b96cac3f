package telemetry

import (
	"math"
	"time"
)

// Record is one historian row: a timestamp plus instantaneous readings.
// Missing or malformed cells are NaN; downstream predicates treat NaN as
// non-matching rather than erroring.
type Record struct {
	Timestamp         time.Time
	ROP               float64
	PLCROP            float64
	HookLoad          float64
	StandpipePressure float64
	Pump1             float64
	Pump2             float64
	VibeLateral       float64
	VibeAxial         float64
	AutoDrillerLimit  float64
	WOBReduce         float64
	RPMReduce         float64
}

// Series is an ordered sequence of records keyed by timestamp. Rows are kept
// exactly as loaded: duplicate or out-of-order timestamps are accepted.
// The only post-load mutation is the derived ROP-change channel appended by
// the rule evaluator.
type Series struct {
	Records []Record

	// ROPChange holds the absolute percent-change of ROP between consecutive
	// samples, one value per record (NaN until SetROPChange is called, and
	// always NaN at index 0).
	ROPChange []float64
}

// Len returns the number of rows.
func (s *Series) Len() int { return len(s.Records) }

// SetROPChange attaches the derived ROP-change channel. The slice must be
// row-aligned with Records.
func (s *Series) SetROPChange(change []float64) {
	s.ROPChange = change
}

// HasROPChange reports whether the derived channel has been computed.
func (s *Series) HasROPChange() bool { return len(s.ROPChange) == s.Len() }

// Missing reports whether a reading is absent.
func Missing(v float64) bool { return math.IsNaN(v) }
