// Package classifier applies the pre-trained shale-shaker screen-overload
// model to loaded telemetry. The model itself is produced offline; this
// package only loads the serialized artifact and scores rows. The failure
// contract is deliberate and total: if the artifact cannot be loaded or a
// scoring pass fails, every row's flag defaults to 0 and a warning is
// surfaced, with no retry and no partial application.
package classifier

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"rigwatch/internal/telemetry"
)

// Flag is one scored row. Scoring drops rows with a missing feature, so a
// model-produced flag set may be shorter than the series.
type Flag struct {
	Timestamp   time.Time
	PLCROP      float64
	VibeLateral float64
	Flag        int // 1 = predicted screen overload risk
}

// RiskClassifier scores a series into per-row binary flags.
type RiskClassifier interface {
	Flags(s *telemetry.Series) ([]Flag, error)
}

// LinearModel is the serialized artifact format: a linear decision function
// over (PLC ROP, lateral vibration).
type LinearModel struct {
	Bias      float64
	Weights   [2]float64 // PLC ROP, DAS Vibe Lateral Max
	Threshold float64
}

// LoadModel gob-decodes a model artifact from disk.
func LoadModel(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	var m LinearModel
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	return &m, nil
}

// SaveModel gob-encodes a model artifact. Used by the offline training
// tooling and by tests.
func SaveModel(path string, m *LinearModel) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model artifact: %w", err)
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(m)
}

// Flags scores every row that has both features present.
func (m *LinearModel) Flags(s *telemetry.Series) ([]Flag, error) {
	flags := make([]Flag, 0, s.Len())
	for _, r := range s.Records {
		if telemetry.Missing(r.PLCROP) || telemetry.Missing(r.VibeLateral) {
			continue
		}
		score := m.Bias + m.Weights[0]*r.PLCROP + m.Weights[1]*r.VibeLateral
		f := Flag{Timestamp: r.Timestamp, PLCROP: r.PLCROP, VibeLateral: r.VibeLateral}
		if score >= m.Threshold {
			f.Flag = 1
		}
		flags = append(flags, f)
	}
	return flags, nil
}

// Zero is the fallback classifier substituted when the artifact cannot be
// loaded, so the dashboard stays usable. No scoring happens, so no rows are
// dropped: every row in the series gets a zero flag.
type Zero struct{}

// Flags implements RiskClassifier with all-zero flags.
func (Zero) Flags(s *telemetry.Series) ([]Flag, error) {
	flags := make([]Flag, 0, s.Len())
	for _, r := range s.Records {
		flags = append(flags, Flag{Timestamp: r.Timestamp, PLCROP: r.PLCROP, VibeLateral: r.VibeLateral})
	}
	return flags, nil
}
