package classifier

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigwatch/internal/telemetry"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func TestModelRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	want := &LinearModel{Bias: -3, Weights: [2]float64{0.01, 0.12}, Threshold: 0}

	require.NoError(t, SaveModel(path, want))
	got, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadModelFailures(t *testing.T) {
	t.Run("missing artifact", func(t *testing.T) {
		_, err := LoadModel(filepath.Join(t.TempDir(), "nope.gob"))
		assert.Error(t, err)
	})

	t.Run("corrupt artifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.gob")
		require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0644))
		_, err := LoadModel(path)
		assert.Error(t, err)
	})
}

func TestLinearModelFlags(t *testing.T) {
	// Flag exactly when vibration dominates: score = -3 + 0.12*vibe.
	m := &LinearModel{Bias: -3, Weights: [2]float64{0, 0.12}, Threshold: 0}

	s := &telemetry.Series{Records: []telemetry.Record{
		{Timestamp: t0, PLCROP: 50, VibeLateral: 4},                       // score -2.52 -> 0
		{Timestamp: t0.Add(time.Second), PLCROP: 50, VibeLateral: 30},     // score 0.6 -> 1
		{Timestamp: t0.Add(2 * time.Second), PLCROP: math.NaN(), VibeLateral: 30}, // dropped
		{Timestamp: t0.Add(3 * time.Second), PLCROP: 50, VibeLateral: math.NaN()}, // dropped
	}}

	flags, err := m.Flags(s)
	require.NoError(t, err)
	require.Len(t, flags, 2) // rows with a missing feature are dropped
	assert.Equal(t, 0, flags[0].Flag)
	assert.Equal(t, 1, flags[1].Flag)
	assert.Equal(t, 30.0, flags[1].VibeLateral)
}

func TestZeroFallback(t *testing.T) {
	// The fallback never scores, so rows with missing features are kept: one
	// zero flag per row, regardless of feature quality.
	s := &telemetry.Series{Records: []telemetry.Record{
		{Timestamp: t0, PLCROP: 50, VibeLateral: 100},
		{Timestamp: t0.Add(time.Second), PLCROP: math.NaN(), VibeLateral: 100},
	}}

	flags, err := Zero{}.Flags(s)
	require.NoError(t, err)
	require.Len(t, flags, len(s.Records))
	for i, f := range flags {
		assert.Equal(t, 0, f.Flag, "row %d", i)
	}
	assert.True(t, math.IsNaN(flags[1].PLCROP))
}
