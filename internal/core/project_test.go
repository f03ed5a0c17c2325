package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_ChannelMajorOrder(t *testing.T) {
	rec := &Recording{
		Channels: []string{"C1", "C2"},
		Times:    []float64{0.0, 0.5, 1.0},
		Samples: [][]float64{
			{1, 2, 3},
			{4, 5, 6},
		},
	}

	rows := Project(rec)
	require.Len(t, rows, 6)

	want := []SampleRecord{
		{Channel: "C1", Time: 0.0, Value: 1},
		{Channel: "C1", Time: 0.5, Value: 2},
		{Channel: "C1", Time: 1.0, Value: 3},
		{Channel: "C2", Time: 0.0, Value: 4},
		{Channel: "C2", Time: 0.5, Value: 5},
		{Channel: "C2", Time: 1.0, Value: 6},
	}
	assert.Equal(t, want, rows)
}

func TestProject_CountIsChannelsTimesSamples(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		samples  int
	}{
		{"single channel single sample", 1, 1},
		{"single channel", 1, 100},
		{"single sample", 8, 1},
		{"many by many", 16, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Recording{
				Times: make([]float64, tt.samples),
			}
			for c := 0; c < tt.channels; c++ {
				rec.Channels = append(rec.Channels, "ch")
				rec.Samples = append(rec.Samples, make([]float64, tt.samples))
			}

			rows := Project(rec)
			assert.Len(t, rows, tt.channels*tt.samples)
		})
	}
}

func TestProject_EmptyRecording(t *testing.T) {
	rows := Project(&Recording{})
	assert.Empty(t, rows)
}

func TestProject_NonFinitePassThrough(t *testing.T) {
	rec := &Recording{
		Channels: []string{"C1"},
		Times:    []float64{0, 1, 2},
		Samples:  [][]float64{{math.NaN(), math.Inf(1), math.Inf(-1)}},
	}

	rows := Project(rec)
	require.Len(t, rows, 3)
	assert.True(t, math.IsNaN(rows[0].Value))
	assert.True(t, math.IsInf(rows[1].Value, 1))
	assert.True(t, math.IsInf(rows[2].Value, -1))
}

func TestProject_DraftRowsHaveNoID(t *testing.T) {
	rec := &Recording{
		Channels: []string{"C1"},
		Times:    []float64{0},
		Samples:  [][]float64{{42}},
	}

	rows := Project(rec)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].ID)
}
