package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurodata/edfstore/internal/edf"
)

// writeTestEDF encodes an EDF file into a temp path and returns it.
func writeTestEDF(t *testing.T, f *edf.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.edf")
	require.NoError(t, f.WriteFile(path))
	return path
}

func TestDecodeRecording(t *testing.T) {
	f, err := edf.NewUniform([]string{"C1", "C2"}, 2.0, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)

	rec, err := decodeRecording(writeTestEDF(t, f))
	require.NoError(t, err)

	assert.Equal(t, []string{"C1", "C2"}, rec.Channels)
	assert.Equal(t, []float64{0.0, 0.5, 1.0}, rec.Times)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, rec.Samples)
}

func TestDecodeRecording_MatrixInvariants(t *testing.T) {
	f, err := edf.NewUniform([]string{"a", "b", "c"}, 100.0, [][]float64{
		make([]float64, 200),
		make([]float64, 200),
		make([]float64, 200),
	})
	require.NoError(t, err)

	rec, err := decodeRecording(writeTestEDF(t, f))
	require.NoError(t, err)

	require.Len(t, rec.Samples, len(rec.Channels))
	for i := range rec.Samples {
		assert.Len(t, rec.Samples[i], len(rec.Times))
	}
	for j := 1; j < len(rec.Times); j++ {
		assert.Greater(t, rec.Times[j], rec.Times[j-1])
	}
	assert.GreaterOrEqual(t, rec.Times[0], 0.0)
}

func TestDecodeRecording_SkipsAnnotationChannel(t *testing.T) {
	f, err := edf.NewUniform([]string{"C1", edf.AnnotationLabel}, 1.0, [][]float64{
		{1, 2},
		{0, 0},
	})
	require.NoError(t, err)

	rec, err := decodeRecording(writeTestEDF(t, f))
	require.NoError(t, err)
	assert.Equal(t, []string{"C1"}, rec.Channels)
	assert.Len(t, rec.Samples, 1)
}

func TestDecodeRecording_OnlyAnnotations(t *testing.T) {
	f, err := edf.NewUniform([]string{edf.AnnotationLabel}, 1.0, [][]float64{{0}})
	require.NoError(t, err)

	_, err = decodeRecording(writeTestEDF(t, f))
	require.Error(t, err)
	assert.Equal(t, KindDecode, KindOf(err))
	assert.Contains(t, err.Error(), "no data channels")
}

func TestDecodeRecording_MixedRates(t *testing.T) {
	f, err := edf.NewUniform([]string{"C1", "C2"}, 1.0, [][]float64{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)
	// Desynchronize the second signal's rate while keeping the payload
	// consistent with the headers.
	f.Signals[1].SamplesPerRecord = 4
	f.Data[1] = []float64{3, 4, 5, 6}

	_, err = decodeRecording(writeTestEDF(t, f))
	require.Error(t, err)
	assert.Equal(t, KindDecode, KindOf(err))
	assert.Contains(t, err.Error(), "different rate")
}

func TestDecodeRecording_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.edf")
	require.NoError(t, os.WriteFile(path, []byte("not an edf file"), 0o600))

	_, err := decodeRecording(path)
	require.Error(t, err)
	assert.Equal(t, KindDecode, KindOf(err))
}

func TestDecodeRecording_MissingFile(t *testing.T) {
	_, err := decodeRecording(filepath.Join(t.TempDir(), "missing.edf"))
	require.Error(t, err)
	assert.Equal(t, KindDecode, KindOf(err))
}
