package core

import (
	"fmt"

	"github.com/neurodata/edfstore/internal/edf"
)

// decodeRecording reads a staged EDF file and materializes it into a
// Recording. It adapts the container's view (per-signal headers and
// calibrated series) to the pipeline's: named channels sharing one time
// vector and a rectangular sample matrix.
//
// EDF+ annotation signals carry text events rather than samples and are
// excluded from the matrix.
func decodeRecording(path string) (*Recording, error) {
	f, err := edf.ReadFile(path)
	if err != nil {
		return nil, decodeError(err)
	}

	rec := &Recording{}
	samplesPerRecord := 0
	for i, sig := range f.Signals {
		if sig.IsAnnotation() {
			continue
		}
		if sig.Label == "" {
			return nil, decodeError(fmt.Errorf("signal %d has no label", i))
		}
		if samplesPerRecord == 0 {
			samplesPerRecord = sig.SamplesPerRecord
		} else if sig.SamplesPerRecord != samplesPerRecord {
			return nil, decodeError(fmt.Errorf("signal %q samples at a different rate (%d/record, expected %d/record)",
				sig.Label, sig.SamplesPerRecord, samplesPerRecord))
		}
		rec.Channels = append(rec.Channels, sig.Label)
		rec.Samples = append(rec.Samples, f.Data[i])
	}

	if len(rec.Channels) == 0 {
		return nil, decodeError(fmt.Errorf("recording has no data channels"))
	}

	// All data channels share a sampling rate, so one time vector covers
	// the whole matrix.
	rate := float64(samplesPerRecord) / f.Header.RecordDuration
	n := samplesPerRecord * f.Header.NumRecords
	rec.Times = make([]float64, n)
	for j := range rec.Times {
		rec.Times[j] = float64(j) / rate
	}

	return rec, nil
}
