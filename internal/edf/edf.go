// Package edf reads and writes European Data Format (EDF) files, the
// container format used for multi-channel biosignal recordings.
//
// An EDF file is a 256-byte fixed-width ASCII header, followed by one
// 256-byte ASCII header per signal, followed by data records of 2-byte
// little-endian signed samples. Samples are stored as digital values and
// mapped to physical units through each signal's calibration range.
//
// The reader materializes the whole file in memory; there is no streaming
// mode. Callers that need bounded memory must bound the input instead.
package edf

// AnnotationLabel is the signal label EDF+ uses for its annotation channel.
// Annotation signals carry text events, not samples, and are normally
// excluded from the sample matrix by callers.
const AnnotationLabel = "EDF Annotations"

// Header holds the fixed portion of an EDF header record.
type Header struct {
	Version     string
	PatientID   string
	RecordingID string
	StartDate   string // dd.mm.yy
	StartTime   string // hh.mm.ss
	// NumRecords is the number of data records in the file. The on-disk
	// value may be -1 (unknown); the reader resolves it from the payload
	// length and always stores the resolved count here.
	NumRecords int
	// RecordDuration is the duration of one data record in seconds.
	RecordDuration float64
	NumSignals     int
}

// SignalHeader describes one signal within a recording.
type SignalHeader struct {
	Label          string
	TransducerType string
	PhysicalDim    string
	PhysMin        float64
	PhysMax        float64
	DigMin         int
	DigMax         int
	Prefilter      string
	// SamplesPerRecord is the number of samples this signal contributes
	// to each data record. Signals in one file may differ, which means
	// they sample at different rates.
	SamplesPerRecord int
}

// SampleRate returns the signal's sampling frequency in Hz given the
// record duration, or 0 if the duration is not positive.
func (s SignalHeader) SampleRate(recordDuration float64) float64 {
	if recordDuration <= 0 {
		return 0
	}
	return float64(s.SamplesPerRecord) / recordDuration
}

// IsAnnotation reports whether the signal is an EDF+ annotation channel.
func (s SignalHeader) IsAnnotation() bool {
	return s.Label == AnnotationLabel
}

// File is a fully decoded EDF file.
type File struct {
	Header  Header
	Signals []SignalHeader
	// Data holds physical sample values, one slice per signal in header
	// order. Slices may have different lengths when signals sample at
	// different rates: len(Data[i]) == Signals[i].SamplesPerRecord *
	// Header.NumRecords.
	Data [][]float64
}
