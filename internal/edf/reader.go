package edf

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	headerSize       = 256 // fixed header record
	signalHeaderSize = 256 // per-signal header fields combined
	sampleSize       = 2   // 2-byte little-endian signed integer
)

// ReadFile opens and decodes the EDF file at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("edf: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes an EDF file from r, materializing every data record.
func Read(r io.Reader) (*File, error) {
	fixed := make([]byte, headerSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("edf: read header: %w", err)
	}

	hdr, headerBytes, err := parseFixedHeader(fixed)
	if err != nil {
		return nil, err
	}

	if want := headerSize + hdr.NumSignals*signalHeaderSize; headerBytes != want {
		return nil, fmt.Errorf("edf: header declares %d bytes, expected %d for %d signals",
			headerBytes, want, hdr.NumSignals)
	}

	sigBytes := make([]byte, hdr.NumSignals*signalHeaderSize)
	if _, err := io.ReadFull(r, sigBytes); err != nil {
		return nil, fmt.Errorf("edf: read signal headers: %w", err)
	}

	signals, err := parseSignalHeaders(sigBytes, hdr.NumSignals)
	if err != nil {
		return nil, err
	}

	recordSamples := 0
	for _, s := range signals {
		recordSamples += s.SamplesPerRecord
	}
	if recordSamples == 0 {
		return nil, fmt.Errorf("edf: no samples per data record")
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("edf: read data records: %w", err)
	}

	recordBytes := recordSamples * sampleSize
	if len(payload)%recordBytes != 0 {
		return nil, fmt.Errorf("edf: truncated data record: %d trailing bytes", len(payload)%recordBytes)
	}
	numRecords := len(payload) / recordBytes

	// The header may declare -1 when the writer did not know the record
	// count up front. Otherwise it must agree with the payload.
	if hdr.NumRecords >= 0 && hdr.NumRecords != numRecords {
		return nil, fmt.Errorf("edf: header declares %d data records, payload holds %d", hdr.NumRecords, numRecords)
	}
	hdr.NumRecords = numRecords

	data := decodeRecords(payload, signals, numRecords)

	return &File{Header: *hdr, Signals: signals, Data: data}, nil
}

// parseFixedHeader decodes the 256-byte fixed header. It returns the header
// and the declared total header size in bytes.
func parseFixedHeader(b []byte) (*Header, int, error) {
	hdr := &Header{
		Version:     field(b, 0, 8),
		PatientID:   field(b, 8, 80),
		RecordingID: field(b, 88, 80),
		StartDate:   field(b, 168, 8),
		StartTime:   field(b, 176, 8),
	}

	headerBytes, err := intField(b, 184, 8, "header byte count")
	if err != nil {
		return nil, 0, err
	}

	hdr.NumRecords, err = intField(b, 236, 8, "data record count")
	if err != nil {
		return nil, 0, err
	}

	hdr.RecordDuration, err = floatField(b, 244, 8, "record duration")
	if err != nil {
		return nil, 0, err
	}
	if hdr.RecordDuration <= 0 {
		return nil, 0, fmt.Errorf("edf: record duration %v is not positive", hdr.RecordDuration)
	}

	hdr.NumSignals, err = intField(b, 252, 4, "signal count")
	if err != nil {
		return nil, 0, err
	}
	if hdr.NumSignals <= 0 {
		return nil, 0, fmt.Errorf("edf: signal count %d is not positive", hdr.NumSignals)
	}

	return hdr, headerBytes, nil
}

// parseSignalHeaders decodes the per-signal header block. Fields are stored
// column-wise: all labels, then all transducer types, and so on.
func parseSignalHeaders(b []byte, ns int) ([]SignalHeader, error) {
	signals := make([]SignalHeader, ns)
	off := 0

	next := func(width int) func(i int) string {
		start := off
		off += ns * width
		return func(i int) string {
			return field(b, start+i*width, width)
		}
	}

	label := next(16)
	transducer := next(80)
	dim := next(8)
	physMin := next(8)
	physMax := next(8)
	digMin := next(8)
	digMax := next(8)
	prefilter := next(80)
	samples := next(8)

	for i := range signals {
		s := &signals[i]
		s.Label = label(i)
		s.TransducerType = transducer(i)
		s.PhysicalDim = dim(i)
		s.Prefilter = prefilter(i)

		var err error
		if s.PhysMin, err = parseFloat(physMin(i), "physical minimum", i); err != nil {
			return nil, err
		}
		if s.PhysMax, err = parseFloat(physMax(i), "physical maximum", i); err != nil {
			return nil, err
		}
		if s.DigMin, err = parseInt(digMin(i), "digital minimum", i); err != nil {
			return nil, err
		}
		if s.DigMax, err = parseInt(digMax(i), "digital maximum", i); err != nil {
			return nil, err
		}
		if s.SamplesPerRecord, err = parseInt(samples(i), "samples per record", i); err != nil {
			return nil, err
		}
		if s.SamplesPerRecord <= 0 {
			return nil, fmt.Errorf("edf: signal %d: samples per record %d is not positive", i, s.SamplesPerRecord)
		}
		if s.DigMax == s.DigMin {
			return nil, fmt.Errorf("edf: signal %d (%s): zero digital range", i, s.Label)
		}
	}

	return signals, nil
}

// decodeRecords converts the raw payload into per-signal physical values.
// Records interleave signals: within each record, signal i contributes
// SamplesPerRecord consecutive samples.
func decodeRecords(payload []byte, signals []SignalHeader, numRecords int) [][]float64 {
	data := make([][]float64, len(signals))
	for i, s := range signals {
		data[i] = make([]float64, 0, s.SamplesPerRecord*numRecords)
	}

	off := 0
	for rec := 0; rec < numRecords; rec++ {
		for i, s := range signals {
			gain := (s.PhysMax - s.PhysMin) / float64(s.DigMax-s.DigMin)
			for j := 0; j < s.SamplesPerRecord; j++ {
				raw := int16(binary.LittleEndian.Uint16(payload[off:]))
				off += sampleSize
				data[i] = append(data[i], s.PhysMin+float64(int(raw)-s.DigMin)*gain)
			}
		}
	}

	return data
}

// field extracts a fixed-width ASCII field and strips its space padding.
func field(b []byte, off, width int) string {
	return strings.TrimSpace(string(b[off : off+width]))
}

func intField(b []byte, off, width int, name string) (int, error) {
	v, err := strconv.Atoi(field(b, off, width))
	if err != nil {
		return 0, fmt.Errorf("edf: invalid %s %q", name, field(b, off, width))
	}
	return v, nil
}

func floatField(b []byte, off, width int, name string) (float64, error) {
	v, err := strconv.ParseFloat(field(b, off, width), 64)
	if err != nil {
		return 0, fmt.Errorf("edf: invalid %s %q", name, field(b, off, width))
	}
	return v, nil
}

func parseInt(s, name string, signal int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("edf: signal %d: invalid %s %q", signal, name, s)
	}
	return v, nil
}

func parseFloat(s, name string, signal int) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("edf: signal %d: invalid %s %q", signal, name, s)
	}
	return v, nil
}
