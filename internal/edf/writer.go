package edf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// NewUniform builds a single-record File in which every channel shares one
// sampling rate and identity calibration (physical range equal to the int16
// digital range), so integer-valued samples survive encoding exactly.
// data holds one slice of physical values per channel, all the same length.
func NewUniform(channels []string, sampleRate float64, data [][]float64) (*File, error) {
	if len(channels) == 0 || len(channels) != len(data) {
		return nil, fmt.Errorf("edf: %d channel names for %d data series", len(channels), len(data))
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("edf: sample rate %v is not positive", sampleRate)
	}
	n := len(data[0])
	if n == 0 {
		return nil, fmt.Errorf("edf: empty data series")
	}
	for i, series := range data {
		if len(series) != n {
			return nil, fmt.Errorf("edf: channel %s has %d samples, expected %d", channels[i], len(series), n)
		}
	}

	f := &File{
		Header: Header{
			Version:        "0",
			StartDate:      "01.01.00",
			StartTime:      "00.00.00",
			NumRecords:     1,
			RecordDuration: float64(n) / sampleRate,
			NumSignals:     len(channels),
		},
		Signals: make([]SignalHeader, len(channels)),
		Data:    data,
	}
	for i, name := range channels {
		f.Signals[i] = SignalHeader{
			Label:            name,
			PhysicalDim:      "uV",
			PhysMin:          -32768,
			PhysMax:          32767,
			DigMin:           -32768,
			DigMax:           32767,
			SamplesPerRecord: n,
		}
	}
	return f, nil
}

// Encode renders the file to EDF bytes.
func (f *File) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes the file and writes it to path.
func (f *File) WriteFile(path string) error {
	b, err := f.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("edf: write %s: %w", path, err)
	}
	return nil
}

// Write encodes the file as EDF and writes it to w.
func (f *File) Write(w io.Writer) error {
	ns := len(f.Signals)
	if ns == 0 || len(f.Data) != ns {
		return fmt.Errorf("edf: %d signal headers for %d data series", ns, len(f.Data))
	}
	if f.Header.RecordDuration <= 0 {
		return fmt.Errorf("edf: record duration %v is not positive", f.Header.RecordDuration)
	}
	numRecords := f.Header.NumRecords
	for i, s := range f.Signals {
		if s.SamplesPerRecord <= 0 {
			return fmt.Errorf("edf: signal %d: samples per record %d is not positive", i, s.SamplesPerRecord)
		}
		if s.DigMax == s.DigMin {
			return fmt.Errorf("edf: signal %d (%s): zero digital range", i, s.Label)
		}
		if len(f.Data[i]) != s.SamplesPerRecord*numRecords {
			return fmt.Errorf("edf: signal %d (%s): %d samples, expected %d",
				i, s.Label, len(f.Data[i]), s.SamplesPerRecord*numRecords)
		}
	}

	var buf bytes.Buffer
	writeFixedHeader(&buf, &f.Header, ns)
	writeSignalHeaders(&buf, f.Signals)
	writeRecords(&buf, f.Signals, f.Data, numRecords)

	_, err := w.Write(buf.Bytes())
	return err
}

func writeFixedHeader(buf *bytes.Buffer, hdr *Header, ns int) {
	putField(buf, hdr.Version, 8)
	putField(buf, hdr.PatientID, 80)
	putField(buf, hdr.RecordingID, 80)
	putField(buf, hdr.StartDate, 8)
	putField(buf, hdr.StartTime, 8)
	putField(buf, strconv.Itoa(headerSize+ns*signalHeaderSize), 8)
	putField(buf, "", 44) // reserved
	putField(buf, strconv.Itoa(hdr.NumRecords), 8)
	putField(buf, formatFloat(hdr.RecordDuration, 8), 8)
	putField(buf, strconv.Itoa(ns), 4)
}

func writeSignalHeaders(buf *bytes.Buffer, signals []SignalHeader) {
	for _, s := range signals {
		putField(buf, s.Label, 16)
	}
	for _, s := range signals {
		putField(buf, s.TransducerType, 80)
	}
	for _, s := range signals {
		putField(buf, s.PhysicalDim, 8)
	}
	for _, s := range signals {
		putField(buf, formatFloat(s.PhysMin, 8), 8)
	}
	for _, s := range signals {
		putField(buf, formatFloat(s.PhysMax, 8), 8)
	}
	for _, s := range signals {
		putField(buf, strconv.Itoa(s.DigMin), 8)
	}
	for _, s := range signals {
		putField(buf, strconv.Itoa(s.DigMax), 8)
	}
	for _, s := range signals {
		putField(buf, s.Prefilter, 80)
	}
	for _, s := range signals {
		putField(buf, strconv.Itoa(s.SamplesPerRecord), 8)
	}
	for range signals {
		putField(buf, "", 32) // reserved
	}
}

func writeRecords(buf *bytes.Buffer, signals []SignalHeader, data [][]float64, numRecords int) {
	var sample [sampleSize]byte
	for rec := 0; rec < numRecords; rec++ {
		for i, s := range signals {
			gain := (s.PhysMax - s.PhysMin) / float64(s.DigMax-s.DigMin)
			base := rec * s.SamplesPerRecord
			for j := 0; j < s.SamplesPerRecord; j++ {
				d := digitize(data[i][base+j], s, gain)
				binary.LittleEndian.PutUint16(sample[:], uint16(int16(d)))
				buf.Write(sample[:])
			}
		}
	}
}

// digitize maps a physical value onto the signal's digital range, clamping
// out-of-range and non-finite values.
func digitize(v float64, s SignalHeader, gain float64) int {
	switch {
	case math.IsNaN(v), v <= s.PhysMin:
		return s.DigMin
	case v >= s.PhysMax:
		return s.DigMax
	}
	return s.DigMin + int(math.Round((v-s.PhysMin)/gain))
}

// putField writes s left-justified and space-padded to width bytes,
// truncating when it does not fit.
func putField(buf *bytes.Buffer, s string, width int) {
	if len(s) > width {
		s = s[:width]
	}
	buf.WriteString(s)
	for i := len(s); i < width; i++ {
		buf.WriteByte(' ')
	}
}

// formatFloat renders v in at most width ASCII characters.
func formatFloat(v float64, width int) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	for prec := 6; len(s) > width && prec >= 0; prec-- {
		s = strconv.FormatFloat(v, 'g', prec, 64)
	}
	return s
}
