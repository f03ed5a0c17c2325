// Command edfgen writes a small synthetic EDF file, useful for exercising
// the upload endpoint without real recording hardware.
//
// Usage:
//
//	edfgen [-o out.edf] [-channels 2] [-samples 256] [-rate 128]
//
// Each channel carries a sine wave of a different frequency, quantized to
// the container's 16-bit sample resolution.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/neurodata/edfstore/internal/edf"
)

func main() {
	out := flag.String("o", "synthetic.edf", "output file path")
	channels := flag.Int("channels", 2, "number of channels")
	samples := flag.Int("samples", 256, "samples per channel")
	rate := flag.Float64("rate", 128, "sampling rate in Hz")
	amplitude := flag.Float64("amplitude", 100, "signal amplitude")
	flag.Parse()

	if *channels <= 0 || *samples <= 0 || *rate <= 0 {
		slog.Error("channels, samples and rate must be positive")
		os.Exit(1)
	}

	names := make([]string, *channels)
	data := make([][]float64, *channels)
	for c := range data {
		names[c] = fmt.Sprintf("C%d", c+1)
		freq := float64(c+1) * 2.0 // Hz
		series := make([]float64, *samples)
		for i := range series {
			t := float64(i) / *rate
			series[i] = math.Round(*amplitude * math.Sin(2*math.Pi*freq*t))
		}
		data[c] = series
	}

	f, err := edf.NewUniform(names, *rate, data)
	if err != nil {
		slog.Error("failed to build recording", "error", err)
		os.Exit(1)
	}
	f.Header.RecordingID = "edfgen synthetic recording"

	if err := f.WriteFile(*out); err != nil {
		slog.Error("failed to write file", "error", err)
		os.Exit(1)
	}

	slog.Info("wrote synthetic recording",
		"path", *out,
		"channels", *channels,
		"samples", *samples,
		"rate_hz", *rate,
	)
}
