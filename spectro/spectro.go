package spectro

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/spectrum"
)

// Epsilon keeps the decibel conversion finite for zero magnitudes.
const Epsilon = 1e-6

// ErrShapeMismatch is returned when a buffer does not hold exactly frames*bins complex pairs.
var ErrShapeMismatch = errors.New("shape mismatch")

// Spectrogram is a complex matrix indexed [frame][bin].
type Spectrogram [][]complex128

// Frames returns the length of the time axis.
func (s Spectrogram) Frames() int {
	return len(s)
}

// Bins returns the length of the frequency axis.
func (s Spectrogram) Bins() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Decode reshapes a flat [frames][bins][re,im] buffer into a Spectrogram.
func Decode(buf []float32, frames, bins int) (Spectrogram, error) {
	if frames <= 0 || bins <= 0 {
		return nil, fmt.Errorf("%w: frames=%d bins=%d", ErrShapeMismatch, frames, bins)
	}
	if want := frames * bins * 2; len(buf) != want {
		return nil, fmt.Errorf("%w: got %d floats, want %d (%d frames x %d bins x 2)",
			ErrShapeMismatch, len(buf), want, frames, bins)
	}

	out := make(Spectrogram, frames)
	for f := range out {
		row := make([]complex128, bins)
		for b := range row {
			idx := 2 * (f*bins + b)
			row[b] = complex(float64(buf[idx]), float64(buf[idx+1]))
		}
		out[f] = row
	}
	return out, nil
}

// DecodeFraming validates f and decodes buf with its frame and bin counts.
func DecodeFraming(buf []float32, f Framing) (Spectrogram, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return Decode(buf, f.FrameCount(), f.BinCount())
}

// Encode flattens s into the layout Decode reads.
func Encode(s Spectrogram) []float32 {
	bins := s.Bins()
	out := make([]float32, 0, len(s)*bins*2)
	for _, row := range s {
		for _, v := range row {
			out = append(out, float32(real(v)), float32(imag(v)))
		}
	}
	return out
}

// Magnitude returns |X[f][b]| for every cell.
func Magnitude(s Spectrogram) [][]float64 {
	out := make([][]float64, len(s))
	for f, row := range s {
		out[f] = spectrum.Magnitude(row)
		if out[f] == nil {
			out[f] = []float64{}
		}
	}
	return out
}

// Decibels converts magnitudes to 20*log10(mag+Epsilon).
func Decibels(mag [][]float64) [][]float64 {
	return DecibelsEps(mag, Epsilon)
}

// DecibelsEps is Decibels with a caller chosen floor offset.
func DecibelsEps(mag [][]float64, eps float64) [][]float64 {
	out := make([][]float64, len(mag))
	for f, row := range mag {
		db := make([]float64, len(row))
		for b, m := range row {
			db[b] = 20 * math.Log10(m+eps)
		}
		out[f] = db
	}
	return out
}
