package spectro

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/mjibson/go-dsp/fft"
	"github.com/r9y9/gossp/stft"
)

// ComputeOption configures Compute.
type ComputeOption func(*computeConfig)

type computeConfig struct {
	window      window.Type
	packNyquist bool
	periodic    bool
}

// WithWindow selects the analysis window applied to every frame. Hamming by default.
func WithWindow(t window.Type) ComputeOption {
	return func(c *computeConfig) {
		c.window = t
	}
}

// WithPeriodicWindow uses the periodic (DFT-even) form of the window.
func WithPeriodicWindow() ComputeOption {
	return func(c *computeConfig) {
		c.periodic = true
	}
}

// WithPackedNyquist stores the real Nyquist coefficient in the imaginary
// part of bin 0, the ordered real-FFT packing of the legacy producer.
func WithPackedNyquist() ComputeOption {
	return func(c *computeConfig) {
		c.packNyquist = true
	}
}

// Compute runs a short-time Fourier transform over the first
// f.SignalLength() samples and keeps bins [0, f.FFTSize/2).
func Compute(samples []float64, f Framing, opts ...ComputeOption) (Spectrogram, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	n := f.SignalLength()
	if len(samples) < n {
		return nil, fmt.Errorf("%w: have %d samples, framing needs %d", ErrInvalidFraming, len(samples), n)
	}
	samples = samples[:n]

	cfg := computeConfig{window: window.TypeHamming}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var wopts []window.Option
	if cfg.periodic {
		wopts = append(wopts, window.WithPeriodic())
	}
	coeffs := window.Generate(cfg.window, f.Window, wopts...)

	frames := f.FrameCount()
	var full [][]complex128
	if f.Window == f.FFTSize {
		s := stft.New(f.Hop, f.Window)
		s.Window = coeffs
		full = s.STFT(samples)
		if len(full) < frames {
			return nil, fmt.Errorf("%w: transform produced %d frames, want %d", ErrShapeMismatch, len(full), frames)
		}
		full = full[:frames]
	} else {
		full = make([][]complex128, frames)
		frame := make([]float64, f.FFTSize)
		for i := range full {
			for k := range frame {
				frame[k] = 0
			}
			offset := i * f.Hop
			for k := 0; k < f.Window; k++ {
				frame[k] = samples[offset+k] * coeffs[k]
			}
			full[i] = fft.FFTReal(frame)
		}
	}

	bins := f.BinCount()
	out := make(Spectrogram, frames)
	for i, spectrum := range full {
		row := make([]complex128, bins)
		copy(row, spectrum[:bins])
		if cfg.packNyquist {
			row[0] = complex(real(spectrum[0]), real(spectrum[bins]))
		}
		out[i] = row
	}
	return out, nil
}
