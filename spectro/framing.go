package spectro

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFraming is returned when framing parameters cannot describe a spectrogram.
var ErrInvalidFraming = errors.New("invalid framing")

// Framing holds the parameters a producer and a consumer must agree on
// to interpret a headerless spectrogram file.
type Framing struct {
	SampleRate float64 // Hz
	Duration   float64 // seconds
	Hop        int     // samples between frames
	Window     int     // samples per frame
	FFTSize    int
}

// NewFraming creates a new Framing with default values.
func NewFraming() Framing {
	return Framing{
		SampleRate: 8000,
		Duration:   1,
		Hop:        128,
		Window:     256,
		FFTSize:    256,
	}
}

// SignalLength returns round(SampleRate * Duration).
func (f Framing) SignalLength() int {
	return int(math.Round(f.SampleRate * f.Duration))
}

// FrameCount returns the number of complete windows that fit the signal.
func (f Framing) FrameCount() int {
	if f.Hop <= 0 || f.Window > f.SignalLength() {
		return 0
	}
	return (f.SignalLength()-f.Window)/f.Hop + 1
}

// BinCount returns the number of stored non-negative frequency bins.
func (f Framing) BinCount() int {
	return f.FFTSize / 2
}

// Nyquist returns half the sample rate, the top of the frequency axis.
func (f Framing) Nyquist() float64 {
	return f.SampleRate / 2
}

// Validate reports the first parameter that makes the framing unusable.
func (f Framing) Validate() error {
	switch {
	case !(f.SampleRate > 0) || math.IsInf(f.SampleRate, 0):
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidFraming, f.SampleRate)
	case !(f.Duration > 0) || math.IsInf(f.Duration, 0):
		return fmt.Errorf("%w: duration must be > 0: %v", ErrInvalidFraming, f.Duration)
	case f.Hop <= 0:
		return fmt.Errorf("%w: hop must be > 0: %d", ErrInvalidFraming, f.Hop)
	case f.Window <= 0:
		return fmt.Errorf("%w: window must be > 0: %d", ErrInvalidFraming, f.Window)
	case f.FFTSize <= 0 || f.FFTSize%2 != 0:
		return fmt.Errorf("%w: fft size must be even and > 0: %d", ErrInvalidFraming, f.FFTSize)
	case f.Window > f.FFTSize:
		return fmt.Errorf("%w: window %d exceeds fft size %d", ErrInvalidFraming, f.Window, f.FFTSize)
	case f.Window > f.SignalLength():
		return fmt.Errorf("%w: window %d exceeds signal length %d", ErrInvalidFraming, f.Window, f.SignalLength())
	}
	return nil
}

// String formats the framing for log fields and error messages.
func (f Framing) String() string {
	return fmt.Sprintf("sr=%g dur=%g hop=%d win=%d fft=%d", f.SampleRate, f.Duration, f.Hop, f.Window, f.FFTSize)
}

// FFTSizeFor returns the smallest power of two not below window.
func FFTSizeFor(window int) int {
	return nextPow2(window)
}
