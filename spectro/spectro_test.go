package spectro

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultFramingGeometry(t *testing.T) {
	f := NewFraming()
	if err := f.Validate(); err != nil {
		t.Fatalf("default framing invalid: %v", err)
	}
	if got := f.SignalLength(); got != 8000 {
		t.Fatalf("SignalLength=%d want=8000", got)
	}
	if got := f.FrameCount(); got != 61 {
		t.Fatalf("FrameCount=%d want=61", got)
	}
	if got := f.BinCount(); got != 128 {
		t.Fatalf("BinCount=%d want=128", got)
	}
	if got := f.Nyquist(); got != 4000 {
		t.Fatalf("Nyquist=%v want=4000", got)
	}
}

func TestFramingValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Framing)
	}{
		{"zero sample rate", func(f *Framing) { f.SampleRate = 0 }},
		{"nan sample rate", func(f *Framing) { f.SampleRate = math.NaN() }},
		{"negative duration", func(f *Framing) { f.Duration = -1 }},
		{"infinite duration", func(f *Framing) { f.Duration = math.Inf(1) }},
		{"zero hop", func(f *Framing) { f.Hop = 0 }},
		{"zero window", func(f *Framing) { f.Window = 0 }},
		{"odd fft", func(f *Framing) { f.FFTSize = 255 }},
		{"window above fft", func(f *Framing) { f.Window = 512 }},
		{"window above signal", func(f *Framing) { f.Duration = 0.01 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFraming()
			tc.mutate(&f)
			if err := f.Validate(); !errors.Is(err, ErrInvalidFraming) {
				t.Fatalf("Validate()=%v want ErrInvalidFraming", err)
			}
		})
	}
}

func TestSignalLengthRounds(t *testing.T) {
	f := Framing{SampleRate: 44100, Duration: 0.1}
	if got := f.SignalLength(); got != 4410 {
		t.Fatalf("SignalLength=%d want=4410", got)
	}
	f = Framing{SampleRate: 3, Duration: 0.5}
	if got := f.SignalLength(); got != 2 {
		t.Fatalf("SignalLength=%d want=2", got)
	}
}

func TestFFTSizeFor(t *testing.T) {
	for _, tc := range []struct{ in, want int }{{1, 1}, {200, 256}, {256, 256}, {257, 512}} {
		if got := FFTSizeFor(tc.in); got != tc.want {
			t.Fatalf("FFTSizeFor(%d)=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestDecodeDefaultShape(t *testing.T) {
	f := NewFraming()
	frames, bins := f.FrameCount(), f.BinCount()

	s, err := Decode(make([]float32, 15616), frames, bins)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if s.Frames() != 61 || s.Bins() != 128 {
		t.Fatalf("shape=(%d,%d) want=(61,128)", s.Frames(), s.Bins())
	}
	for i, row := range s {
		if len(row) != bins {
			t.Fatalf("row %d has %d bins", i, len(row))
		}
	}

	for _, n := range []int{15615, 15617, 0, 7808} {
		if _, err := Decode(make([]float32, n), frames, bins); !errors.Is(err, ErrShapeMismatch) {
			t.Fatalf("Decode(len=%d) err=%v want ErrShapeMismatch", n, err)
		}
	}
}

func TestDecodeRejectsNonPositiveShape(t *testing.T) {
	if _, err := Decode(nil, 0, 0); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err=%v want ErrShapeMismatch", err)
	}
	if _, err := Decode([]float32{1, 2}, -1, -1); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err=%v want ErrShapeMismatch", err)
	}
}

func TestDecodeFramingValidates(t *testing.T) {
	f := NewFraming()
	f.FFTSize = 255
	if _, err := DecodeFraming(make([]float32, 15616), f); !errors.Is(err, ErrInvalidFraming) {
		t.Fatalf("err=%v want ErrInvalidFraming", err)
	}

	s, err := DecodeFraming(make([]float32, 15616), NewFraming())
	if err != nil {
		t.Fatalf("DecodeFraming error: %v", err)
	}
	if s.Frames() != 61 {
		t.Fatalf("frames=%d want=61", s.Frames())
	}
}

func TestDecodeOrdering(t *testing.T) {
	// frame 0: (1+2i) (3+4i), frame 1: (5+6i) (7+8i), frame 2: (9+10i) (11+12i)
	buf := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	s, err := Decode(buf, 3, 2)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := Spectrogram{{1 + 2i, 3 + 4i}, {5 + 6i, 7 + 8i}, {9 + 10i, 11 + 12i}}
	for f := range want {
		for b := range want[f] {
			if s[f][b] != want[f][b] {
				t.Fatalf("s[%d][%d]=%v want=%v", f, b, s[f][b], want[f][b])
			}
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	frames, bins := 5, 7
	buf := make([]float32, frames*bins*2)
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i)*1.37)) * float32(i+1) / 3
	}
	buf[3] = float32(math.SmallestNonzeroFloat32)
	buf[4] = -math.MaxFloat32
	buf[5] = float32(math.Copysign(0, -1))

	s, err := Decode(buf, frames, bins)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	got := Encode(s)
	if len(got) != len(buf) {
		t.Fatalf("Encode length=%d want=%d", len(got), len(buf))
	}
	for i := range buf {
		if math.Float32bits(got[i]) != math.Float32bits(buf[i]) {
			t.Fatalf("index %d: got=%v want=%v", i, got[i], buf[i])
		}
	}
}

func TestMagnitudeSymmetricUnderSwap(t *testing.T) {
	pairs := [][2]float64{{3, 4}, {-1.5, 0.25}, {0, 7}, {2, 2}}
	for _, p := range pairs {
		a := Spectrogram{{complex(p[0], p[1])}}
		b := Spectrogram{{complex(p[1], p[0])}}
		ma, mb := Magnitude(a)[0][0], Magnitude(b)[0][0]
		if math.Abs(ma-mb) > 1e-12 {
			t.Fatalf("|%v|=%v but |%v|=%v", a[0][0], ma, b[0][0], mb)
		}
		if (a[0][0] == b[0][0]) != (p[0] == p[1]) {
			t.Fatalf("complex(%v,%v) equality under swap is wrong", p[0], p[1])
		}
	}
}

func TestMagnitudeAndDecibels(t *testing.T) {
	s := Spectrogram{{3 + 4i, 0}}
	mag := Magnitude(s)
	if math.Abs(mag[0][0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0][0]=%v want=5", mag[0][0])
	}
	if mag[0][1] != 0 {
		t.Fatalf("Magnitude of zero=%v want=0", mag[0][1])
	}

	db := Decibels(mag)
	if math.Abs(db[0][1]-(-120)) > 1e-9 {
		t.Fatalf("dB of zero=%v want=-120", db[0][1])
	}
	if math.IsInf(db[0][1], 0) {
		t.Fatalf("dB of zero must be finite")
	}
	if math.Abs(db[0][0]-20*math.Log10(5+Epsilon)) > 1e-12 {
		t.Fatalf("dB[0][0]=%v", db[0][0])
	}

	custom := DecibelsEps(mag, 1)
	if custom[0][1] != 0 {
		t.Fatalf("DecibelsEps(0, 1)=%v want=0", custom[0][1])
	}
}

func TestSingleCellScenario(t *testing.T) {
	s, err := Decode([]float32{1, 0}, 1, 1)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if s[0][0] != 1+0i {
		t.Fatalf("s[0][0]=%v want=1+0i", s[0][0])
	}
	mag := Magnitude(s)
	if mag[0][0] != 1 {
		t.Fatalf("magnitude=%v want=1", mag[0][0])
	}
	db := Decibels(mag)[0][0]
	if db == 0 {
		t.Fatalf("dB must not be exactly 0")
	}
	if math.Abs(db-8.685885e-6) > 1e-11 {
		t.Fatalf("dB=%v want~8.6859e-6", db)
	}
}
