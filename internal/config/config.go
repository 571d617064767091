// Package config resolves command settings from defaults, environment and flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-dsp/dsp/window"

	"github.com/neurlang/gostft/spectro"
)

// Config holds everything the plotstft and tostft commands need.
type Config struct {
	Framing spectro.Framing

	SignalPath   string // time/amplitude table (or .wav/.flac)
	InputPath    string // binary spectrogram
	OutputPath   string // spectrogram plot
	WaveformPath string // waveform plot, empty disables
	RawPath      string // raw pixel dump, empty disables

	Layout   spectro.Layout
	Float16  bool
	ColorMap string
	Debug    bool

	// producer settings
	Generator   string
	Frequency   float64
	Noise       float64
	Seed        int64
	Window      window.Type
	PackNyquist bool
}

// Windows lists the analysis windows selectable by name.
var Windows = map[string]window.Type{
	"rectangular":     window.TypeRectangular,
	"hann":            window.TypeHann,
	"hamming":         window.TypeHamming,
	"blackman":        window.TypeBlackman,
	"blackman-harris": window.TypeBlackmanHarris4Term,
	"flat-top":        window.TypeFlatTop,
	"welch":           window.TypeWelch,
}

// Generators lists the test signals tostft can synthesise.
var Generators = []string{"noisy-sine", "chirp", "multitone", "none"}

// New returns the built-in defaults.
func New() Config {
	return Config{
		Framing:      spectro.NewFraming(),
		SignalPath:   "signal.txt",
		InputPath:    "stft_out.bin",
		OutputPath:   "stft-plot.png",
		WaveformPath: "signal-plot.png",
		Layout:       spectro.LayoutAuto,
		ColorMap:     "blackbody",
		Generator:    "noisy-sine",
		Frequency:    1000,
		Noise:        0.2,
		Seed:         1,
		Window:       window.TypeHamming,
		PackNyquist:  true,
	}
}

// FromEnv returns New overridden by STFT_* environment variables.
// Unparsable values fall back to the default.
func FromEnv() Config {
	c := New()
	c.Framing.SampleRate = envFloat("STFT_SAMPLE_RATE", c.Framing.SampleRate)
	c.Framing.Duration = envFloat("STFT_DURATION", c.Framing.Duration)
	c.Framing.Hop = envInt("STFT_HOP", c.Framing.Hop)
	c.Framing.Window = envInt("STFT_WINDOW", c.Framing.Window)
	c.Framing.FFTSize = envInt("STFT_FFT_SIZE", c.Framing.FFTSize)

	c.SignalPath = envStr("STFT_SIGNAL", c.SignalPath)
	c.InputPath = envStr("STFT_INPUT", c.InputPath)
	c.OutputPath = envStr("STFT_OUTPUT", c.OutputPath)
	c.WaveformPath = envStr("STFT_WAVEFORM", c.WaveformPath)
	c.RawPath = envStr("STFT_RAW", c.RawPath)
	c.ColorMap = envStr("STFT_COLORMAP", c.ColorMap)
	c.Debug = envBool("STFT_DEBUG", c.Debug)
	if v := os.Getenv("STFT_LAYOUT"); v != "" {
		if l, err := spectro.ParseLayout(v); err == nil {
			c.Layout = l
		}
	}
	return c
}

// Load resolves the configuration for the named command: defaults, then
// environment, then args. Usage and parse errors are written to output.
// The resulting framing is validated.
func Load(name string, args []string, output io.Writer) (Config, error) {
	c := FromEnv()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Float64Var(&c.Framing.SampleRate, "sample-rate", c.Framing.SampleRate, "sample rate in Hz")
	fs.Float64Var(&c.Framing.Duration, "duration", c.Framing.Duration, "signal duration in seconds")
	fs.IntVar(&c.Framing.Hop, "hop", c.Framing.Hop, "hop size in samples")
	fs.IntVar(&c.Framing.Window, "window", c.Framing.Window, "window size in samples")
	fs.IntVar(&c.Framing.FFTSize, "fft-size", c.Framing.FFTSize, "FFT size (0 = next power of two >= window)")

	fs.StringVar(&c.SignalPath, "signal", c.SignalPath, "signal table (.txt) or audio file (.wav, .flac)")
	fs.StringVar(&c.InputPath, "input", c.InputPath, "binary spectrogram file")
	fs.StringVar(&c.OutputPath, "output", c.OutputPath, "spectrogram plot (PNG)")
	fs.StringVar(&c.WaveformPath, "waveform", c.WaveformPath, "waveform plot (PNG), empty to skip")
	fs.StringVar(&c.RawPath, "raw", c.RawPath, "raw one-pixel-per-cell spectrogram dump (PNG), empty to skip")
	fs.StringVar(&c.ColorMap, "colormap", c.ColorMap, "colour map: blackbody, kindlmann, blue-red")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "debug logging")
	layout := fs.String("layout", c.Layout.String(), "binary layout: auto, legacy, header")
	fs.BoolVar(&c.Float16, "f16", c.Float16, "write a float16 payload (header layout only)")

	fs.StringVar(&c.Generator, "gen", c.Generator, "test signal: "+strings.Join(Generators, ", "))
	fs.Float64Var(&c.Frequency, "freq", c.Frequency, "test signal frequency in Hz")
	fs.Float64Var(&c.Noise, "noise", c.Noise, "noise level of the noisy-sine generator")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "noise seed")
	windowName := fs.String("window-type", "hamming", "analysis window: "+strings.Join(windowNames(), ", "))
	fs.BoolVar(&c.PackNyquist, "pack-nyquist", c.PackNyquist, "store the Nyquist coefficient in bin 0's imaginary part")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [flags]\n\n", name)
		fmt.Fprintf(output, "Flags override STFT_* environment variables, which override defaults.\n\n")
		fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if fs.NArg() > 0 {
		return c, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	l, err := spectro.ParseLayout(*layout)
	if err != nil {
		return c, err
	}
	c.Layout = l

	t, ok := Windows[strings.ToLower(*windowName)]
	if !ok {
		return c, fmt.Errorf("unknown window type %q", *windowName)
	}
	c.Window = t

	if !isGenerator(c.Generator) {
		return c, fmt.Errorf("unknown generator %q", c.Generator)
	}

	if c.Framing.FFTSize == 0 {
		c.Framing.FFTSize = spectro.FFTSizeFor(c.Framing.Window)
	}
	if err := c.Framing.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func windowNames() []string {
	names := make([]string, 0, len(Windows))
	for n := range Windows {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isGenerator(name string) bool {
	for _, g := range Generators {
		if g == name {
			return true
		}
	}
	return false
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
