package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/neurlang/gostft/internal/config"
	"github.com/neurlang/gostft/internal/logger"
	"github.com/neurlang/gostft/signal"
	"github.com/neurlang/gostft/spectro"
)

func main() {
	cfg, err := config.Load("tostft", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}

	log := logger.New(cfg.Debug)
	defer log.Sync()

	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		os.Exit(2)
	}

	if err := run(cfg, log); err != nil {
		log.Error("stft failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	f := cfg.Framing

	samples, err := source(cfg)
	if err != nil {
		return err
	}
	if cfg.Generator != "none" {
		if err := signal.SaveText(cfg.SignalPath, signal.FromSamples(samples, f.SampleRate)); err != nil {
			return err
		}
		log.Info("signal written", zap.String("path", cfg.SignalPath), zap.String("generator", cfg.Generator))
	}

	opts := []spectro.ComputeOption{spectro.WithWindow(cfg.Window)}
	if cfg.PackNyquist {
		opts = append(opts, spectro.WithPackedNyquist())
	}
	spec, err := spectro.Compute(samples, f, opts...)
	if err != nil {
		return err
	}

	encoding := spectro.EncodingFloat32
	if cfg.Float16 {
		encoding = spectro.EncodingFloat16
	}
	if err := spectro.WriteFile(cfg.InputPath, spec, spectro.WithLayout(cfg.Layout), spectro.WithEncoding(encoding)); err != nil {
		return err
	}
	log.Info("stft written",
		zap.String("path", cfg.InputPath),
		zap.Stringer("layout", cfg.Layout),
		zap.Int("frames", spec.Frames()),
		zap.Int("bins", spec.Bins()))
	return nil
}

func source(cfg config.Config) ([]float64, error) {
	f := cfg.Framing
	n := f.SignalLength()

	switch cfg.Generator {
	case "noisy-sine":
		return signal.NoisySine(n, f.SampleRate, cfg.Frequency, cfg.Noise, rand.New(rand.NewSource(cfg.Seed))), nil
	case "chirp":
		return signal.Chirp(n, f.SampleRate, 100, 3000, f.Duration), nil
	case "multitone":
		return signal.Multitone(n, f.SampleRate, []float64{440, 880, 1320}, []float64{1, 0.5, 0.3}), nil
	case "none":
		s, err := signal.Load(cfg.SignalPath)
		if err != nil {
			return nil, err
		}
		return s.Amplitude, nil
	}
	return nil, fmt.Errorf("unknown generator %q", cfg.Generator)
}
