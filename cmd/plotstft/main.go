package main

import (
	"errors"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/neurlang/gostft/internal/config"
	"github.com/neurlang/gostft/internal/logger"
	"github.com/neurlang/gostft/render"
	"github.com/neurlang/gostft/signal"
	"github.com/neurlang/gostft/spectro"
)

func main() {
	cfg, err := config.Load("plotstft", os.Args[1:], os.Stderr)
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
		log.Error("plot failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	f := cfg.Framing
	log.Debug("framing",
		zap.Stringer("framing", f),
		zap.Int("frames", f.FrameCount()),
		zap.Int("bins", f.BinCount()))

	series, err := signal.Load(cfg.SignalPath)
	if err != nil {
		return err
	}
	log.Info("signal loaded", zap.String("path", cfg.SignalPath), zap.Int("samples", series.Len()))

	spec, err := spectro.ReadFile(cfg.InputPath, f, spectro.WithLayout(cfg.Layout))
	if err != nil {
		return err
	}
	log.Info("spectrogram decoded",
		zap.String("path", cfg.InputPath),
		zap.Int("frames", spec.Frames()),
		zap.Int("bins", spec.Bins()))

	db := spectro.Decibels(spectro.Magnitude(spec))
	lo, hi, err := render.Range(db)
	if err != nil {
		return err
	}
	log.Debug("decibel range", zap.Float64("min", lo), zap.Float64("max", hi))

	opts := render.Options{ColorMap: cfg.ColorMap}
	var outputs []render.Output

	if cfg.WaveformPath != "" {
		wt, err := render.Waveform(series, opts)
		if err != nil {
			return err
		}
		outputs = append(outputs, render.Output{Path: cfg.WaveformPath, Image: wt})
	}

	wt, err := render.Spectrogram(db, f, opts)
	if err != nil {
		return err
	}
	outputs = append(outputs, render.Output{Path: cfg.OutputPath, Image: wt})

	if cfg.RawPath != "" {
		wt, err := render.RawPNG(db, true, cfg.ColorMap)
		if err != nil {
			return err
		}
		outputs = append(outputs, render.Output{Path: cfg.RawPath, Image: wt})
	}

	if err := render.SaveAll(outputs); err != nil {
		return err
	}
	for _, o := range outputs {
		log.Info("image written", zap.String("path", o.Path))
	}
	return nil
}
