package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/neurlang/gostft/signal"
	"github.com/neurlang/gostft/spectro"
)

var (
	// ErrEmpty is returned when there is nothing to draw.
	ErrEmpty = errors.New("nothing to render")
	// ErrRagged is returned when spectrogram frames have different bin counts.
	ErrRagged = errors.New("ragged spectrogram")
)

const paletteSize = 256

// Options controls figure size, title and colour map. Zero values select defaults.
type Options struct {
	Width    vg.Length
	Height   vg.Length
	Title    string
	ColorMap string
}

func (o Options) size(w, h vg.Length) (vg.Length, vg.Length) {
	if o.Width > 0 {
		w = o.Width
	}
	if o.Height > 0 {
		h = o.Height
	}
	return w, h
}

func (o Options) title(def string) string {
	if o.Title != "" {
		return o.Title
	}
	return def
}

// Waveform draws amplitude against time. The default figure is 12x4 inches.
func Waveform(s *signal.Series, opts Options) (io.WriterTo, error) {
	if s == nil || s.Len() == 0 {
		return nil, ErrEmpty
	}

	p := plot.New()
	p.Title.Text = opts.title("Input Signal")
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, s.Len())
	for i := range pts {
		pts[i].X = s.Time[i]
		pts[i].Y = s.Amplitude[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)

	w, h := opts.size(12*vg.Inch, 4*vg.Inch)
	return p.WriterTo(w, h, "png")
}

// Spectrogram draws db (indexed [frame][bin]) as a heat map spanning
// [0, f.Duration] seconds by [0, f.SampleRate/2] Hz with a colour bar.
// The default figure is 12x6 inches.
func Spectrogram(db [][]float64, f spectro.Framing, opts Options) (io.WriterTo, error) {
	grid, err := newGrid(db, f.Duration, f.Nyquist())
	if err != nil {
		return nil, err
	}
	cm, err := ColorMap(opts.ColorMap)
	if err != nil {
		return nil, err
	}

	setRange(cm, 0, 1)
	hm := plotter.NewHeatMap(grid, cm.Palette(paletteSize))
	if hm.Max-hm.Min < 1e-9 {
		hm.Min--
		hm.Max++
	}
	setRange(cm, hm.Min, hm.Max)

	p := plot.New()
	p.Title.Text = opts.title("STFT Magnitude Spectrogram")
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Frequency (Hz)"
	p.Add(hm)
	p.X.Min, p.X.Max = 0, f.Duration
	p.Y.Min, p.Y.Max = 0, f.Nyquist()

	bar := plot.New()
	bar.Title.Text = " "
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	bar.HideX()
	bar.Y.Label.Text = "Magnitude (dB)"

	w, h := opts.size(12*vg.Inch, 6*vg.Inch)
	barWidth := w / 10

	img := vgimg.New(w, h)
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	bar.Draw(draw.Crop(dc, w-barWidth, 0, 0, 0))

	return vgimg.PngCanvas{Canvas: img}, nil
}

// Save writes wt to path.
func Save(path string, wt io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

// Output is an image bound to the path it is saved to.
type Output struct {
	Path  string
	Image io.WriterTo
}

// SaveAll writes every output or none of them. Images are staged next to
// their destinations and renamed into place after all of them are written.
func SaveAll(outs []Output) error {
	staged := make([]string, 0, len(outs))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()

	for _, o := range outs {
		tmp, err := stage(o)
		if err != nil {
			return err
		}
		staged = append(staged, tmp)
	}
	for i, o := range outs {
		if err := os.Rename(staged[i], o.Path); err != nil {
			return err
		}
	}
	return nil
}

func stage(o Output) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(o.Path), "."+filepath.Base(o.Path)+".*")
	if err != nil {
		return "", fmt.Errorf("%s: %w", o.Path, err)
	}

	_, err = o.Image.WriteTo(f)
	if err == nil {
		err = f.Chmod(0o644)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("%s: %w", o.Path, err)
	}
	return f.Name(), nil
}
