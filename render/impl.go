package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// grid presents a [frame][bin] matrix as a plotter.GridXYZ with frames as
// columns and bins as rows, cell centres spread over the given extent.
type grid struct {
	db      [][]float64
	xExtent float64
	yExtent float64
}

func newGrid(db [][]float64, xExtent, yExtent float64) (*grid, error) {
	if len(db) == 0 || len(db[0]) == 0 {
		return nil, ErrEmpty
	}
	for f, row := range db {
		if len(row) != len(db[0]) {
			return nil, fmt.Errorf("%w: frame %d has %d bins, want %d", ErrRagged, f, len(row), len(db[0]))
		}
	}
	return &grid{db: db, xExtent: xExtent, yExtent: yExtent}, nil
}

func (g *grid) Dims() (c, r int) {
	return len(g.db), len(g.db[0])
}

func (g *grid) Z(c, r int) float64 {
	return g.db[c][r]
}

func (g *grid) X(c int) float64 {
	return (float64(c) + 0.5) * g.xExtent / float64(len(g.db))
}

func (g *grid) Y(r int) float64 {
	return (float64(r) + 0.5) * g.yExtent / float64(len(g.db[0]))
}

// ColorMap returns a perceptually uniform colour map by name:
// "blackbody" (default), "kindlmann" or "blue-red".
func ColorMap(name string) (palette.ColorMap, error) {
	switch name {
	case "", "blackbody":
		return moreland.ExtendedBlackBody(), nil
	case "kindlmann":
		return moreland.ExtendedKindlmann(), nil
	case "blue-red":
		return moreland.SmoothBlueRed(), nil
	}
	return nil, fmt.Errorf("unknown colour map %q", name)
}

// Range returns the minimum and maximum over all cells of db.
func Range(db [][]float64) (lo, hi float64, err error) {
	if len(db) == 0 {
		return 0, 0, ErrEmpty
	}
	var flat []float64
	for _, row := range db {
		flat = append(flat, row...)
	}
	if len(flat) == 0 {
		return 0, 0, ErrEmpty
	}
	return floats.Min(flat), floats.Max(flat), nil
}

// Raw maps every cell of db to one pixel: frames along x, bins along y.
// With reverse set bin 0 is the bottom row.
func Raw(db [][]float64, reverse bool, colorMap string) (*image.RGBA, error) {
	g, err := newGrid(db, 1, 1)
	if err != nil {
		return nil, err
	}
	cm, err := ColorMap(colorMap)
	if err != nil {
		return nil, err
	}
	lo, hi, err := Range(db)
	if err != nil {
		return nil, err
	}

	setRange(cm, 0, 1)

	stride, bins := g.Dims()
	img := image.NewRGBA(image.Rect(0, 0, stride, bins))

	for x := 0; x < stride; x++ {
		for y := 0; y < bins; y++ {
			val := 0.0
			if hi > lo {
				val = (db[x][y] - lo) / (hi - lo)
			}
			col := colorAt(cm, val)
			if reverse {
				img.Set(x, bins-y-1, col)
			} else {
				img.Set(x, y, col)
			}
		}
	}
	return img, nil
}

// RawPNG returns Raw(db, reverse, colorMap) encoded as PNG.
func RawPNG(db [][]float64, reverse bool, colorMap string) (io.WriterTo, error) {
	img, err := Raw(db, reverse, colorMap)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &buf, nil
}

// DumpImage writes Raw(db, reverse, colorMap) to name as PNG.
func DumpImage(name string, db [][]float64, reverse bool, colorMap string) error {
	wt, err := RawPNG(db, reverse, colorMap)
	if err != nil {
		return err
	}
	return Save(name, wt)
}

// setRange moves the colour map to [lo, hi] without passing through an inverted range.
func setRange(cm palette.ColorMap, lo, hi float64) {
	if lo < cm.Max() {
		cm.SetMin(lo)
		cm.SetMax(hi)
		return
	}
	cm.SetMax(hi)
	cm.SetMin(lo)
}

func colorAt(cm palette.ColorMap, val float64) color.Color {
	if val < 0 {
		val = 0
	}
	if val > 1 {
		val = 1
	}
	col, err := cm.At(val)
	if err != nil {
		return color.Black
	}
	return col
}
