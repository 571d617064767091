package signal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrFileNotLoaded = errors.New("signalNotLoaded")

// ErrParse is returned for a malformed row of a signal table.
var ErrParse = errors.New("signal parse error")

// Series is an ordered sequence of (time, amplitude) samples.
type Series struct {
	Time      []float64
	Amplitude []float64
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.Time)
}

// Duration returns the time of the last sample, or 0 for an empty series.
func (s *Series) Duration() float64 {
	if len(s.Time) == 0 {
		return 0
	}
	return s.Time[len(s.Time)-1]
}

// FromSamples builds a series with Time[i] = i/sampleRate.
func FromSamples(samples []float64, sampleRate float64) *Series {
	s := &Series{
		Time:      make([]float64, len(samples)),
		Amplitude: append([]float64(nil), samples...),
	}
	for i := range s.Time {
		s.Time[i] = float64(i) / sampleRate
	}
	return s
}

// Load reads a signal file. ".wav" and ".flac" files are decoded as audio,
// anything else is parsed as a text table.
func Load(path string) (*Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return loadwav(path)
	case ".flac":
		return loadflac(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := LoadText(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadText parses a whitespace separated table. Text after '#' is ignored,
// blank lines are skipped, and every row must have the same number of
// columns, at least two. Column 0 is time, column 1 is amplitude.
func LoadText(r io.Reader) (*Series, error) {
	var s Series
	columns := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if columns == 0 {
			columns = len(fields)
			if columns < 2 {
				return nil, fmt.Errorf("%w: line %d: need at least 2 columns, got %d", ErrParse, line, columns)
			}
		} else if len(fields) != columns {
			return nil, fmt.Errorf("%w: line %d: got %d columns, want %d", ErrParse, line, len(fields), columns)
		}

		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		a, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		for _, extra := range fields[2:] {
			if _, err := strconv.ParseFloat(extra, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
			}
		}

		s.Time = append(s.Time, t)
		s.Amplitude = append(s.Amplitude, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if s.Len() == 0 {
		return nil, ErrFileNotLoaded
	}
	return &s, nil
}

// WriteText writes s as a two column table preceded by a comment line.
func WriteText(w io.Writer, s *Series) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "# Time Signal"); err != nil {
		return err
	}
	for i := range s.Time {
		if _, err := fmt.Fprintf(bw, "%.6f %.6f\n", s.Time[i], s.Amplitude[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveText writes s to path with WriteText.
func SaveText(path string, s *Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteText(f, s); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
