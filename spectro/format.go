package spectro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrBadHeader is returned for a versioned file whose header cannot be interpreted.
var ErrBadHeader = errors.New("bad spectrogram header")

var errLegacyHalf = errors.New("float16 payload requires the header layout")

// Layout selects how a spectrogram file is framed on disk.
type Layout int

const (
	// LayoutAuto reads the header layout when the magic is present and the legacy layout otherwise.
	LayoutAuto Layout = iota
	// LayoutLegacy is a bare little-endian float32 stream; the shape comes from Framing only.
	LayoutLegacy
	// LayoutHeader prefixes the payload with magic, version, encoding, frames and bins.
	LayoutHeader
)

// Encoding selects the payload element type of the header layout.
type Encoding uint16

const (
	EncodingFloat32 Encoding = 1
	EncodingFloat16 Encoding = 2
)

const (
	headerMagic   = "STFT"
	headerVersion = 1
	headerSize    = 16
)

// ParseLayout maps "auto", "legacy" and "header" to a Layout.
func ParseLayout(name string) (Layout, error) {
	switch name {
	case "auto", "":
		return LayoutAuto, nil
	case "legacy":
		return LayoutLegacy, nil
	case "header":
		return LayoutHeader, nil
	}
	return LayoutAuto, fmt.Errorf("unknown layout %q", name)
}

func (l Layout) String() string {
	switch l {
	case LayoutLegacy:
		return "legacy"
	case LayoutHeader:
		return "header"
	}
	return "auto"
}

func (e Encoding) size() int {
	if e == EncodingFloat16 {
		return 2
	}
	return 4
}

// Option configures reading and writing spectrogram files.
type Option func(*config)

type config struct {
	layout   Layout
	encoding Encoding
}

func defaultConfig() config {
	return config{
		layout:   LayoutAuto,
		encoding: EncodingFloat32,
	}
}

// WithLayout forces a layout. Writing with LayoutAuto behaves like LayoutLegacy.
func WithLayout(l Layout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithEncoding selects the payload encoding for writing.
func WithEncoding(e Encoding) Option {
	return func(c *config) {
		c.encoding = e
	}
}

func buildConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Read decodes a spectrogram stream.
//
// For the legacy layout the shape comes from f. For the header layout the
// shape comes from the header and, unless f is the zero Framing, must match
// f.FrameCount() and f.BinCount().
func Read(r io.Reader, f Framing, opts ...Option) (Spectrogram, error) {
	cfg := buildConfig(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	layout := cfg.layout
	if layout == LayoutAuto {
		layout = LayoutLegacy
		if hasMagic(data) {
			layout = LayoutHeader
		}
	}

	if layout == LayoutHeader {
		return readHeader(data, f)
	}
	return readLegacy(data, f)
}

// ReadFile opens path and decodes it with Read.
func ReadFile(path string, f Framing, opts ...Option) (Spectrogram, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := Read(bufio.NewReader(file), f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Write encodes s in the configured layout.
func Write(w io.Writer, s Spectrogram, opts ...Option) error {
	cfg := buildConfig(opts)

	if s.Frames() == 0 || s.Bins() == 0 {
		return fmt.Errorf("%w: empty spectrogram", ErrShapeMismatch)
	}
	for f, row := range s {
		if len(row) != s.Bins() {
			return fmt.Errorf("%w: frame %d has %d bins, want %d", ErrShapeMismatch, f, len(row), s.Bins())
		}
	}

	if cfg.layout != LayoutHeader {
		if cfg.encoding == EncodingFloat16 {
			return errLegacyHalf
		}
		_, err := w.Write(float32Bytes(Encode(s)))
		return err
	}

	h := header{
		version:  headerVersion,
		encoding: cfg.encoding,
		frames:   uint32(s.Frames()),
		bins:     uint32(s.Bins()),
	}
	if err := h.check(); err != nil {
		return err
	}
	if _, err := w.Write(h.marshal()); err != nil {
		return err
	}

	payload := Encode(s)
	if cfg.encoding == EncodingFloat16 {
		_, err := w.Write(float16Bytes(payload))
		return err
	}
	_, err := w.Write(float32Bytes(payload))
	return err
}

// WriteFile creates path and writes s into it.
func WriteFile(path string, s Spectrogram, opts ...Option) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(file)
	if err := Write(bw, s, opts...); err != nil {
		file.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func readLegacy(data []byte, f Framing) (Spectrogram, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of float32 values", ErrShapeMismatch, len(data))
	}
	return Decode(float32sFromBytes(data), f.FrameCount(), f.BinCount())
}

func readHeader(data []byte, f Framing) (Spectrogram, error) {
	h, err := unmarshalHeader(data)
	if err != nil {
		return nil, err
	}

	if f != (Framing{}) {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if uint64(h.frames) != uint64(f.FrameCount()) || uint64(h.bins) != uint64(f.BinCount()) {
			return nil, fmt.Errorf("%w: header says %d frames x %d bins, framing (%v) expects %d x %d",
				ErrShapeMismatch, h.frames, h.bins, f, f.FrameCount(), f.BinCount())
		}
	}

	payload := data[headerSize:]
	size := h.encoding.size()
	if len(payload)%size != 0 {
		return nil, fmt.Errorf("%w: %d payload bytes is not a whole number of %d-byte values",
			ErrShapeMismatch, len(payload), size)
	}
	values := uint64(len(payload) / size)
	if values%2 != 0 || uint64(h.frames)*uint64(h.bins) != values/2 {
		return nil, fmt.Errorf("%w: header says %d frames x %d bins, payload holds %d values",
			ErrShapeMismatch, h.frames, h.bins, values)
	}

	var buf []float32
	if h.encoding == EncodingFloat16 {
		buf = float32sFromHalfBytes(payload)
	} else {
		buf = float32sFromBytes(payload)
	}
	return Decode(buf, int(h.frames), int(h.bins))
}
