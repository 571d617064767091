package spectro

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

type header struct {
	version  uint16
	encoding Encoding
	frames   uint32
	bins     uint32
}

func hasMagic(data []byte) bool {
	return len(data) >= len(headerMagic) && string(data[:len(headerMagic)]) == headerMagic
}

func (h header) check() error {
	if h.version != headerVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrBadHeader, h.version)
	}
	if h.encoding != EncodingFloat32 && h.encoding != EncodingFloat16 {
		return fmt.Errorf("%w: unknown encoding %d", ErrBadHeader, h.encoding)
	}
	return nil
}

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)
	copy(buf, headerMagic)
	binary.LittleEndian.PutUint16(buf[4:], h.version)
	binary.LittleEndian.PutUint16(buf[6:], uint16(h.encoding))
	binary.LittleEndian.PutUint32(buf[8:], h.frames)
	binary.LittleEndian.PutUint32(buf[12:], h.bins)
	return buf
}

func unmarshalHeader(data []byte) (header, error) {
	if len(data) < headerSize || !hasMagic(data) {
		return header{}, fmt.Errorf("%w: missing %q magic", ErrBadHeader, headerMagic)
	}
	h := header{
		version:  binary.LittleEndian.Uint16(data[4:]),
		encoding: Encoding(binary.LittleEndian.Uint16(data[6:])),
		frames:   binary.LittleEndian.Uint32(data[8:]),
		bins:     binary.LittleEndian.Uint32(data[12:]),
	}
	return h, h.check()
}

func float32sFromBytes(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return out
}

func float32Bytes(buf []float32) []byte {
	out := make([]byte, 4*len(buf))
	for i, v := range buf {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func float32sFromHalfBytes(data []byte) []float32 {
	out := make([]float32, len(data)/2)
	for i := range out {
		out[i] = float16.Frombits(binary.LittleEndian.Uint16(data[2*i:])).Float32()
	}
	return out
}

func float16Bytes(buf []float32) []byte {
	out := make([]byte, 2*len(buf))
	for i, v := range buf {
		binary.LittleEndian.PutUint16(out[2*i:], float16.Fromfloat32(v).Bits())
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
