package signal

import (
	"fmt"
	"io"
	"os"

	"github.com/faiface/beep/wav"
	"github.com/mewkiz/flac"
)

func loadwav(name string) (*Series, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	// beep divides signed PCM by 2^bits-1 instead of 2^(bits-1).
	gain := 1.0
	if format.Precision == 2 || format.Precision == 3 {
		gain = 2
	}

	var out []float64
	var samples = make([][2]float64, 512)
	for {
		n, ok := stream.Stream(samples)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			out = append(out, gain*samples[i][0])
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 || format.SampleRate == 0 {
		return nil, ErrFileNotLoaded
	}
	return FromSamples(out, float64(format.SampleRate)), nil
}

func loadflac(name string) (*Series, error) {
	stream, err := flac.Open(name)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	scale, err := flacScale(stream.Info.BitsPerSample)
	if err != nil {
		return nil, err
	}
	var out []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, sample := range frame.Subframes[0].Samples {
			out = append(out, float64(sample)/scale)
		}
	}

	if len(out) == 0 || stream.Info.SampleRate == 0 {
		return nil, ErrFileNotLoaded
	}
	return FromSamples(out, float64(stream.Info.SampleRate)), nil
}

// flacScale returns the divisor mapping bps-bit signed samples onto [-1, 1].
func flacScale(bps uint8) (float64, error) {
	if bps == 0 || bps > 32 {
		return 0, fmt.Errorf("%w: %d bits per sample", ErrFileNotLoaded, bps)
	}
	return float64(int64(1) << (bps - 1)), nil
}
