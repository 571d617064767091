package signal

import (
	"math"
	"math/rand"
)

// Chirp returns a linear sweep from f0 to f1 Hz over duration seconds.
func Chirp(n int, sampleRate, f0, f1, duration float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		freq := f0 + (f1-f0)*t/duration
		out[i] = math.Sin(2 * math.Pi * freq * t)
	}
	return out
}

// Multitone sums sines at freqs scaled by the matching amps.
func Multitone(n int, sampleRate float64, freqs, amps []float64) []float64 {
	out := make([]float64, n)
	for k := range freqs {
		amp := 1.0
		if k < len(amps) {
			amp = amps[k]
		}
		for i := range out {
			t := float64(i) / sampleRate
			out[i] += amp * math.Sin(2*math.Pi*freqs[k]*t)
		}
	}
	return out
}

// NoisySine returns a sine at freq Hz plus uniform noise in [-noise, noise).
func NoisySine(n int, sampleRate, freq, noise float64, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = math.Sin(2*math.Pi*freq*t) + noise*(rng.Float64()-0.5)*2
	}
	return out
}
