// Package spectro decodes, encodes and computes short-time Fourier transform spectrograms.
//
// A spectrogram is stored on disk as a flat stream of 32-bit floats holding
// (real, imaginary) pairs, frames outermost and frequency bins innermost. This
// package provides:
//   - Framing parameters (sample rate, duration, hop, window, FFT size) and the derived frame/bin counts
//   - Decoding a flat buffer into a complex (frames x bins) matrix with explicit shape validation
//   - Magnitude and decibel derivation for display
//   - Reading and writing the legacy headerless layout and a versioned header layout (float32 or float16 payload)
//   - Computing an STFT from a sample vector, producing files the decoder reads back
package spectro
