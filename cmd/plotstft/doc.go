// Command plotstft renders a precomputed STFT spectrogram and its source signal to PNG images.
//
// This tool reads a time/amplitude signal table and a binary file of complex
// STFT coefficients, decodes the coefficients with the given framing
// parameters, and draws the waveform and the magnitude spectrogram in dB.
//
// Usage:
//
//	plotstft [flags]
//
// By default it reads signal.txt and stft_out.bin and writes stft-plot.png
// and signal-plot.png. The framing (-sample-rate, -duration, -hop, -window,
// -fft-size) must match what the producer used unless the binary file
// carries a header.
package main
