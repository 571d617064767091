// Package signal loads and writes time-domain signals.
//
// It supports:
//   - Whitespace separated text tables with '#' comments (time, amplitude columns)
//   - Mono WAV and FLAC files, converted to a time/amplitude series
//   - Writing the text table format consumed by the spectrogram tools
//   - Generating chirp, multi-tone and noisy sine test signals
package signal
