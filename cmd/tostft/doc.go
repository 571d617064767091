// Command tostft writes a test signal and its STFT in the layout plotstft reads.
//
// The signal is either synthesised (-gen noisy-sine, chirp or multitone) and
// saved as a time/amplitude table, or loaded from an existing table or
// WAV/FLAC file (-gen none). The STFT uses the same framing flags as
// plotstft.
//
// Usage:
//
//	tostft [flags]
//
// By default it writes signal.txt and a headerless stft_out.bin.
// Use -layout header to embed the shape, and -f16 for a half precision payload.
package main
