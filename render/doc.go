// Package render draws signals and decibel spectrograms to PNG images.
//
// Plots are built with gonum/plot: the waveform is a line plot with a grid,
// the spectrogram is a heat map with time on the horizontal axis, frequency
// on the vertical axis (bin 0 at the bottom) and a colour bar legend. A raw
// one-pixel-per-cell dump is available for inspecting the matrix itself.
package render
