// Package phase provides the short-time Fourier analysis and synthesis used by
// the spectrogram features, and Griffin-Lim phase reconstruction.
//
// Frames are centred: the signal is reflect-padded by half an FFT length on
// both sides, so a signal of n samples with hop h always yields n/h+1 frames.
// Synthesis is a windowed overlap-add normalised by the summed squared window
// and trimmed back to the centred span, which makes ISTFT(Analyze(x)) equal to
// x up to the last full hop.
//
// Spectra are returned half-sided (FFT length/2+1 bins per frame).
package phase
