// Command towav converts a linear spectrogram (.npy) back to a WAV file.
//
// The input is a time-major float32 matrix as written by preprocess or
// tomel. Phase is estimated with Griffin-Lim, trailing silence is trimmed and
// the result is peak normalised.
//
// Usage:
//
//	towav <spec.npy> [iterations]
//
// The output WAV file will be named <spec.npy>.wav. The optional iterations
// parameter overrides the Griffin-Lim iteration count (default: 60).
package main
