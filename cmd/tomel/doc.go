// Command tomel computes the spectrogram artifacts of a single WAV file.
//
// It writes the same normalised linear and mel spectrograms the preprocess
// command produces for a corpus, as time-major float32 .npy files next to the
// input.
//
// Usage:
//
//	tomel <wav_file> [prefix]
//
// The outputs are named <prefix>-spec-00001.npy and <prefix>-mel-00001.npy;
// prefix defaults to the input file name without its extension.
package main
