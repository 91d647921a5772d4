// Package mel computes the spectrogram features used to train a
// text-to-speech model, and inverts them back to audio.
//
// This package implements the audio side of corpus preprocessing:
//   - Loading WAV files as mono samples at a fixed sample rate (resampling when needed)
//   - Linear-scale spectrograms: pre-emphasis, centred STFT, magnitude in dB, normalised to [0, 1]
//   - Mel-scale spectrograms from the same STFT projected onto a Slaney mel filterbank
//   - Reconstructing audio from linear spectrograms using the Griffin-Lim algorithm
//   - Endpoint detection and 16-bit PCM WAV output for synthesised audio
//
// All hyper-parameters live on Mel; nothing is read from global state. Spectrograms
// are frequency-major: one row per frequency bin (or mel band), one column per frame.
package mel
