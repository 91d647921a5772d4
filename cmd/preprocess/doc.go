// Command preprocess turns a speech corpus into training artifacts.
//
// It reads <base-dir>/<dataset>/texts.csv, where every line is
// "<id>==<transcript>" and the recording is <base-dir>/<dataset>/wavs/<id>.wav,
// and writes one linear and one mel spectrogram per utterance as .npy files
// into <base-dir>/<output>, together with a train.txt manifest.
//
// Usage:
//
//	preprocess [--base-dir ~/tacotron] [--dataset ptbr] [--output training]
//	           [--num-workers N] [--config file.yaml] [--log-level info]
//	           [--log-format console]
//
// Settings not given on the command line come from the config file, if any,
// and then from the built-in defaults.
package main
