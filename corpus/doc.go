// Package corpus turns a transcript index and a directory of recordings into
// spectrogram artifacts and a training manifest.
//
// A corpus directory holds texts.csv, one "<id>==<transcript>" line per
// utterance, and wavs/<id>.wav. Builder reads the index, numbers entries from
// 1 in file order, runs a Processor for each one on a bounded set of workers,
// and returns one Entry per line in file order no matter which worker finished
// first. Each Processor call writes two .npy files named after the entry
// number, so concurrent calls never touch the same file.
package corpus
