package corpus

import (
	"fmt"
	"path/filepath"

	"github.com/neurlang/ttsprep/npy"
)

// Transformer is the audio side of preprocessing. *mel.Mel implements it.
// Spectrograms are frequency-major: rows are bins, columns are frames.
type Transformer interface {
	LoadWav(path string) ([]float64, error)
	ToSpectrogram(buf []float64) ([][]float64, error)
	ToMel(buf []float64) ([][]float64, error)
}

// featureTransformer is implemented by transformers that can produce both
// spectrograms from one analysis pass.
type featureTransformer interface {
	Features(buf []float64) (linear, melspec [][]float64, err error)
}

// Entry describes one training example in the manifest.
type Entry struct {
	SpecFile   string
	MelFile    string
	Frames     int
	Transcript string
}

// Processor writes the spectrogram artifacts for single utterances.
// It holds no mutable state and is safe for concurrent use.
type Processor struct {
	transform Transformer
	outDir    string
	prefix    string
}

// NewProcessor returns a Processor writing <prefix>-spec-NNNNN.npy and
// <prefix>-mel-NNNNN.npy files into outDir.
func NewProcessor(t Transformer, outDir, prefix string) *Processor {
	return &Processor{transform: t, outDir: outDir, prefix: prefix}
}

// OutDir returns the directory artifacts are written to.
func (p *Processor) OutDir() string { return p.outDir }

// SpecFile returns the linear spectrogram file name for an utterance index.
func (p *Processor) SpecFile(index int) string {
	return fmt.Sprintf("%s-spec-%05d%s", p.prefix, index, npy.Ext)
}

// MelFile returns the mel spectrogram file name for an utterance index.
func (p *Processor) MelFile(index int) string {
	return fmt.Sprintf("%s-mel-%05d%s", p.prefix, index, npy.Ext)
}

// Process loads one recording, computes its linear and mel spectrograms and
// saves both time-major as float32 .npy files. Failures to compute a
// spectrogram wrap ErrTransform; read and write failures keep their fs error.
func (p *Processor) Process(index int, wavPath, transcript string) (Entry, error) {
	wav, err := p.transform.LoadWav(wavPath)
	if err != nil {
		return Entry{}, fmt.Errorf("load waveform: %w", err)
	}

	spectrogram, melspec, err := p.features(wav)
	if err != nil {
		return Entry{}, err
	}
	frames := len(spectrogram[0])

	entry := Entry{
		SpecFile:   p.SpecFile(index),
		MelFile:    p.MelFile(index),
		Frames:     frames,
		Transcript: transcript,
	}
	if err := npy.Save(filepath.Join(p.outDir, entry.SpecFile), timeMajor(spectrogram)); err != nil {
		return Entry{}, fmt.Errorf("write spectrogram: %w", err)
	}
	if err := npy.Save(filepath.Join(p.outDir, entry.MelFile), timeMajor(melspec)); err != nil {
		return Entry{}, fmt.Errorf("write mel spectrogram: %w", err)
	}
	return entry, nil
}

func (p *Processor) features(wav []float64) (linear, melspec [][]float64, err error) {
	if ft, ok := p.transform.(featureTransformer); ok {
		linear, melspec, err = ft.Features(wav)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrTransform, err)
		}
	} else {
		if linear, err = p.transform.ToSpectrogram(wav); err != nil {
			return nil, nil, fmt.Errorf("%w: linear spectrogram: %w", ErrTransform, err)
		}
		if melspec, err = p.transform.ToMel(wav); err != nil {
			return nil, nil, fmt.Errorf("%w: mel spectrogram: %w", ErrTransform, err)
		}
	}
	if len(linear) == 0 || len(linear[0]) == 0 || len(melspec) == 0 || len(melspec[0]) == 0 {
		return nil, nil, fmt.Errorf("%w: empty spectrogram", ErrTransform)
	}
	return linear, melspec, nil
}

// timeMajor converts a frequency-major spectrogram into a frames x bins
// float32 matrix.
func timeMajor(rows [][]float64) *npy.Matrix {
	m := npy.NewMatrix(len(rows[0]), len(rows))
	for k, row := range rows {
		for t, v := range row {
			m.Set(t, k, float32(v))
		}
	}
	return m
}
