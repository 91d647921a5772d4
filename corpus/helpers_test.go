package corpus

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeTransform treats every byte of a recording as one sample and returns
// one frame per sample. Recordings with more bytes take longer, which lets
// tests make early utterances finish last.
type fakeTransform struct {
	perSample time.Duration
}

func (f *fakeTransform) LoadWav(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	buf := make([]float64, len(data))
	for i, b := range data {
		buf[i] = float64(b)
	}
	return buf, nil
}

func (f *fakeTransform) ToSpectrogram(buf []float64) ([][]float64, error) {
	return f.grid(buf, 3)
}

func (f *fakeTransform) ToMel(buf []float64) ([][]float64, error) {
	return f.grid(buf, 2)
}

func (f *fakeTransform) grid(buf []float64, bins int) ([][]float64, error) {
	if len(buf) == 0 {
		return nil, errors.New("no samples")
	}
	time.Sleep(time.Duration(len(buf)) * f.perSample)
	rows := make([][]float64, bins)
	for k := range rows {
		rows[k] = make([]float64, len(buf))
		for t, v := range buf {
			rows[k][t] = v + float64(k)/10
		}
	}
	return rows, nil
}

// writeCorpus creates a corpus directory with the given index content and
// recordings keyed by utterance id.
func writeCorpus(t *testing.T, index string, wavs map[string][]byte) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, WavDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte(index), 0o644); err != nil {
		t.Fatal(err)
	}
	for id, data := range wavs {
		if err := os.WriteFile(filepath.Join(dir, WavDir, id+".wav"), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names
}

func tone(n, rate int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = 0.4 * math.Sin(2*math.Pi*220*float64(i)/float64(rate))
	}
	return buf
}
