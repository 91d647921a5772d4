package mel

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveWavLoadWav_RoundTrip(t *testing.T) {
	m := NewMel()
	name := filepath.Join(t.TempDir(), "tone.wav")
	buf := sine(1234, m.SampleRate, 440)

	if err := SaveWav(name, buf, m.SampleRate); err != nil {
		t.Fatalf("SaveWav() error = %v", err)
	}
	got, err := m.LoadWav(name)
	if err != nil {
		t.Fatalf("LoadWav() error = %v", err)
	}
	if len(got) != len(buf) {
		t.Fatalf("len(LoadWav) = %d, want %d", len(got), len(buf))
	}
	for i := range buf {
		if math.Abs(got[i]-buf[i]) > 1e-3 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], buf[i])
		}
	}
}

func TestLoadWav_Resamples(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tone.wav")
	if err := SaveWav(name, sine(10000, 10000, 200), 10000); err != nil {
		t.Fatalf("SaveWav() error = %v", err)
	}

	m := NewMel() // 20 kHz
	got, err := m.LoadWav(name)
	if err != nil {
		t.Fatalf("LoadWav() error = %v", err)
	}
	if math.Abs(float64(len(got))-20000) > 50 {
		t.Errorf("len(LoadWav) = %d, want about 20000", len(got))
	}
}

func TestLoadWav_Missing(t *testing.T) {
	_, err := NewMel().LoadWav(filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadWav() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadWav_NotWav(t *testing.T) {
	name := filepath.Join(t.TempDir(), "text.wav")
	if err := os.WriteFile(name, []byte("this is not a riff file at all, just text"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewMel().LoadWav(name)
	if !errors.Is(err, ErrFileNotLoaded) {
		t.Errorf("LoadWav() error = %v, want ErrFileNotLoaded", err)
	}
}

func TestSaveWav_Clips(t *testing.T) {
	name := filepath.Join(t.TempDir(), "loud.wav")
	if err := SaveWav(name, []float64{2, -2, 0}, 8000); err != nil {
		t.Fatalf("SaveWav() error = %v", err)
	}
	m := NewMel()
	m.SampleRate = 8000
	got, err := m.LoadWav(name)
	if err != nil {
		t.Fatalf("LoadWav() error = %v", err)
	}
	if len(got) != 3 || got[0] < 0.99 || got[1] > -0.99 {
		t.Errorf("LoadWav() = %v, want clipped [~1 ~-1 0]", got)
	}
}
