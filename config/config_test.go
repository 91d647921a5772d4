package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Dataset != "ptbr" || cfg.Prefix != "ptbr" {
		t.Errorf("Dataset/Prefix = %q/%q, want ptbr/ptbr", cfg.Dataset, cfg.Prefix)
	}
	if cfg.Output != "training" {
		t.Errorf("Output = %q, want %q", cfg.Output, "training")
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.Audio.NumMels != 80 || cfg.Audio.SampleRate != 20000 {
		t.Errorf("Audio = %+v, want mel defaults", cfg.Audio)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
dataset: lj
prefix: lj
workers: 3
log_level: debug
log_format: json
audio:
  num_mels: 40
  sample_rate: 22050
  frame_shift_ms: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dataset != "lj" || cfg.Prefix != "lj" || cfg.Workers != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("logging = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Audio.NumMels != 40 || cfg.Audio.SampleRate != 22050 || cfg.Audio.FrameShiftMs != 10 {
		t.Errorf("Audio = %+v", cfg.Audio)
	}
	// unspecified fields keep their defaults
	if cfg.Output != "training" || cfg.Audio.NumFreq != 1025 || cfg.Audio.Preemphasis != 0.97 {
		t.Errorf("defaults lost: output %q, audio %+v", cfg.Output, cfg.Audio)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
output = "feats"
fft_workers = 2

[audio]
num_freq = 513
min_level_db = -80.0
griffin_lim_iters = 30
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "feats" || cfg.FFTWorkers != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Audio.NumFreq != 513 || cfg.Audio.MinLevelDB != -80 || cfg.Audio.GriffinLimIterations != 30 {
		t.Errorf("Audio = %+v", cfg.Audio)
	}
	if cfg.Dataset != "ptbr" || cfg.Audio.NumMels != 80 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown extension", "config.json", "{}", "unsupported extension"},
		{"bad yaml", "config.yaml", "dataset: [", "parsing config file"},
		{"bad toml", "config.toml", "dataset = ", "parsing config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty dataset", func(c *Config) { c.Dataset = " " }, "dataset"},
		{"empty output", func(c *Config) { c.Output = "" }, "output"},
		{"prefix with slash", func(c *Config) { c.Prefix = "a/b" }, "prefix"},
		{"no workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"negative fft workers", func(c *Config) { c.FFTWorkers = -1 }, "fft_workers"},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"bad audio", func(c *Config) { c.Audio.NumMels = 0 }, "audio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
