package mel

import "errors"
import "fmt"
import "math"
import "math/rand"

import "github.com/neurlang/ttsprep/phase"

// Mel represents the audio hyper-parameters shared by feature extraction and synthesis.
type Mel struct {
	NumMels       int     `yaml:"num_mels" toml:"num_mels"`
	NumFreq       int     `yaml:"num_freq" toml:"num_freq"`
	SampleRate    int     `yaml:"sample_rate" toml:"sample_rate"`
	FrameLengthMs float64 `yaml:"frame_length_ms" toml:"frame_length_ms"`
	FrameShiftMs  float64 `yaml:"frame_shift_ms" toml:"frame_shift_ms"`
	Preemphasis   float64 `yaml:"preemphasis" toml:"preemphasis"`
	MinLevelDB    float64 `yaml:"min_level_db" toml:"min_level_db"`
	RefLevelDB    float64 `yaml:"ref_level_db" toml:"ref_level_db"`

	// MelFmax of 0 means half the sample rate.
	MelFmin float64 `yaml:"mel_fmin" toml:"mel_fmin"`
	MelFmax float64 `yaml:"mel_fmax" toml:"mel_fmax"`

	// Power is applied to magnitudes before Griffin-Lim.
	Power                float64 `yaml:"power" toml:"power"`
	GriffinLimIterations int     `yaml:"griffin_lim_iters" toml:"griffin_lim_iters"`
	Seed                 int64   `yaml:"seed" toml:"seed"`
}

// NewMel creates a new Mel instance with default values.
func NewMel() *Mel {
	return &Mel{
		NumMels:              80,
		NumFreq:              1025,
		SampleRate:           20000,
		FrameLengthMs:        50,
		FrameShiftMs:         12.5,
		Preemphasis:          0.97,
		MinLevelDB:           -100,
		RefLevelDB:           20,
		Power:                1.5,
		GriffinLimIterations: 60,
	}
}

var ErrFileNotLoaded = errors.New("wav not loaded")

// ErrEmptyWaveform is returned when a spectrogram is requested for zero samples.
var ErrEmptyWaveform = errors.New("empty waveform")

var ErrInvalidParams = errors.New("invalid audio parameters")

// Validate checks the parameters for values the transforms cannot work with.
func (m *Mel) Validate() error {
	switch {
	case m.NumMels <= 0:
		return fmt.Errorf("%w: num_mels must be > 0", ErrInvalidParams)
	case m.NumFreq < 2:
		return fmt.Errorf("%w: num_freq must be >= 2", ErrInvalidParams)
	case m.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate must be > 0", ErrInvalidParams)
	case m.HopLength() < 1:
		return fmt.Errorf("%w: frame_shift_ms gives an empty hop", ErrInvalidParams)
	case m.WinLength() < 1 || m.WinLength() > m.FFTLength():
		return fmt.Errorf("%w: frame_length_ms gives %d samples, fft length is %d", ErrInvalidParams, m.WinLength(), m.FFTLength())
	case m.MinLevelDB >= 0:
		return fmt.Errorf("%w: min_level_db must be < 0", ErrInvalidParams)
	case m.MelFmin < 0 || m.fmax() <= m.MelFmin || m.fmax() > float64(m.SampleRate)/2:
		return fmt.Errorf("%w: mel range [%g, %g] outside [0, %d]", ErrInvalidParams, m.MelFmin, m.fmax(), m.SampleRate/2)
	case m.Power <= 0:
		return fmt.Errorf("%w: power must be > 0", ErrInvalidParams)
	case m.GriffinLimIterations < 0:
		return fmt.Errorf("%w: griffin_lim_iters must be >= 0", ErrInvalidParams)
	}
	return nil
}

// FFTLength returns the STFT size implied by NumFreq.
func (m *Mel) FFTLength() int {
	return (m.NumFreq - 1) * 2
}

// HopLength returns the frame shift in samples.
func (m *Mel) HopLength() int {
	return int(m.FrameShiftMs / 1000 * float64(m.SampleRate))
}

// WinLength returns the analysis window length in samples.
func (m *Mel) WinLength() int {
	return int(m.FrameLengthMs / 1000 * float64(m.SampleRate))
}

// NumFrames returns the number of frames produced for n samples.
func (m *Mel) NumFrames(n int) int {
	return phase.NumFrames(n, m.HopLength())
}

func (m *Mel) fmax() float64 {
	if m.MelFmax == 0 {
		return float64(m.SampleRate) / 2
	}
	return m.MelFmax
}

// ToSpectrogram computes the normalised linear-scale spectrogram of a wave
// buffer, NumFreq rows by NumFrames(len(buf)) columns.
func (m *Mel) ToSpectrogram(buf []float64) ([][]float64, error) {
	magnitude, err := m.magnitude(buf)
	if err != nil {
		return nil, err
	}
	return m.normalizeDB(magnitude), nil
}

// ToMel computes the normalised mel-scale spectrogram of a wave buffer,
// NumMels rows by NumFrames(len(buf)) columns.
func (m *Mel) ToMel(buf []float64) ([][]float64, error) {
	magnitude, err := m.magnitude(buf)
	if err != nil {
		return nil, err
	}
	return m.normalizeDB(m.linearToMel(magnitude)), nil
}

// Features computes both spectrograms from a single STFT pass.
func (m *Mel) Features(buf []float64) (linear, melspec [][]float64, err error) {
	magnitude, err := m.magnitude(buf)
	if err != nil {
		return nil, nil, err
	}
	return m.normalizeDB(magnitude), m.normalizeDB(m.linearToMel(magnitude)), nil
}

// FromSpectrogram reconstructs a wave buffer from a normalised linear spectrogram.
func (m *Mel) FromSpectrogram(spectrogram [][]float64) ([]float64, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(spectrogram) != m.NumFreq {
		return nil, fmt.Errorf("spectrogram has %d bins, want %d", len(spectrogram), m.NumFreq)
	}

	magnitude := make([][]float64, len(spectrogram))
	for k, row := range spectrogram {
		magnitude[k] = make([]float64, len(row))
		for t, v := range row {
			db := denormalize(v, m.MinLevelDB) + m.RefLevelDB
			magnitude[k][t] = math.Pow(dbToAmp(db), m.Power)
		}
	}

	rng := rand.New(rand.NewSource(m.Seed))
	buf := phase.GriffinLim(m.stft(), magnitude, m.GriffinLimIterations, rng)
	return inversePreemphasis(buf, m.Preemphasis), nil
}

// FindEndpoint returns the sample index where the first window of at least
// minSilenceSec seconds stays below thresholdDB, or len(buf) when none does.
func (m *Mel) FindEndpoint(buf []float64, thresholdDB, minSilenceSec float64) int {
	windowLength := int(float64(m.SampleRate) * minSilenceSec)
	hopLength := windowLength / 4
	if hopLength == 0 {
		return len(buf)
	}
	threshold := dbToAmp(thresholdDB)
	for x := hopLength; x < len(buf)-windowLength; x += hopLength {
		if peak(buf[x:x+windowLength]) < threshold {
			return x + hopLength
		}
	}
	return len(buf)
}

func (m *Mel) magnitude(buf []float64) ([][]float64, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, ErrEmptyWaveform
	}

	spectrum := phase.Analyze(m.stft(), preemphasis(buf, m.Preemphasis))

	out := make([][]float64, m.NumFreq)
	for k := range out {
		out[k] = make([]float64, len(spectrum))
		for t := range spectrum {
			out[k][t] = cmplxAbs(spectrum[t][k])
		}
	}
	return out, nil
}
