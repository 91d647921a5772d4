package phase

import "github.com/r9y9/gossp/stft"
import "github.com/mjibson/go-dsp/fft"
import "github.com/mjibson/go-dsp/window"
import "math"
import "math/cmplx"
import "math/rand"

// NewSTFT creates an analysis setup with the given hop, a periodic Hann window
// of winLen samples zero-padded to the centre of an nfft-point frame.
func NewSTFT(frameShift, winLen, nfft int) *stft.STFT {
	s := stft.New(frameShift, nfft)
	s.Window = centeredHann(winLen, nfft)
	return s
}

// NumFrames returns how many centred frames Analyze yields for n samples.
func NumFrames(n, frameShift int) int {
	return n/frameShift + 1
}

// Analyze computes the centred STFT of y, returning one half spectrum per frame.
// Reflect padding by FrameLen/2 on both sides makes the frame count
// NumFrames(len(y), FrameShift).
func Analyze(s *stft.STFT, y []float64) [][]complex128 {
	nfft := s.FrameLen
	spectrum := s.STFT(reflectPad(y, nfft/2))
	for i := range spectrum {
		spectrum[i] = spectrum[i][:nfft/2+1]
	}
	return spectrum
}

// ISTFT inverts half spectra produced by Analyze (or modified copies of them)
// by overlap-add. The output has FrameShift*(frames-1) samples.
func ISTFT(s *stft.STFT, spectrogram [][]complex128) []float64 {
	frameShift := s.FrameShift
	frameLen := s.FrameLen
	numFrames := len(spectrogram)
	if numFrames == 0 {
		return nil
	}
	reconstructedSignal := make([]float64, frameLen+(numFrames-1)*frameShift)
	windowSum := make([]float64, len(reconstructedSignal))

	full := make([]complex128, frameLen)
	for i := 0; i < numFrames; i++ {
		hermitian(full, spectrogram[i])
		buf := fft.IFFT(full)
		for j := 0; j < frameLen; j++ {
			pos := i*frameShift + j
			reconstructedSignal[pos] += real(buf[j]) * s.Window[j]
			windowSum[pos] += s.Window[j] * s.Window[j]
		}
	}

	for i := range reconstructedSignal {
		if windowSum[i] > 1e-10 {
			reconstructedSignal[i] /= windowSum[i]
		}
	}

	return reconstructedSignal[frameLen/2 : frameLen/2+(numFrames-1)*frameShift]
}

// GriffinLim estimates a signal whose STFT magnitude matches magnitude, given
// frequency-major (bins x frames). The initial phase is drawn from rng.
func GriffinLim(s *stft.STFT, magnitude [][]float64, iterations int, rng *rand.Rand) []float64 {
	if len(magnitude) == 0 || len(magnitude[0]) == 0 {
		return nil
	}
	bins, frames := len(magnitude), len(magnitude[0])

	spectrogram := make([][]complex128, frames)
	for t := range spectrogram {
		spectrogram[t] = make([]complex128, bins)
		for k := 0; k < bins; k++ {
			spectrogram[t][k] = cmplx.Rect(magnitude[k][t], 2*math.Pi*rng.Float64())
		}
	}
	y := ISTFT(s, spectrogram)

	for iter := 0; iter < iterations && len(y) > 0; iter++ {
		estimate := Analyze(s, y)
		for t := range spectrogram {
			for k := range spectrogram[t] {
				spectrogram[t][k] = cmplx.Rect(magnitude[k][t], cmplx.Phase(estimate[t][k]))
			}
		}
		y = ISTFT(s, spectrogram)
	}
	return y
}

func centeredHann(winLen, nfft int) []float64 {
	if winLen > nfft || winLen <= 0 {
		winLen = nfft
	}
	w := window.Hann(winLen + 1)[:winLen]
	out := make([]float64, nfft)
	copy(out[(nfft-winLen)/2:], w)
	return out
}

// hermitian fills full with the conjugate-symmetric spectrum of half.
func hermitian(full, half []complex128) {
	n := len(full)
	for k := range full {
		full[k] = 0
	}
	for k := 0; k <= n/2 && k < len(half); k++ {
		full[k] = half[k]
		if k > 0 && k < n-k {
			full[n-k] = cmplx.Conj(half[k])
		}
	}
}

func reflectPad(y []float64, p int) []float64 {
	out := make([]float64, len(y)+2*p)
	for i := range out {
		out[i] = y[reflect(i-p, len(y))]
	}
	return out
}

func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
