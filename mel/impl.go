package mel

import "math"
import "math/cmplx"

import "github.com/r9y9/gossp/stft"

import "github.com/neurlang/ttsprep/phase"

func (m *Mel) stft() *stft.STFT {
	return phase.NewSTFT(m.HopLength(), m.WinLength(), m.FFTLength())
}

func preemphasis(buf []float64, k float64) []float64 {
	out := make([]float64, len(buf))
	prev := 0.0
	for i, x := range buf {
		out[i] = x - k*prev
		prev = x
	}
	return out
}

func inversePreemphasis(buf []float64, k float64) []float64 {
	out := make([]float64, len(buf))
	prev := 0.0
	for i, x := range buf {
		prev = x + k*prev
		out[i] = prev
	}
	return out
}

func ampToDB(x float64) float64 {
	return 20 * math.Log10(math.Max(1e-5, x))
}

func dbToAmp(x float64) float64 {
	return math.Pow(10, x*0.05)
}

func normalize(db, minLevel float64) float64 {
	return clamp((db-minLevel)/-minLevel, 0, 1)
}

func denormalize(v, minLevel float64) float64 {
	return clamp(v, 0, 1)*-minLevel + minLevel
}

func (m *Mel) normalizeDB(magnitude [][]float64) [][]float64 {
	out := make([][]float64, len(magnitude))
	for k, row := range magnitude {
		out[k] = make([]float64, len(row))
		for t, v := range row {
			out[k][t] = normalize(ampToDB(v)-m.RefLevelDB, m.MinLevelDB)
		}
	}
	return out
}

func (m *Mel) linearToMel(magnitude [][]float64) [][]float64 {
	basis := melBasis(m.SampleRate, m.FFTLength(), m.NumMels, m.MelFmin, m.fmax())
	frames := len(magnitude[0])

	out := make([][]float64, len(basis))
	for i, filter := range basis {
		out[i] = make([]float64, frames)
		for k, w := range filter {
			if w == 0 {
				continue
			}
			for t := 0; t < frames; t++ {
				out[i][t] += w * magnitude[k][t]
			}
		}
	}
	return out
}

// melBasis builds triangular filters on the Slaney mel scale with Slaney
// area normalisation, mels x (nfft/2+1).
func melBasis(sampleRate, nfft, mels int, fmin, fmax float64) [][]float64 {
	bins := nfft/2 + 1
	fftFreqs := make([]float64, bins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * float64(sampleRate) / float64(nfft)
	}

	lo, hi := hzToMel(fmin), hzToMel(fmax)
	points := make([]float64, mels+2)
	for i := range points {
		points[i] = melToHz(lo + (hi-lo)*float64(i)/float64(mels+1))
	}

	basis := make([][]float64, mels)
	for i := range basis {
		basis[i] = make([]float64, bins)
		left, center, right := points[i], points[i+1], points[i+2]
		enorm := 2 / (right - left)
		for k, f := range fftFreqs {
			lower := (f - left) / (center - left)
			upper := (right - f) / (right - center)
			basis[i][k] = math.Max(0, math.Min(lower, upper)) * enorm
		}
	}
	return basis
}

const (
	melLinearStep = 200.0 / 3
	melLogStartHz = 1000.0
)

var melLogStep = math.Log(6.4) / 27

func hzToMel(hz float64) float64 {
	if hz < melLogStartHz {
		return hz / melLinearStep
	}
	return melLogStartHz/melLinearStep + math.Log(hz/melLogStartHz)/melLogStep
}

func melToHz(mel float64) float64 {
	start := melLogStartHz / melLinearStep
	if mel < start {
		return mel * melLinearStep
	}
	return melLogStartHz * math.Exp(melLogStep*(mel-start))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func cmplxAbs(c complex128) float64 {
	return cmplx.Abs(c)
}

func peak(buf []float64) float64 {
	var p float64
	for _, x := range buf {
		if a := math.Abs(x); a > p {
			p = a
		}
	}
	return p
}

// PeakNormalize scales buf in place so its loudest sample reaches full scale.
// Near-silent buffers are scaled as if their peak were 0.01.
func PeakNormalize(buf []float64) {
	scale := 1 / math.Max(0.01, peak(buf))
	for i := range buf {
		buf[i] *= scale
	}
}
