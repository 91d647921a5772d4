package mel

import "fmt"
import "math"
import "os"

import "github.com/faiface/beep"
import "github.com/faiface/beep/wav"
import "github.com/go-audio/audio"
import gowav "github.com/go-audio/wav"

// resampleQuality is the beep interpolation quality used when a file's rate
// differs from SampleRate.
const resampleQuality = 4

// LoadWav loads a wav file as mono samples at m.SampleRate. Errors opening the
// file are returned as-is so callers can test them with errors.Is.
func (m *Mel) LoadWav(inputFile string) ([]float64, error) {
	return loadwav(inputFile, m.SampleRate)
}

func loadwav(name string, rate int) ([]float64, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotLoaded, name, err)
	}

	var source beep.Streamer = stream
	if rate > 0 && int(format.SampleRate) != rate {
		source = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(rate), stream)
	}

	out := make([]float64, 0, stream.Len())
	var samples = make([][2]float64, 512)
	for {
		n, ok := source.Stream(samples)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			out = append(out, (samples[i][0]+samples[i][1])/2)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotLoaded, name, err)
	}

	return out, nil
}

// SaveWav saves a mono 16-bit PCM wav file from a sample vector in [-1, 1].
// Samples outside the range are clipped.
func SaveWav(outputFile string, vec []float64, sr int) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	data := make([]int, len(vec))
	for i, v := range vec {
		data[i] = int(math.Round(clamp(v, -1, 1) * 32767))
	}

	enc := gowav.NewEncoder(f, sr, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sr},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
