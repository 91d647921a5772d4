package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/neurlang/ttsprep/mel"
	"github.com/neurlang/ttsprep/npy"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: towav <spec.npy> [iterations]")
		os.Exit(1)
	}

	var filename = os.Args[1]

	var m = mel.NewMel()
	if len(os.Args) > 2 {
		iters, err := strconv.Atoi(os.Args[2])
		if err != nil || iters < 0 {
			fmt.Printf("Invalid iteration count %q\n", os.Args[2])
			os.Exit(1)
		}
		m.GriffinLimIterations = iters
	}

	spec, err := npy.Load(filename)
	if err != nil {
		fmt.Printf("Error loading spectrogram: %v\n", err)
		os.Exit(1)
	}

	// frames x bins on disk, bins x frames for reconstruction
	var spectrogram = make([][]float64, spec.Cols)
	for k := range spectrogram {
		spectrogram[k] = make([]float64, spec.Rows)
		for t := range spectrogram[k] {
			spectrogram[k][t] = float64(spec.At(t, k))
		}
	}

	wav, err := m.FromSpectrogram(spectrogram)
	if err != nil {
		fmt.Printf("Error generating wave from spectrogram: %v\n", err)
		os.Exit(1)
	}
	wav = wav[:m.FindEndpoint(wav, -40, 0.8)]
	mel.PeakNormalize(wav)

	if err := mel.SaveWav(filename+".wav", wav, m.SampleRate); err != nil {
		fmt.Printf("Error writing wave: %v\n", err)
		os.Exit(1)
	}
}
