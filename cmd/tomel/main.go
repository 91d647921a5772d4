package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neurlang/ttsprep/corpus"
	"github.com/neurlang/ttsprep/mel"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: tomel <wav_file> [prefix]")
		os.Exit(1)
	}

	var filename = os.Args[1]
	if !strings.HasSuffix(filename, ".wav") {
		filename += ".wav"
	}

	var prefix = strings.TrimSuffix(filepath.Base(filename), ".wav")
	if len(os.Args) > 2 {
		prefix = os.Args[2]
	}

	var m = mel.NewMel()

	p := corpus.NewProcessor(m, filepath.Dir(filename), prefix)
	entry, err := p.Process(1, filename, "")
	if err != nil {
		fmt.Printf("Error generating spectrograms: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s %s (%d frames)\n", entry.SpecFile, entry.MelFile, entry.Frames)
}
