package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// ManifestFile is the manifest name written next to the artifacts.
	ManifestFile = "train.txt"
	// ManifestSeparator separates the fields of a manifest line.
	ManifestSeparator = "|"
)

// WriteManifest writes one "spec|mel|frames|transcript" line per entry.
func WriteManifest(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		line := strings.Join([]string{e.SpecFile, e.MelFile, strconv.Itoa(e.Frames), e.Transcript}, ManifestSeparator)
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteManifestFile writes the manifest to path, replacing any previous one.
func WriteManifestFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	if err := WriteManifest(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	return f.Close()
}

// Summary aggregates a manifest for reporting.
type Summary struct {
	Utterances int
	Frames     int
	Hours      float64
	// MaxInputLength is the longest transcript in characters.
	MaxInputLength int
	// MaxOutputLength is the longest utterance in frames.
	MaxOutputLength int
}

// Summarize computes totals over entries; frameShiftMs converts frames to time.
func Summarize(entries []Entry, frameShiftMs float64) Summary {
	var s Summary
	s.Utterances = len(entries)
	for _, e := range entries {
		s.Frames += e.Frames
		s.MaxOutputLength = max(s.MaxOutputLength, e.Frames)
		s.MaxInputLength = max(s.MaxInputLength, utf8.RuneCountInString(e.Transcript))
	}
	s.Hours = float64(s.Frames) * frameShiftMs / (3600 * 1000)
	return s
}
