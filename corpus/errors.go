package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine marks an index line without an "<id>==<transcript>" split.
	ErrMalformedLine = errors.New("malformed index line")
	// ErrTransform marks a waveform the audio transform could not turn into a spectrogram.
	ErrTransform = errors.New("spectrogram transform failed")
	// ErrOutputLocked is returned when another build holds the output directory.
	ErrOutputLocked = errors.New("output directory is locked by another build")
)

// ParseError reports a malformed line of the corpus index.
type ParseError struct {
	Path string
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.Path, e.Line, ErrMalformedLine, e.Text)
}

func (e *ParseError) Unwrap() error { return ErrMalformedLine }

// UtteranceError reports the corpus entry whose processing failed.
type UtteranceError struct {
	Index   int
	Line    int
	ID      string
	WavPath string
	Err     error
}

func (e *UtteranceError) Error() string {
	return fmt.Sprintf("utterance %q (line %d): %v", e.ID, e.Line, e.Err)
}

func (e *UtteranceError) Unwrap() error { return e.Err }
