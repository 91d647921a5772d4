package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// IndexFile is the transcript index inside a corpus directory.
	IndexFile = "texts.csv"
	// WavDir holds one <id>.wav per utterance inside a corpus directory.
	WavDir = "wavs"
	// Delimiter separates the utterance id from its transcript.
	Delimiter = "=="
)

// Utterance is one parsed line of the corpus index.
type Utterance struct {
	// Index numbers utterances from 1 in file order.
	Index      int
	Line       int
	ID         string
	Transcript string
}

// WavPath returns the recording path of u inside corpus directory dir.
func (u Utterance) WavPath(dir string) string {
	return filepath.Join(dir, WavDir, u.ID+".wav")
}

// ReadIndex parses the named index file.
func ReadIndex(path string) ([]Utterance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()
	return ParseIndex(f, path)
}

// ParseIndex reads "<id>==<transcript>" lines from r. A leading byte order
// mark is dropped, surrounding whitespace is trimmed and blank lines are
// skipped. The line is split on every delimiter; the first field is the id
// and the second the transcript, later fields are ignored. The id is used
// verbatim. A line with fewer than two fields or an empty id fails the whole
// parse with a *ParseError naming the line.
func ParseIndex(r io.Reader, name string) ([]Utterance, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var utterances []Utterance
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, Delimiter)
		if len(fields) < 2 || fields[0] == "" {
			return nil, &ParseError{Path: name, Line: line, Text: text}
		}
		utterances = append(utterances, Utterance{
			Index:      len(utterances) + 1,
			Line:       line,
			ID:         fields[0],
			Transcript: fields[1],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read index %s: %w", name, err)
	}
	return utterances, nil
}
