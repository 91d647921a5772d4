package npy

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Ext is the file extension used for array artifacts.
const Ext = ".npy"

const (
	magic     = "\x93NUMPY"
	descr     = "<f4"
	alignment = 64
)

var (
	ErrBadMagic         = errors.New("npy: not a .npy file")
	ErrUnsupportedDtype = errors.New("npy: unsupported dtype")
	ErrUnsupportedShape = errors.New("npy: unsupported shape")
)

var (
	descrRe   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranRe = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapeRe   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// Matrix is a row-major float32 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) float32 {
	return m.Data[r*m.Cols+c]
}

// Set stores v at row r, column c.
func (m *Matrix) Set(r, c int, v float32) {
	m.Data[r*m.Cols+c] = v
}

func header(rows, cols int) []byte {
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%d, %d), }", descr, rows, cols)
	// magic(6) + version(2) + header length(2) + dict + padding + '\n'
	total := len(magic) + 4 + len(dict) + 1
	pad := (alignment - total%alignment) % alignment
	dict += strings.Repeat(" ", pad) + "\n"

	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.WriteByte(1)
	buf.WriteByte(0)
	var hlen [2]byte
	binary.LittleEndian.PutUint16(hlen[:], uint16(len(dict)))
	buf.Write(hlen[:])
	buf.WriteString(dict)
	return buf.Bytes()
}

// Write serialises m to w.
func Write(w io.Writer, m *Matrix) error {
	if m.Rows < 0 || m.Cols < 0 || len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("%w: %dx%d with %d values", ErrUnsupportedShape, m.Rows, m.Cols, len(m.Data))
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header(m.Rows, m.Cols)); err != nil {
		return err
	}
	var word [4]byte
	for _, v := range m.Data {
		binary.LittleEndian.PutUint32(word[:], math.Float32bits(v))
		if _, err := bw.Write(word[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses a matrix written by Write or by numpy.save for a 2-D float32
// array. A 1-D array is returned as a single row.
func Read(r io.Reader) (*Matrix, error) {
	br := bufio.NewReader(r)
	pre := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(br, pre); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if string(pre[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}

	var hlen int
	switch major := pre[len(magic)]; major {
	case 1:
		var b [2]byte
		if _, err := io.ReadFull(br, b[:]); err != nil {
			return nil, err
		}
		hlen = int(binary.LittleEndian.Uint16(b[:]))
	case 2, 3:
		var b [4]byte
		if _, err := io.ReadFull(br, b[:]); err != nil {
			return nil, err
		}
		hlen = int(binary.LittleEndian.Uint32(b[:]))
	default:
		return nil, fmt.Errorf("npy: unsupported format version %d", major)
	}

	dict := make([]byte, hlen)
	if _, err := io.ReadFull(br, dict); err != nil {
		return nil, err
	}
	rows, cols, err := parseHeader(string(dict))
	if err != nil {
		return nil, err
	}

	m := NewMatrix(rows, cols)
	raw := make([]byte, 4*len(m.Data))
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("npy: short payload: %w", err)
	}
	for i := range m.Data {
		m.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return m, nil
}

func parseHeader(dict string) (rows, cols int, err error) {
	d := descrRe.FindStringSubmatch(dict)
	if d == nil || d[1] != descr {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedDtype, dict)
	}
	if f := fortranRe.FindStringSubmatch(dict); f == nil || f[1] != "False" {
		return 0, 0, fmt.Errorf("%w: fortran order", ErrUnsupportedShape)
	}
	s := shapeRe.FindStringSubmatch(dict)
	if s == nil {
		return 0, 0, fmt.Errorf("%w: missing shape", ErrUnsupportedShape)
	}

	var dims []int
	for _, part := range strings.Split(s[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedShape, s[1])
		}
		dims = append(dims, n)
	}
	switch len(dims) {
	case 1:
		return 1, dims[0], nil
	case 2:
		return dims[0], dims[1], nil
	}
	return 0, 0, fmt.Errorf("%w: %d dimensions", ErrUnsupportedShape, len(dims))
}

// Save writes m to the named file, creating or truncating it.
func Save(name string, m *Matrix) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads the named file.
func Load(name string) (*Matrix, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
