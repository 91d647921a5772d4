// Package npy reads and writes NumPy .npy files holding two-dimensional
// float32 arrays.
//
// Only format version 1.0 with a little-endian '<f4' descriptor and C order is
// produced and accepted. The payload is plain numeric data; object arrays and
// pickled payloads are never written and are rejected on read.
package npy
