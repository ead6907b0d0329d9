// Package bitdump provides a byte-stream, non-word-aligned unary reader
// used only by cmd/xdump to sample unary run lengths from the raw bytes of
// a compressed layer; it does not recover the codec's codeword boundaries.
// It is diagnostic tooling, independent of the core
// bitbuf.Buffer the codec itself uses (bitbuf's word-aligned flush
// semantics are part of the wire format; this reader trades that away for
// the convenience of wrapping a plain io.Reader).
package bitdump

import "github.com/icza/bitio"

// Reader decodes unary-coded integers from an underlying bit-level reader.
type Reader struct {
	br *bitio.Reader
}

// NewReader wraps br for unary decoding.
func NewReader(br *bitio.Reader) *Reader {
	return &Reader{br: br}
}

// ReadUnary decodes an unary coded integer: the number of leading zero
// bits before a terminating one bit.
func (r *Reader) ReadUnary() (uint64, error) {
	var x uint64
	for {
		bit, err := r.br.ReadBits(1)
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			return x, nil
		}
		x++
	}
}

// ReadBits reads n bits and returns them as an unsigned integer, MSB-first
// as bitio defines it; used to peek at the Rice k-suffix bits following a
// unary quotient.
func (r *Reader) ReadBits(n byte) (uint64, error) {
	return r.br.ReadBits(n)
}
