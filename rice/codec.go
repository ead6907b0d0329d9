// Package rice implements the order-1 context-adaptive Golomb-Rice codec:
// a single compress/decompress pass threading a byte stream through the
// ranktab context selected by the previous byte, emitting one Rice-coded
// rank per input symbol plus a terminating sentinel.
package rice

import (
	"fmt"

	"github.com/mewkiz/gorc/bitbuf"
	"github.com/mewkiz/gorc/ranktab"
	"github.com/mewkiz/pkg/dbg"
)

// Sentinel is the distinguished rank value, unreachable from RankOf (which
// only returns 0..255), used to mark end-of-stream.
const Sentinel = 256

// expansionFactor bounds the worst-case size of a single codec pass. The
// initial identity ranking maps every unique byte to its own rank and the
// initial k = 3 Golomb-Rice parameter, so a pathological single-byte-heavy
// prefix costs at most a handful of bytes per input byte; 8x covers any
// plausible input with margin.
const expansionFactor = 8

// minEncodedSize is the smallest word-aligned buffer that can hold the
// empty-input stream: just the Rice(3, 256) sentinel, which needs two
// 32-bit words.
const minEncodedSize = 8

// EstimateSize returns a word-aligned buffer size, in bytes, for
// Compress(src) on an input of n bytes: expansionFactor bytes per input
// byte, at least minEncodedSize. It is not a hard upper bound: an input
// whose ranks jump high right after an epoch of low ranks (k = 0) can need
// more, and CompressInto then returns ErrOutputOverflow. Use it to size a
// buffer for CompressInto.
func EstimateSize(n int) int {
	size := expansionFactor * n
	if size < minEncodedSize {
		size = minEncodedSize
	}
	return (size + 3) &^ 3
}

// ErrOutputOverflow is returned by CompressInto when dst is too small to
// hold the encoded stream.
type ErrOutputOverflow struct {
	Size int
}

func (e *ErrOutputOverflow) Error() string {
	return fmt.Sprintf("rice: output region of %d bytes too small", e.Size)
}

// CompressInto encodes src into dst, reinitializing a fresh context table
// and estimator, and returns the number of bytes written. dst must be
// word-aligned (a multiple of 4 bytes); EstimateSize gives a suitable size.
// Exceeding dst surfaces as ErrOutputOverflow rather than a panic, even
// though the underlying bitbuf.Buffer panics on an out-of-range index.
func CompressInto(dst, src []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrOutputOverflow{Size: len(dst)}
		}
	}()

	table := ranktab.New()
	est := NewEstimator()
	bw := bitbuf.NewWriter(dst)

	ctx := table.Context(0)
	for _, c := range src {
		d := ctx.RankOf(c)
		bw.WriteGR(est.K, uint32(d))
		ctx.Observe(c)
		est.Update(uint32(d))
		ctx = table.Context(c)
	}
	bw.WriteGR(est.K, Sentinel)

	n = bw.Close()
	dbg.Println("rice: compressed", len(src), "bytes into", n, "bytes")
	return n, nil
}

// Compress encodes src and returns the encoded stream, sized exactly to
// the bytes written.
func Compress(src []byte) ([]byte, error) {
	dst := make([]byte, EstimateSize(len(src)))
	n, err := CompressInto(dst, src)
	if err != nil {
		return nil, fmt.Errorf("rice.Compress: %w", err)
	}
	return dst[:n], nil
}

// ErrCorrupt indicates the bit stream ended before a sentinel was read, or
// a decoded rank was out of range other than as the sentinel.
type ErrCorrupt struct {
	Reason string
}

func (e *ErrCorrupt) Error() string {
	return "rice: corrupt stream: " + e.Reason
}

// Decompress decodes src, reinitializing a fresh context table and
// estimator, and returns the reconstructed bytes. src must be exactly the
// word-aligned region produced by Compress (or CompressInto); the decoder
// never reads past the final word that contained the sentinel.
func Decompress(src []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrCorrupt{Reason: fmt.Sprintf("input exhausted: %v", r)}
		}
	}()

	table := ranktab.New()
	est := NewEstimator()
	br := bitbuf.NewReader(src)

	out = make([]byte, 0, len(src))
	ctx := table.Context(0)
	for {
		d := br.ReadGR(est.K)
		if d == Sentinel {
			break
		}
		if d > Sentinel {
			return nil, &ErrCorrupt{Reason: fmt.Sprintf("rank %d out of range", d)}
		}

		c := ctx.SymbolAt(byte(d))
		out = append(out, c)
		ctx.Observe(c)
		est.Update(d)
		ctx = table.Context(c)
	}

	dbg.Println("rice: decompressed", len(src), "bytes into", len(out), "bytes")
	return out, nil
}
