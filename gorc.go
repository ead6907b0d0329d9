// Package gorc provides a lossless byte-stream compressor built around an
// order-1 context-adaptive move-to-front ranking followed by an adaptive
// Golomb-Rice entropy coder, iterated across self-similar layers until the
// payload stops shrinking.
//
// Compress and Decompress are the only entry points a caller needs; the
// ranktab, rice, and bitbuf packages implement the pipeline stages and are
// reusable independently for callers that want a single codec pass
// without the layer container.
package gorc

import (
	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/gorc/layer"
)

// LayerMode selects how many times the codec may be iteratively reapplied.
type LayerMode int

const (
	// StoreOnly disables the codec entirely; the container holds the
	// plaintext verbatim behind a zero header byte.
	StoreOnly LayerMode = 0
	// SingleLayer applies the codec exactly once. This is the default.
	SingleLayer LayerMode = 1
	// MaxLayers applies the codec up to 255 times. The first
	// layer.DefaultMinLayers passes are always made, even when they do not
	// shrink the payload, and at least DefaultMinLayers-1 layers are kept;
	// after that the driver stops at the first pass that no longer shrinks
	// the payload.
	MaxLayers LayerMode = 255
)

// Compress encodes src into a one-byte-header, multi-layer container.
// mode bounds how many times the codec may be reapplied.
func Compress(src []byte, mode LayerMode) ([]byte, error) {
	out, err := layer.Compress(src, layer.Options{MaxLayers: int(mode)})
	if err != nil {
		return nil, errutil.Err(err)
	}
	return out, nil
}

// Decompress reconstructs the original byte sequence from a container
// produced by Compress.
func Decompress(container []byte) ([]byte, error) {
	out, err := layer.Decompress(container)
	if err != nil {
		return nil, errutil.Err(err)
	}
	return out, nil
}
