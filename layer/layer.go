// Package layer implements the layer driver: it iterates the rice codec to
// diminishing returns and wraps the result in a one-byte layer-count
// header. The driver is expressed iteratively rather than recursively so
// that a pathological input with MaxLayers = 255 cannot exhaust the call
// stack.
package layer

import (
	"fmt"

	"github.com/mewkiz/gorc/rice"
	"github.com/mewkiz/pkg/dbg"
)

// DefaultMinLayers is the minimum number of codec applications the driver
// keeps re-encoding through, even if an individual pass does not shrink
// the payload.
const DefaultMinLayers = 3

// Options configures the layer driver.
type Options struct {
	// MinLayers keeps re-encoding while the layer count is below this
	// bound, regardless of whether the last pass shrank the payload.
	// Zero means DefaultMinLayers.
	MinLayers int
	// MaxLayers caps the total number of codec applications. Must be in
	// [0, 255]; the container header is a single unsigned byte.
	MaxLayers int
}

func (o Options) minLayers() int {
	if o.MinLayers == 0 {
		return DefaultMinLayers
	}
	return o.MinLayers
}

// Compress iteratively re-applies the rice codec to its own output while
// that shrinks the payload (or the configured minimum has not been
// reached), subject to opts.MaxLayers, and returns the one-byte-header
// container: a layer count J followed by layer[J].
func Compress(input []byte, opts Options) ([]byte, error) {
	if opts.MaxLayers < 0 || opts.MaxLayers > 255 {
		return nil, fmt.Errorf("layer.Compress: MaxLayers %d out of range [0,255]", opts.MaxLayers)
	}
	minLayers := opts.minLayers()

	layers := make([][]byte, 1, opts.MaxLayers+1)
	layers[0] = input

	j := 0
	for j < opts.MaxLayers {
		next, err := rice.Compress(layers[j])
		if err != nil {
			return nil, fmt.Errorf("layer.Compress: layer %d: %w", j+1, err)
		}
		shrunk := len(next) < len(layers[j])
		belowMin := j+1 < minLayers
		layers = append(layers, next)

		dbg.Println("layer: layer", j+1, "size", len(next), "shrunk", shrunk, "belowMin", belowMin)

		if shrunk || belowMin {
			j++
			continue
		}
		if shrunk {
			j++
		}
		break
	}

	out := make([]byte, 1+len(layers[j]))
	out[0] = byte(j)
	copy(out[1:], layers[j])
	return out, nil
}

// Decompress reads the one-byte layer count header and iteratively
// decodes that many layers, reinitializing codec state before each.
func Decompress(container []byte) ([]byte, error) {
	if len(container) < 1 {
		return nil, fmt.Errorf("layer.Decompress: empty container")
	}

	j := int(container[0])
	cur := container[1:]

	for ; j >= 1; j-- {
		next, err := rice.Decompress(cur)
		if err != nil {
			return nil, fmt.Errorf("layer.Decompress: layer %d: %w", j, err)
		}
		cur = next
	}

	out := make([]byte, len(cur))
	copy(out, cur)
	return out, nil
}
