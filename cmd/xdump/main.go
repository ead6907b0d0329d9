// xdump prints diagnostic information about a gorc-compressed file: its
// layer count, container and payload sizes, and the number of distinct
// unary run lengths found in a sample of up to 4096 runs read from the raw
// bit stream. It does not print per-layer offsets or the per-length run
// counts. It does not
// reconstruct the original codewords (bitbuf's LSB-first, word-aligned
// packing is the source of truth for that); it is a byte-level sanity
// probe only.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/icza/bitio"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mewkiz/gorc/internal/bitdump"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: xdump FILE.x")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("xdump: reading input")
	}
	if len(data) < 1 {
		log.Fatal().Msg("xdump: empty container")
	}

	layerCount := int(data[0])
	payload := data[1:]
	log.Info().
		Int("layers", layerCount).
		Int("container_bytes", len(data)).
		Int("payload_bytes", len(payload)).
		Msg("xdump: container header")

	br := bitio.NewReader(bytes.NewReader(payload))
	ur := bitdump.NewReader(br)

	runs := make(map[uint64]int)
	const sampleRuns = 4096
	for i := 0; i < sampleRuns; i++ {
		n, err := ur.ReadUnary()
		if err != nil {
			break
		}
		runs[n]++
	}
	log.Info().Int("distinct_run_lengths", len(runs)).Msg("xdump: unary run-length sample")
}
