// x is a lossless byte-stream (de)compressor built on top of the gorc
// codec. Invoked as "x" it compresses by default; invoked (or symlinked)
// as "unx" it decompresses by default. Either behavior can be forced with
// -z/-d regardless of the binary name.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/mewkiz/gorc"
	"github.com/mewkiz/gorc/version"
)

// suffix is appended to a compressed file's name when the output path is
// derived rather than given explicitly.
const suffix = ".x"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	ctx := context.Background()
	cmd := &cli.Command{
		Name:      version.Name(),
		Usage:     "compress or decompress a file with the gorc codec",
		Version:   version.Version(),
		ArgsUsage: "[INPUT [OUTPUT]]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "z", Usage: "force compression"},
			&cli.BoolFlag{Name: "d", Usage: "force decompression"},
			&cli.BoolFlag{Name: "f", Aliases: []string{"force"}, Usage: "overwrite an existing output file"},
			&cli.BoolFlag{Name: "k", Usage: "keep (do not remove) the input file; this is the only supported mode"},
			&cli.BoolFlag{Name: "v", Usage: "verbose diagnostics on stderr"},
			&cli.BoolFlag{Name: "0", Usage: "store only, no codec layers"},
			&cli.BoolFlag{Name: "1", Usage: "exactly one codec layer (default)"},
			&cli.BoolFlag{Name: "9", Usage: "up to 255 codec layers: at least two are kept, then layering stops once a further layer no longer shrinks the payload"},
		},
		Action: run,
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", version.Name(), err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	if cmd.Bool("v") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	decompress := invokedAsUnx()
	if cmd.Bool("z") {
		decompress = false
	}
	if cmd.Bool("d") {
		decompress = true
	}

	mode := gorc.SingleLayer
	switch {
	case cmd.Bool("0"):
		mode = gorc.StoreOnly
	case cmd.Bool("9"):
		mode = gorc.MaxLayers
	case cmd.Bool("1"):
		mode = gorc.SingleLayer
	}

	var inPath, outPath string
	switch cmd.NArg() {
	case 0:
		inPath, outPath = "-", "-"
	case 1:
		inPath = cmd.Args().Get(0)
		outPath = derivePath(inPath, decompress)
	case 2:
		inPath = cmd.Args().Get(0)
		outPath = cmd.Args().Get(1)
	default:
		return errors.Errorf("too many arguments: %d", cmd.NArg())
	}

	log.Debug().Str("in", inPath).Str("out", outPath).Bool("decompress", decompress).Msg("x: dispatch")

	src, err := readInput(inPath)
	if err != nil {
		return errors.Wrap(err, "x: reading input")
	}

	var out []byte
	if decompress {
		out, err = gorc.Decompress(src)
		if err != nil {
			return errors.Wrap(err, "x: decompress")
		}
	} else {
		out, err = gorc.Compress(src, mode)
		if err != nil {
			return errors.Wrap(err, "x: compress")
		}
	}

	if err := writeOutput(outPath, out, cmd.Bool("f")); err != nil {
		return errors.Wrap(err, "x: writing output")
	}

	log.Debug().Int("in_bytes", len(src)).Int("out_bytes", len(out)).Msg("x: done")
	return nil
}

// invokedAsUnx reports whether the binary was invoked under a name
// containing "unx", the conventional alias for decompress-by-default.
func invokedAsUnx() bool {
	return strings.Contains(filepath.Base(os.Args[0]), "unx")
}

// derivePath computes the implicit output path for a single-argument
// invocation: appending suffix when compressing, stripping it (or the
// extension entirely, if it isn't suffix) when decompressing.
func derivePath(in string, decompress bool) string {
	if decompress {
		if strings.HasSuffix(in, suffix) {
			return strings.TrimSuffix(in, suffix)
		}
		return pathutil.TrimExt(in)
	}
	return in + suffix
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return readAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func readAll(f *os.File) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, 64*1024)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return buf, err
		}
	}
}

// writeOutput writes data to path. For a real destination path it first
// checks for an existing file (unless force is set), then stages the
// bytes in a sibling temp file with a uuid-salted name and renames it
// into place, so a crash mid-write never leaves a partial file where the
// final output is expected.
func writeOutput(path string, data []byte, force bool) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if !force {
		exists, err := osutil.Exists(path)
		if err != nil {
			return err
		}
		if exists {
			return errors.Errorf("%s already exists (use -f to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
