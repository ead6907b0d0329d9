package rice_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/mewkiz/gorc/rice"
)

func roundTrip(t *testing.T, s []byte) {
	t.Helper()

	enc, err := rice.Compress(s)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	dec, err := rice.Decompress(enc)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(dec, s) {
		t.Fatalf("round-trip mismatch: got %d bytes, want %d bytes", len(dec), len(s))
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTripSingleByte(t *testing.T) {
	roundTrip(t, []byte("A"))
}

func TestRoundTripRepeatedByte(t *testing.T) {
	roundTrip(t, bytes.Repeat([]byte("A"), 6))
}

func TestRoundTripAllByteValues(t *testing.T) {
	s := make([]byte, 256)
	for i := range s {
		s[i] = byte(i)
	}
	roundTrip(t, s)
}

func TestRoundTripLongRun(t *testing.T) {
	roundTrip(t, make([]byte, 1<<20)) // 1 MiB of 0x00
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 3, 17, 300, 5000} {
		s := make([]byte, n)
		rng.Read(s)
		roundTrip(t, s)
	}
}

func TestSentinelTerminatesStream(t *testing.T) {
	s := []byte("hello, world")
	enc, err := rice.Compress(s)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	dec, err := rice.Decompress(enc)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(dec, s) {
		t.Fatalf("decoded mismatch")
	}
}

func TestDeterministicOutput(t *testing.T) {
	s := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly")
	a, err := rice.Compress(s)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	b, err := rice.Compress(s)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("two independent encodes of the same input differ")
	}
}

func TestDecompressRejectsTruncatedStream(t *testing.T) {
	enc, err := rice.Compress([]byte("not empty"))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	// Truncate before the sentinel can plausibly appear.
	truncated := enc[:4]
	if _, err := rice.Decompress(truncated); err == nil {
		t.Fatalf("Decompress of truncated stream succeeded, want error")
	}
}

func TestCompressIntoOverflow(t *testing.T) {
	dst := make([]byte, 4)
	_, err := rice.CompressInto(dst, bytes.Repeat([]byte{0x00, 0x01, 0x02, 0x03}, 64))
	if err == nil {
		t.Fatalf("CompressInto with undersized dst succeeded, want ErrOutputOverflow")
	}
}
