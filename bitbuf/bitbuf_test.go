package bitbuf_test

import (
	"math/rand"
	"testing"

	"github.com/mewkiz/gorc/bitbuf"
)

func TestWriteReadBits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	n := make([]uint, 2000)
	v := make([]uint32, len(n))
	for i := range n {
		n[i] = uint(rng.Intn(33))
		v[i] = rng.Uint32()
	}

	buf := make([]byte, 4*(len(n)+1))
	bw := bitbuf.NewWriter(buf)
	for i := range n {
		bw.WriteBits(v[i], n[i])
	}
	bw.Close()

	br := bitbuf.NewReader(buf)
	for i := range n {
		want := v[i]
		if n[i] < 32 {
			want &= (uint32(1) << n[i]) - 1
		}
		got := br.ReadBits(n[i])
		if got != want {
			t.Fatalf("index %d: ReadBits(%d) = %d, want %d", i, n[i], got, want)
		}
	}
}

func TestUnaryRoundTrip(t *testing.T) {
	ns := []uint32{0, 1, 2, 31, 32, 33, 63, 64, 65, 1000, 1 << 20}

	buf := make([]byte, 1<<20)
	bw := bitbuf.NewWriter(buf)
	for _, n := range ns {
		bw.WriteUnary(n)
	}
	bw.Close()

	br := bitbuf.NewReader(buf)
	for _, want := range ns {
		if got := br.ReadUnary(); got != want {
			t.Fatalf("ReadUnary() = %d, want %d", got, want)
		}
	}
}

func TestGolombRiceRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for k := uint(0); k <= 8; k++ {
		ns := make([]uint32, 500)
		for i := range ns {
			ns[i] = uint32(rng.Intn(1 << 12))
		}

		buf := make([]byte, 1<<18)
		bw := bitbuf.NewWriter(buf)
		for _, n := range ns {
			bw.WriteGR(k, n)
		}
		nbytes := bw.Close()

		wantBits := 0
		for _, n := range ns {
			wantBits += bitbuf.SizeofGR(k, n)
		}
		if gotBits := nbytes * 8; gotBits < wantBits {
			t.Fatalf("k=%d: stream too short: %d bits for %d bits of codewords", k, gotBits, wantBits)
		}

		br := bitbuf.NewReader(buf)
		for i, want := range ns {
			if got := br.ReadGR(k); got != want {
				t.Fatalf("k=%d index %d: ReadGR = %d, want %d", k, i, got, want)
			}
		}
	}
}

func TestSizeofGR(t *testing.T) {
	cases := []struct {
		k    uint
		n    uint32
		want int
	}{
		{0, 0, 1},
		{3, 65, 8 + 1 + 3},
		{3, 256, 32 + 1 + 3},
	}
	for _, c := range cases {
		if got := bitbuf.SizeofGR(c.k, c.n); got != c.want {
			t.Fatalf("SizeofGR(%d, %d) = %d, want %d", c.k, c.n, got, c.want)
		}
	}
}
