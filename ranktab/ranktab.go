// Package ranktab implements the order-1 context table: 256 independent
// per-preceding-byte ranking models, each a bijection between symbols and
// ranks with a companion frequency counter, updated by one-step promotion
// on every observation.
package ranktab

import "github.com/mewkiz/pkg/dbg"

// Context ranks the 256 possible symbols for one preceding byte. sorted and
// order are maintained as mutual inverse permutations of 0..255; sorted is
// kept non-increasing in freq.
type Context struct {
	freq   [256]uint64
	sorted [256]byte
	order  [256]byte
}

func (c *Context) reset() {
	for i := 0; i < 256; i++ {
		c.sorted[i] = byte(i)
		c.order[i] = byte(i)
		c.freq[i] = 0
	}
}

// RankOf returns the current rank of sym in this context.
func (c *Context) RankOf(sym byte) byte {
	return c.order[sym]
}

// SymbolAt returns the symbol currently holding rank in this context.
func (c *Context) SymbolAt(rank byte) byte {
	return c.sorted[rank]
}

// Observe increments sym's frequency and performs a one-step promotion:
// sym advances to the highest rank whose occupant still has strictly
// greater frequency, breaking ties in favor of the occupant (most-recent-
// promotion loses ties), via a single swap. Encoder and decoder must
// agree on this rule bit-for-bit.
func (c *Context) Observe(sym byte) {
	c.freq[sym]++
	freqNew := c.freq[sym]

	ic := int(c.order[sym])
	j := ic - 1
	for j >= 0 && freqNew > c.freq[c.sorted[j]] {
		j--
	}

	target := j + 1
	d := c.sorted[target]
	if d != sym {
		c.sorted[target] = sym
		c.sorted[ic] = d
		c.order[sym] = byte(target)
		c.order[d] = byte(ic)
	}
}

// Table holds the 256 per-preceding-byte contexts.
type Table struct {
	contexts [256]Context
}

// New returns a freshly reset table: every context is the identity
// permutation with all-zero frequencies.
func New() *Table {
	t := &Table{}
	t.Reset()
	return t
}

// Reset reinitializes every context to the identity permutation. The core
// reinitializes the table at the start of every encode and decode and
// between layers; there is no cross-stream state.
func (t *Table) Reset() {
	for i := range t.contexts {
		t.contexts[i].reset()
	}
	dbg.Println("ranktab: table reset")
}

// Context returns the ranking model selected by preceding byte p.
func (t *Table) Context(p byte) *Context {
	return &t.contexts[p]
}
