package arith

import (
	"fmt"

	"github.com/cocosip/go-jbig2/common"
)

// Context is the fixed-size probability-state array described in spec §4.4
// (CX): each byte packs a 7-bit probability-table index in bits 1-6 and a
// 1-bit MPS value in bit 0, so every stored value lies in 0..127. It mirrors
// the teacher's jpeg2000/mqc.MQDecoder.contexts field, split out as its own
// type because the spec treats context memory as a component shared by the
// AD, the generic region decoder, and the halftone decoder's index planes.
type Context struct {
	states []uint8
}

// NewContext allocates a zero-initialized context array of the given size.
// Typical sizes per spec §4.4 are 1, 512 (AID) and 2^16-2^18 (generic
// region, keyed by neighborhood bit patterns).
func NewContext(size int) *Context {
	return &Context{states: make([]uint8, size)}
}

// Size returns the number of addressable context slots.
func (c *Context) Size() int { return len(c.states) }

// Get returns the packed state byte (0..127) at index i.
func (c *Context) Get(i int) (uint8, error) {
	if i < 0 || i >= len(c.states) {
		return 0, fmt.Errorf("arith: context index %d out of bounds [0,%d): %w", i, len(c.states), common.ErrIndexOutOfBounds)
	}
	return c.states[i], nil
}

// Set overwrites the packed state byte at index i; v must be 0..127.
func (c *Context) Set(i int, v uint8) error {
	if i < 0 || i >= len(c.states) {
		return fmt.Errorf("arith: context index %d out of bounds [0,%d): %w", i, len(c.states), common.ErrIndexOutOfBounds)
	}
	c.states[i] = v & 0x7f
	return nil
}

// Reset zeroes every slot, matching the teacher's ResetContexts.
func (c *Context) Reset() {
	for i := range c.states {
		c.states[i] = 0
	}
}
