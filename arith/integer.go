package arith

import (
	"fmt"

	"github.com/cocosip/go-jbig2/common"
)

// IntCtx is the 512-entry context array an arithmetic integer decoding
// procedure (IAx in the ISO numbering) is keyed on — spec §4.5. Each decoding
// procedure in a segment (IADH, IADW, IAEX, IAAI, ...) owns its own IntCtx;
// they are never shared.
type IntCtx struct {
	*Context
}

// NewIntCtx allocates the fixed-size context array Annex A.3 specifies.
func NewIntCtx() *IntCtx {
	return &IntCtx{Context: NewContext(512)}
}

// prefixRow describes one row of the Annex A prefix tree: PREFIX is the bit
// pattern (not used directly — callers walk the tree bit by bit instead),
// bits is how many additional value bits follow the prefix, and offset is
// added to the decoded value bits to get the decoded magnitude.
type prefixRow struct {
	bits   int
	offset int32
}

// prefixTable mirrors Annex A.3 Table A.1: reading leading 0/10/110/1110/
// 11110/11111 prefixes selects progressively larger value-bit counts.
var prefixTable = [6]prefixRow{
	{2, 0},
	{4, 4},
	{6, 20},
	{8, 84},
	{12, 340},
	{32, 4436},
}

// DecodeInt implements the arithmetic integer decoding procedure of spec
// §4.5 / Annex A.3: a sign bit, a prefix selecting a bit-length class, and
// that many magnitude bits, each individually arithmetic-coded against ctx.
// It returns (value, isOOB, error); isOOB is true when the decoded value is
// the reserved "out-of-band" marker used by some callers (e.g. end-of-strip
// signaling) rather than a real integer.
func (d *Decoder) DecodeInt(ctx *IntCtx) (int32, bool, error) {
	prev := 1

	bit := func() (int, error) {
		b, err := d.Decode(ctx.Context, prev)
		if err != nil {
			return 0, err
		}
		if prev < 256 {
			prev = prev<<1 | b
		} else {
			prev = (((prev<<1 | b) & 511) | 256)
		}
		return b, nil
	}

	s, err := bit()
	if err != nil {
		return 0, false, err
	}

	row := -1
	for i := 0; i < 5; i++ {
		b, err := bit()
		if err != nil {
			return 0, false, err
		}
		if b == 0 {
			row = i
			break
		}
	}
	if row == -1 {
		row = 5
	}

	pr := prefixTable[row]
	var value int32
	for i := 0; i < pr.bits; i++ {
		b, err := bit()
		if err != nil {
			return 0, false, err
		}
		value = value<<1 | int32(b)
	}
	value += pr.offset

	if s == 1 && value == 0 {
		return 0, true, nil
	}
	if s == 1 {
		value = -value
	}
	return value, false, nil
}

// DecodeIAID implements Annex A.3's symbol-ID decoding procedure: symCodeLen
// bits are read one at a time, each walking deeper into a binary-tree
// context space of size 2^(symCodeLen+1), exactly mirroring the bit-by-bit
// tree descent the teacher's t1 decoder uses for its own context-indexed
// binary decisions (jpeg2000/t1/decoder.go).
func DecodeIAID(d *Decoder, ctx *Context, symCodeLen int) (int32, error) {
	prev := 1
	for i := 0; i < symCodeLen; i++ {
		b, err := d.Decode(ctx, prev)
		if err != nil {
			return 0, err
		}
		prev = prev<<1 | b
	}
	return int32(prev) - int32(1<<uint(symCodeLen)), nil
}

// SymCodeLen returns ceil(log2(numSymbols)), the bit width DecodeIAID needs
// to address numSymbols distinct symbols, clamped to a minimum of 1 per
// Annex A.3's note that a single-symbol dictionary still spends one bit.
func SymCodeLen(numSymbols int) int {
	if numSymbols <= 1 {
		return 1
	}
	n := 0
	for (1 << uint(n)) < numSymbols {
		n++
	}
	return n
}

// checkRange validates a decoded value against an inclusive bound, returning
// common.ErrCorruptedStream when the arithmetic integer decoder has produced
// a value the calling region/dictionary procedure declares impossible (for
// example a negative width, or a symbol ID >= the dictionary size).
func checkRange(value int32, min, max int32) error {
	if value < min || value > max {
		return fmt.Errorf("arith: decoded value %d outside [%d,%d]: %w", value, min, max, common.ErrCorruptedStream)
	}
	return nil
}
