// Package arith implements the MQ-style arithmetic entropy decoder (AD),
// its context memory (CX, see context.go) and the arithmetic integer decoder
// built on top of it (AID, see integer.go) — spec §4.3-§4.5.
//
// The decode/renormalize/byteIn structure and the QE probability-estimation
// table are ported from the teacher's jpeg2000/mqc.MQDecoder (ISO/IEC
// 15444-1 Annex C), which implements the same coder family JBIG2's Annex E
// specifies. The byte source is generalized from the teacher's pre-sliced
// []byte-plus-sentinel scheme to the shared bitio.Reader: byteIn peeks at
// the byte after a 0xFF and leaves a marker byte unconsumed in the stream
// (the effect of spec §4.3's one-byte rewind) rather than relying on a
// synthetic 0xFF 0xFF trailer.
package arith

import (
	"fmt"

	"github.com/cocosip/go-jbig2/bitio"
)

// qeRow packs one row of the Qe probability-estimation table (ISO/IEC
// 14492:2001 Annex E, Table E.1 — identical to ISO/IEC 15444-1 Table C.2,
// the standard is shared between JBIG2 and JPEG2000's MQ-coders).
type qeRow struct {
	qe     uint32
	nmps   uint8
	nlps   uint8
	switchMPS bool
}

var qeTable = [47]qeRow{
	{0x5601, 1, 1, true}, {0x3401, 2, 6, false}, {0x1801, 3, 9, false}, {0x0AC1, 4, 12, false},
	{0x0521, 5, 29, false}, {0x0221, 38, 33, false}, {0x5601, 7, 6, true}, {0x5401, 8, 14, false},
	{0x4801, 9, 14, false}, {0x3801, 10, 14, false}, {0x3001, 11, 17, false}, {0x2401, 12, 18, false},
	{0x1C01, 13, 20, false}, {0x1601, 29, 21, false}, {0x5601, 15, 14, true}, {0x5401, 16, 14, false},
	{0x5101, 17, 15, false}, {0x4801, 18, 16, false}, {0x3801, 19, 17, false}, {0x3401, 20, 18, false},
	{0x3001, 21, 19, false}, {0x2801, 22, 19, false}, {0x2401, 23, 20, false}, {0x2201, 24, 21, false},
	{0x1C01, 25, 22, false}, {0x1801, 26, 23, false}, {0x1601, 27, 24, false}, {0x1401, 28, 25, false},
	{0x1201, 29, 26, false}, {0x1101, 30, 27, false}, {0x0AC1, 31, 28, false}, {0x09C1, 32, 29, false},
	{0x08A1, 33, 30, false}, {0x0521, 34, 31, false}, {0x0441, 35, 32, false}, {0x02A1, 36, 33, false},
	{0x0221, 37, 34, false}, {0x0141, 38, 35, false}, {0x0111, 39, 36, false}, {0x0085, 40, 37, false},
	{0x0049, 41, 38, false}, {0x0025, 42, 39, false}, {0x0015, 43, 40, false}, {0x0009, 44, 41, false},
	{0x0005, 45, 42, false}, {0x0001, 45, 43, false}, {0x5601, 46, 46, false},
}

// Decoder implements the MQ-like arithmetic entropy decoder described in
// spec §4.3. Exactly one Decoder (plus whatever Context arrays its caller
// supplies) is owned by a single call stack, per the concurrency model in
// spec §5.
type Decoder struct {
	r *bitio.Reader

	a uint32 // interval width, 16-bit significant
	c uint32 // code register, 32-bit
	ct int    // bits available in the low byte of c
	b  byte   // last byte read, for stuff-byte detection

	atMarker bool // set once byteIn has observed the terminating marker
}

// NewDecoder primes a Decoder by reading the first two bytes of r, as
// described in spec §4.3 ("Initial priming").
func NewDecoder(r *bitio.Reader) (*Decoder, error) {
	d := &Decoder{r: r}
	first, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("arith: priming byte: %w", err)
	}
	d.b = first
	d.c = uint32(first) << 16

	ct, err := d.byteIn()
	if err != nil {
		return nil, err
	}
	d.ct = ct - 7
	d.c <<= 7
	d.a = 0x8000
	return d, nil
}

// A exposes the current interval width; tests use it to check the invariant
// 0x8000 <= A < 0x10000 and to compare decoder state before and after a call.
func (d *Decoder) A() uint32 { return d.a }

// C exposes the current code register for the same reason.
func (d *Decoder) C() uint32 { return d.c }

// CT exposes the bit counter; the invariant is CT >= 0.
func (d *Decoder) CT() int { return d.ct }

// Decode decodes a single bit under the probability state stored at cx[index]
// (spec §4.3 step 1-6). The context byte is read and rewritten in place.
func (d *Decoder) Decode(cx *Context, index int) (int, error) {
	s, err := cx.Get(index)
	if err != nil {
		return 0, err
	}
	mps := int(s & 1)
	state := s >> 1
	row := qeTable[state]
	qe := row.qe

	chigh := d.c >> 16
	d.a -= qe

	var bit int
	if chigh < qe {
		// LPS path (spec step 5).
		if d.a < qe {
			d.a = qe
			bit = mps
			if err := cx.Set(index, packState(row.nmps, mps)); err != nil {
				return 0, err
			}
		} else {
			d.a = qe
			bit = 1 - mps
			newMPS := mps
			if row.switchMPS {
				newMPS = 1 - mps
			}
			if err := cx.Set(index, packState(row.nlps, newMPS)); err != nil {
				return 0, err
			}
		}
		if err := d.renormalize(); err != nil {
			return 0, err
		}
		return bit, nil
	}

	// MPS path (spec step 4).
	d.c -= qe << 16
	if d.a&0x8000 != 0 {
		return mps, nil
	}
	if d.a < qe {
		bit = 1 - mps
		newMPS := mps
		if row.switchMPS {
			newMPS = 1 - mps
		}
		if err := cx.Set(index, packState(row.nlps, newMPS)); err != nil {
			return 0, err
		}
	} else {
		bit = mps
		if err := cx.Set(index, packState(row.nmps, mps)); err != nil {
			return 0, err
		}
	}
	if err := d.renormalize(); err != nil {
		return 0, err
	}
	return bit, nil
}

func packState(state uint8, mps int) uint8 {
	return (state << 1) | uint8(mps&1)
}

// renormalize doubles A (and shifts C alongside it) until A regains its
// 16-bit-significant invariant, refilling C from the byte stream as needed
// (spec §4.3 step 6).
func (d *Decoder) renormalize() error {
	for d.a < 0x8000 {
		if d.ct == 0 {
			ct, err := d.byteIn()
			if err != nil {
				return err
			}
			d.ct = ct
		}
		d.a <<= 1
		d.c <<= 1
		d.ct--
	}
	return nil
}

// byteIn implements spec §4.3's byte-stuffing-aware refill procedure and
// returns the number of fresh low-order bits it added to C.
func (d *Decoder) byteIn() (int, error) {
	if d.b != 0xff {
		b1, err := d.r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("arith: byteIn: %w", err)
		}
		d.b = b1
		d.c += uint32(b1) << 8
		return 8, nil
	}

	// Previous byte was 0xFF: peek at the next one without consuming it yet,
	// since a marker (>=0x90) must be left in place for the caller.
	b1, err := d.r.PeekByteAt(d.r.Position())
	if err != nil {
		return 0, fmt.Errorf("arith: byteIn after 0xFF: %w", err)
	}
	if b1 < 0x90 {
		if _, err := d.r.ReadByte(); err != nil {
			return 0, fmt.Errorf("arith: byteIn after 0xFF: %w", err)
		}
		d.b = b1
		d.c += uint32(b1) << 9
		return 7, nil
	}

	// Marker encountered: leave it unconsumed and keep padding with 1-bits,
	// the standard MQ-coder tail behavior once the real data is exhausted.
	d.atMarker = true
	d.c += 0xff00
	return 8, nil
}

// AtMarker reports whether byteIn has already observed the stream's
// terminating marker; once true, further decode calls are reading the
// standard post-marker 1-padding rather than real data. Region decoders use
// this to distinguish an expected end-of-region from a truncated stream.
func (d *Decoder) AtMarker() bool { return d.atMarker }
