package region

import (
	"fmt"

	"github.com/cocosip/go-jbig2/arith"
	"github.com/cocosip/go-jbig2/bitmap"
	"github.com/cocosip/go-jbig2/common"
)

// slot is one bit position in a template's context word: either a fixed
// neighbor pixel at a constant offset, or a placeholder for one of the
// region's (possibly header-overridden) adaptive pixels.
type slot struct {
	pt      Point
	isAT    bool
	atIndex int
}

func fixed(x, y int) slot   { return slot{pt: Point{X: x, Y: y}} }
func atSlot(index int) slot { return slot{isAT: true, atIndex: index} }

// templateLayout gives each template's context bits in fixed MSB-to-LSB
// order (spec §4.6's coding template figures). AT slots occupy a constant
// bit position regardless of where the region header points the adaptive
// pixel: A1/A2/A3/A4 read whatever offset GenericParams.At supplies, but the
// *bit* each one contributes to the context word never moves. Grounded on
// other_examples/unidoc-unipdf's overrideAtTemplate0a (template 0: A1→bit 4,
// A2→bit 10, A3→bit 11, A4→bit 15) and jdeng-gojbig2's grd_proc.go shift
// constants for templates 1-3.
var templateLayout = [4][]slot{
	0: {
		atSlot(3), // A4
		fixed(-1, -2), fixed(0, -2), fixed(1, -2),
		atSlot(2), // A3
		atSlot(1), // A2
		fixed(-2, -1), fixed(-1, -1), fixed(0, -1), fixed(1, -1), fixed(2, -1),
		atSlot(0), // A1
		fixed(-4, 0), fixed(-3, 0), fixed(-2, 0), fixed(-1, 0),
	},
	1: {
		fixed(-1, -2), fixed(0, -2), fixed(1, -2), fixed(2, -2),
		fixed(-2, -1), fixed(-1, -1), fixed(0, -1), fixed(1, -1), fixed(2, -1),
		atSlot(0), // A1
		fixed(-3, 0), fixed(-2, 0), fixed(-1, 0),
	},
	2: {
		fixed(-1, -2), fixed(0, -2), fixed(1, -2),
		fixed(-2, -1), fixed(-1, -1), fixed(0, -1), fixed(1, -1),
		atSlot(0), // A1
		fixed(-2, 0), fixed(-1, 0),
	},
	3: {
		fixed(-3, -1), fixed(-2, -1), fixed(-1, -1), fixed(0, -1), fixed(1, -1),
		atSlot(0), // A1
		fixed(-4, 0), fixed(-3, 0), fixed(-2, 0), fixed(-1, 0),
	},
}

// sltpContext is each template's fixed context index for the TPGD "SLTP"
// decision bit, taken verbatim from unidoc's decodeSLTP.
var sltpContext = [4]int{0x9b25, 0x0795, 0x00e5, 0x0195}

// contextValue forms the context word for pixel (x,y) by walking template's
// fixed bit-slot layout, resolving AT slots against at (which must already
// be the region's effective, possibly non-default, adaptive pixel offsets).
func contextValue(bm *bitmap.Bitmap, template int, at []Point, x, y int) int {
	ctxVal := 0
	for _, s := range templateLayout[template] {
		var px, py int
		if s.isAT {
			px, py = at[s.atIndex].X, at[s.atIndex].Y
		} else {
			px, py = s.pt.X, s.pt.Y
		}
		ctxVal = ctxVal<<1 | bm.GetPixel(x+px, y+py)
	}
	return ctxVal
}

// DecodeGeneric implements the generic region decoding procedure of spec
// §4.6: for each pixel, form a context value from its already-decoded
// neighbors (fixed template plus adaptive pixels), arithmetic-decode one bit
// under that context, and optionally skip whole rows declared identical to
// the one above via typical prediction (TPGD).
func DecodeGeneric(d *arith.Decoder, cx *arith.Context, p GenericParams) (*bitmap.Bitmap, error) {
	if p.Template < 0 || p.Template > 3 {
		return nil, fmt.Errorf("region: generic template %d out of range [0,3]: %w", p.Template, common.ErrInvalidHeaderValue)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("region: generic region dimensions %dx%d invalid: %w", p.Width, p.Height, common.ErrInvalidHeaderValue)
	}

	at := p.At
	if len(at) == 0 {
		at = defaultAt(p.Template)
	}
	if len(at) < countATSlots(p.Template) {
		return nil, fmt.Errorf("region: generic template %d needs %d AT pixels, got %d: %w", p.Template, countATSlots(p.Template), len(at), common.ErrInvalidHeaderValue)
	}
	sltp := sltpContext[p.Template]

	bm, err := bitmap.New(p.Width, p.Height)
	if err != nil {
		return nil, err
	}

	ltp := 0
	for y := 0; y < p.Height; y++ {
		if p.TPGD {
			bit, err := d.Decode(cx, sltp)
			if err != nil {
				return nil, err
			}
			ltp ^= bit
			if ltp == 1 {
				if y > 0 {
					if err := bm.CopyRowFrom(y, y-1); err != nil {
						return nil, err
					}
				}
				continue
			}
		}
		for x := 0; x < p.Width; x++ {
			ctxVal := contextValue(bm, p.Template, at, x, y)
			bit, err := d.Decode(cx, ctxVal)
			if err != nil {
				return nil, err
			}
			bm.SetPixel(x, y, bit)
		}
	}
	return bm, nil
}

// countATSlots returns how many adaptive-pixel slots a template's layout
// references, i.e. how many entries GenericParams.At must supply.
func countATSlots(template int) int {
	n := 0
	for _, s := range templateLayout[template] {
		if s.isAT && s.atIndex+1 > n {
			n = s.atIndex + 1
		}
	}
	return n
}

// ContextSize returns the context-array size DecodeGeneric needs for a given
// template: one slot per possible neighborhood bit pattern, i.e. 2^(bit
// count), large enough to also index the template's fixed SLTP slot.
func ContextSize(template int) int {
	if template < 0 || template > 3 {
		template = 0
	}
	return 1 << uint(len(templateLayout[template]))
}
