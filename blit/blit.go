// Package blit implements the bitmap compositing operator described in
// spec §4.2: combining a smaller source bitmap into a destination bitmap at
// an arbitrary (possibly negative, possibly clipped) pixel offset, using one
// of the six logical combination operators region segments declare.
//
// The clipping shape (four-sided intersection against the destination
// bounds before any byte touches) is grounded on CJBig2_Image's
// ComposeTo/ComposeFrom pair in other_examples/jdeng-gojbig2/image.go. Like
// that reference decoder, the inner loop combines pixel by pixel; there is
// no byte-at-a-time shift-and-combine path with head/body/tail masks.
package blit

import (
	"fmt"

	"github.com/cocosip/go-jbig2/bitmap"
)

// Op identifies one of the six logical combination operators spec §4.2
// defines for composing a source bitmap onto a destination.
type Op int

const (
	OpOr Op = iota
	OpAnd
	OpXor
	OpXnor
	OpReplace
	OpNot
)

func (op Op) String() string {
	switch op {
	case OpOr:
		return "OR"
	case OpAnd:
		return "AND"
	case OpXor:
		return "XOR"
	case OpXnor:
		return "XNOR"
	case OpReplace:
		return "REPLACE"
	case OpNot:
		return "NOT"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

func combine(op Op, dst, src byte) byte {
	switch op {
	case OpOr:
		return dst | src
	case OpAnd:
		return dst & src
	case OpXor:
		return dst ^ src
	case OpXnor:
		return ^(dst ^ src)
	case OpReplace:
		return src
	case OpNot:
		return ^src
	default:
		return src
	}
}

// Blit composes src onto dst at pixel offset (x, y) using op, per spec §4.2.
// Any part of src that falls outside dst's bounds is silently clipped; a src
// entirely outside dst's bounds is a no-op, not an error.
func Blit(dst *bitmap.Bitmap, src *bitmap.Bitmap, x, y int, op Op) error {
	if dst == nil || src == nil {
		return fmt.Errorf("blit: nil bitmap")
	}

	srcX0, srcY0 := 0, 0
	srcX1, srcY1 := src.Width(), src.Height()

	// Clip against the destination's left/top edges by advancing the
	// source's window and the destination origin together.
	dstX, dstY := x, y
	if dstX < 0 {
		srcX0 -= dstX
		dstX = 0
	}
	if dstY < 0 {
		srcY0 -= dstY
		dstY = 0
	}
	// Clip against the destination's right/bottom edges by shrinking the
	// source window.
	if dstX+(srcX1-srcX0) > dst.Width() {
		srcX1 = srcX0 + (dst.Width() - dstX)
	}
	if dstY+(srcY1-srcY0) > dst.Height() {
		srcY1 = srcY0 + (dst.Height() - dstY)
	}

	if srcX1 <= srcX0 || srcY1 <= srcY0 {
		return nil
	}

	width := srcX1 - srcX0
	height := srcY1 - srcY0

	for row := 0; row < height; row++ {
		if err := blitRow(dst, src, dstX, dstY+row, srcX0, srcY0+row, width, op); err != nil {
			return err
		}
	}
	return nil
}

// blitRow composes one row's worth of pixels one pixel at a time, for every
// alignment of source and destination.
func blitRow(dst, src *bitmap.Bitmap, dstX, dstY, srcX, srcY, width int, op Op) error {
	// Each source pixel is read with GetPixel, combined with the destination
	// pixel under op, and written back with SetPixel. There is no byte-copy
	// fast path, even when dstX%8 == srcX%8; the single code path is the
	// same for every alignment combination.
	for col := 0; col < width; col++ {
		v := src.GetPixel(srcX+col, srcY)
		d := dst.GetPixel(dstX+col, dstY)
		var out int
		switch op {
		case OpOr:
			out = d | v
		case OpAnd:
			out = d & v
		case OpXor:
			out = d ^ v
		case OpXnor:
			if d == v {
				out = 1
			} else {
				out = 0
			}
		case OpReplace:
			out = v
		case OpNot:
			out = 1 - v
		default:
			return fmt.Errorf("blit: unknown operator %v", op)
		}
		dst.SetPixel(dstX+col, dstY, out)
	}
	return nil
}

// combineByte applies op to a whole destination byte and a whole source
// byte, the byte form of the operator algebra. Nothing in this module calls
// it: blitRow combines single pixels, and the region decoders go through
// Blit.
func combineByte(op Op, dstByte, srcByte byte) byte {
	return combine(op, dstByte, srcByte)
}
