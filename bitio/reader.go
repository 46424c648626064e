// Package bitio presents a seekable byte source as a big-endian bit stream.
// It is the bit-stream reader consumed by arith.Decoder (and, through it, the
// region decoders) per spec §4.1: reads are MSB-first within each byte. The
// MQ-coder's byte-stuffing check (arith package) inspects the byte after a
// 0xFF with PeekByteAt before deciding whether to consume it; RewindByte
// steps back over a byte that has already been consumed.
//
// Naming follows deepteams-webp's internal/bitio package; the implementation
// itself is new, since JBIG2 needs big-endian, seekable reads rather than
// VP8L's little-endian sliding window.
package bitio

import (
	"fmt"

	"github.com/cocosip/go-jbig2/common"
)

// Reader is a seekable, bit-addressable view over a fixed byte slice.
type Reader struct {
	data   []byte
	bytePos int
	bitPos  uint // 0..7, number of bits already consumed from data[bytePos]
}

// NewReader wraps data for bit-level reading starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Length returns the total number of bytes in the underlying buffer.
func (r *Reader) Length() int { return len(r.data) }

// Position returns the current byte offset; a stream positioned mid-byte
// reports the byte currently being consumed.
func (r *Reader) Position() int { return r.bytePos }

// BitPosition returns the number of bits already consumed from the current
// byte (0 means byte-aligned).
func (r *Reader) BitPosition() uint { return r.bitPos }

// Seek repositions the reader to a byte-aligned offset.
func (r *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return fmt.Errorf("bitio: seek offset %d out of range [0,%d]: %w", offset, len(r.data), common.ErrEndOfStream)
	}
	r.bytePos = offset
	r.bitPos = 0
	return nil
}

// RewindByte moves the read head back exactly one byte, re-aligning to its
// start, so the byte just consumed is returned again by the next read.
func (r *Reader) RewindByte() error {
	if r.bytePos <= 0 {
		return fmt.Errorf("bitio: cannot rewind before offset 0")
	}
	r.bytePos--
	r.bitPos = 0
	return nil
}

// ReadBit consumes and returns the next bit, MSB-first within each byte.
func (r *Reader) ReadBit() (int, error) {
	if r.bytePos >= len(r.data) {
		return 0, fmt.Errorf("bitio: read bit at byte %d: %w", r.bytePos, common.ErrEndOfStream)
	}
	b := r.data[r.bytePos]
	bit := int((b >> (7 - r.bitPos)) & 1)
	r.bitPos++
	if r.bitPos == 8 {
		r.bitPos = 0
		r.bytePos++
	}
	return bit, nil
}

// ReadBits consumes n bits (1 <= n <= 32) and returns them as a big-endian
// unsigned value.
func (r *Reader) ReadBits(n int) (uint64, error) {
	if n < 1 || n > 32 {
		return 0, fmt.Errorf("bitio: ReadBits(%d): n must be in [1,32]", n)
	}
	var v uint64
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint64(bit)
	}
	return v, nil
}

// ReadByte consumes the next 8 bits as a byte. When the reader is
// byte-aligned it returns the current byte directly; mid-byte, it reads the
// remaining bits of the current byte followed by the leading bits of the
// next one, exactly as ReadBits(8) would.
func (r *Reader) ReadByte() (byte, error) {
	if r.bitPos == 0 {
		if r.bytePos >= len(r.data) {
			return 0, fmt.Errorf("bitio: read byte at %d: %w", r.bytePos, common.ErrEndOfStream)
		}
		b := r.data[r.bytePos]
		r.bytePos++
		return b, nil
	}
	v, err := r.ReadBits(8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

// AlignToByte discards any partially-consumed bits in the current byte.
func (r *Reader) AlignToByte() {
	if r.bitPos != 0 {
		r.bitPos = 0
		r.bytePos++
	}
}

// PeekByteAt returns the byte at an absolute offset without moving the read
// head; used by the MQ-coder's byteIn to inspect the next raw byte.
func (r *Reader) PeekByteAt(offset int) (byte, error) {
	if offset < 0 || offset >= len(r.data) {
		return 0, fmt.Errorf("bitio: peek at %d: %w", offset, common.ErrEndOfStream)
	}
	return r.data[offset], nil
}
