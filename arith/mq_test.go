package arith

import (
	"testing"

	"github.com/cocosip/go-jbig2/bitio"
)

func TestNewDecoderPrimesFromTwoBytes(t *testing.T) {
	d, err := NewDecoder(bitio.NewReader([]byte{0x00, 0x00, 0xff, 0xac}))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if d.A() != 0x8000 {
		t.Fatalf("A() = %#x, want 0x8000 immediately after priming", d.A())
	}
	if d.CT() < 0 {
		t.Fatalf("CT() = %d, want >= 0", d.CT())
	}
}

func TestNewDecoderFailsOnEmptyStream(t *testing.T) {
	if _, err := NewDecoder(bitio.NewReader(nil)); err == nil {
		t.Fatal("NewDecoder on an empty stream should fail")
	}
}

// TestDecodeMaintainsIntervalInvariant exercises a long run of decisions
// against a fixed-size context array and checks the coder-state invariant
// from spec §8 ("0x8000 <= A < 0x10000 after every Decode call") rather than
// any particular bit sequence, since no published JBIG2 arithmetic trace is
// available to this test.
func TestDecodeMaintainsIntervalInvariant(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i*37 + 11)
	}
	d, err := NewDecoder(bitio.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	ctx := NewContext(16)
	for i := 0; i < 2000; i++ {
		if _, err := d.Decode(ctx, i%16); err != nil {
			t.Fatalf("Decode #%d: %v", i, err)
		}
		if d.A() < 0x8000 || d.A() > 0xffff {
			t.Fatalf("Decode #%d: A() = %#x, want in [0x8000,0xffff]", i, d.A())
		}
		if d.CT() < 0 {
			t.Fatalf("Decode #%d: CT() = %d, want >= 0", i, d.CT())
		}
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	data := []byte{0x4a, 0x9e, 0x03, 0xff, 0xac, 0x00, 0x12, 0x34}

	run := func() []int {
		d, err := NewDecoder(bitio.NewReader(data))
		if err != nil {
			t.Fatalf("NewDecoder: %v", err)
		}
		ctx := NewContext(4)
		bits := make([]int, 0, 64)
		for i := 0; i < 64; i++ {
			b, err := d.Decode(ctx, i%4)
			if err != nil {
				t.Fatalf("Decode #%d: %v", i, err)
			}
			bits = append(bits, b)
		}
		return bits
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("decode #%d diverged across runs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestByteInLeavesMarkerUnconsumed(t *testing.T) {
	r := bitio.NewReader([]byte{0x00, 0xff, 0x90, 0x00})
	d, err := NewDecoder(r)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	ctx := NewContext(1)
	for i := 0; i < 32; i++ {
		if _, err := d.Decode(ctx, 0); err != nil {
			t.Fatalf("Decode #%d: %v", i, err)
		}
	}
	if !d.AtMarker() {
		t.Fatal("AtMarker() = false after consuming past a 0xFF 0x90 marker")
	}
	if r.Position() != 2 {
		t.Fatalf("Position() = %d, want 2 (the 0x90 marker byte left unconsumed)", r.Position())
	}
}
