package arith

import "testing"

func TestContextGetSetRoundTrip(t *testing.T) {
	ctx := NewContext(8)
	if ctx.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", ctx.Size())
	}
	if err := ctx.Set(3, 0x7f); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := ctx.Get(3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != 0x7f {
		t.Fatalf("Get(3) = %#x, want 0x7f", v)
	}
}

func TestContextSetMasksHighBit(t *testing.T) {
	ctx := NewContext(1)
	if err := ctx.Set(0, 0xff); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, _ := ctx.Get(0)
	if v != 0x7f {
		t.Fatalf("Set(0xff) stored %#x, want 0x7f (top bit masked)", v)
	}
}

func TestContextOutOfBounds(t *testing.T) {
	ctx := NewContext(4)
	if _, err := ctx.Get(4); err == nil {
		t.Fatal("Get(4) on size-4 context should fail")
	}
	if _, err := ctx.Get(-1); err == nil {
		t.Fatal("Get(-1) should fail")
	}
	if err := ctx.Set(4, 0); err == nil {
		t.Fatal("Set(4) on size-4 context should fail")
	}
}

func TestContextReset(t *testing.T) {
	ctx := NewContext(4)
	for i := 0; i < 4; i++ {
		_ = ctx.Set(i, 0x55)
	}
	ctx.Reset()
	for i := 0; i < 4; i++ {
		v, _ := ctx.Get(i)
		if v != 0 {
			t.Fatalf("Reset left non-zero state at %d: %#x", i, v)
		}
	}
}
