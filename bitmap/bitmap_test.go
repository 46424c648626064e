package bitmap

import "testing"

func TestNewIsAllZero(t *testing.T) {
	bm, err := New(10, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if bm.GetPixel(x, y) != 0 {
				t.Fatalf("pixel (%d,%d) = 1, want 0 on a fresh bitmap", x, y)
			}
		}
	}
}

func TestOutOfRangeReadsZero(t *testing.T) {
	bm, _ := New(4, 4)
	bm.Fill(true)
	if bm.GetPixel(-1, 0) != 0 || bm.GetPixel(4, 0) != 0 || bm.GetPixel(0, -1) != 0 || bm.GetPixel(0, 4) != 0 {
		t.Fatal("out-of-range pixels must read as 0 regardless of content")
	}
}

func TestOutOfRangeWriteIsNoop(t *testing.T) {
	bm, _ := New(2, 2)
	bm.SetPixel(5, 5, 1) // must not panic
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if bm.GetPixel(x, y) != 0 {
				t.Fatal("out-of-range SetPixel must not affect in-range pixels")
			}
		}
	}
}

func TestSetPixelGetPixelRoundTrip(t *testing.T) {
	bm, _ := New(9, 3)
	bm.SetPixel(0, 0, 1)
	bm.SetPixel(8, 2, 1)
	bm.SetPixel(4, 1, 1)
	if bm.GetPixel(0, 0) != 1 || bm.GetPixel(8, 2) != 1 || bm.GetPixel(4, 1) != 1 {
		t.Fatal("set pixels did not read back as 1")
	}
	if bm.GetPixel(1, 0) != 0 {
		t.Fatal("unset neighbor pixel should read 0")
	}
}

func TestFilledTrue(t *testing.T) {
	bm, err := Filled(12, 4, true)
	if err != nil {
		t.Fatalf("Filled: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 12; x++ {
			if bm.GetPixel(x, y) != 1 {
				t.Fatalf("pixel (%d,%d) = 0, want 1", x, y)
			}
		}
	}
}

func TestFromBufferRejectsWrongLength(t *testing.T) {
	if _, err := FromBuffer(10, 10, make([]byte, 3)); err == nil {
		t.Fatal("FromBuffer with a too-short buffer should fail")
	}
}

func TestRowStrideRoundsUpToByte(t *testing.T) {
	bm, _ := New(9, 1)
	if bm.RowStride() != 2 {
		t.Fatalf("RowStride() = %d, want 2 for width 9", bm.RowStride())
	}
}

func TestCopyRowFromDuplicatesRow(t *testing.T) {
	bm, _ := New(8, 3)
	bm.SetPixel(0, 0, 1)
	bm.SetPixel(3, 0, 1)
	if err := bm.CopyRowFrom(2, 0); err != nil {
		t.Fatalf("CopyRowFrom: %v", err)
	}
	if bm.GetPixel(0, 2) != 1 || bm.GetPixel(3, 2) != 1 {
		t.Fatal("CopyRowFrom did not duplicate the source row's bits")
	}
	if bm.GetPixel(1, 2) != 0 {
		t.Fatal("CopyRowFrom should not set bits the source row didn't have")
	}
}

func TestZeroRowClears(t *testing.T) {
	bm, _ := New(8, 2)
	bm.Fill(true)
	if err := bm.ZeroRow(0); err != nil {
		t.Fatalf("ZeroRow: %v", err)
	}
	for x := 0; x < 8; x++ {
		if bm.GetPixel(x, 0) != 0 {
			t.Fatal("ZeroRow did not clear row 0")
		}
	}
	if bm.GetPixel(0, 1) != 1 {
		t.Fatal("ZeroRow should not affect other rows")
	}
}
