package segment

import (
	"testing"

	"github.com/cocosip/go-jbig2/arith"
	"github.com/cocosip/go-jbig2/bitio"
	"github.com/cocosip/go-jbig2/blit"
	"github.com/cocosip/go-jbig2/region"
)

func TestNewPageDefaultPixel(t *testing.T) {
	page, err := NewPage(4, 4, true)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if page.Bitmap().GetPixel(x, y) != 1 {
				t.Fatalf("pixel (%d,%d) = 0, want 1 (default pixel)", x, y)
			}
		}
	}
}

func TestComposeRejectsNilRegion(t *testing.T) {
	page, err := NewPage(4, 4, false)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	if err := page.Compose(nil, 0, 0, blit.OpOr); err == nil {
		t.Fatal("Compose(nil, ...) should fail")
	}
}

// TestEndToEndGenericRegionOntoPage exercises the full decode pipeline this
// module implements — arithmetic decoder, generic region decoding, and page
// composition — standing in for a golden-hash fixture test (no .jb2 sample
// bytes or published golden hash are available to this test suite).
func TestEndToEndGenericRegionOntoPage(t *testing.T) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i*53 + 17)
	}
	d, err := arith.NewDecoder(bitio.NewReader(data))
	if err != nil {
		t.Fatalf("arith.NewDecoder: %v", err)
	}

	cx := arith.NewContext(region.ContextSize(0))
	regionBitmap, err := region.DecodeGeneric(d, cx, region.GenericParams{
		Width: 16, Height: 16, Template: 0, TPGD: true,
	})
	if err != nil {
		t.Fatalf("DecodeGeneric: %v", err)
	}

	page, err := NewPage(32, 32, false)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	if err := page.Compose(regionBitmap, 8, 8, blit.OpOr); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// The region must have landed entirely inside the page at its declared
	// offset; pixels strictly outside [8,24)x[8,24) must still carry the
	// page's default background.
	if page.Bitmap().GetPixel(0, 0) != 0 {
		t.Fatal("pixel outside the composed region should remain background")
	}
	if page.Bitmap().Width() != 32 || page.Bitmap().Height() != 32 {
		t.Fatalf("page dims = %dx%d, want 32x32", page.Bitmap().Width(), page.Bitmap().Height())
	}
}
