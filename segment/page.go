// Package segment provides the thin page-composition layer spec §8's
// end-to-end scenario exercises: a destination bitmap that region decoders
// blit their output onto, at the offset and with the combination operator
// their segment header declares. Segment-header parsing itself (the
// generic/symbol/text/refinement segment framing that drives a real .jb2
// file) is outside this module's scope; Page only owns the composition step
// that sits downstream of region.DecodeGeneric / region.DecodeHalftone.
package segment

import (
	"fmt"

	"github.com/cocosip/go-jbig2/bitmap"
	"github.com/cocosip/go-jbig2/blit"
	"github.com/cocosip/go-jbig2/common"
)

// Page is the output canvas a JBIG2 page segment decodes onto: one packed
// bi-level bitmap, filled at construction with the page's default pixel
// value (spec's Region header / page default-color field). The default
// value itself is not stored.
type Page struct {
	bitmap *bitmap.Bitmap
}

// NewPage allocates a page of the given dimensions, filled with
// defaultPixel (the page segment's default pixel value).
func NewPage(width, height int, defaultPixel bool) (*Page, error) {
	bm, err := bitmap.Filled(width, height, defaultPixel)
	if err != nil {
		return nil, fmt.Errorf("segment: new page: %w", err)
	}
	return &Page{bitmap: bm}, nil
}

// Bitmap exposes the page's backing bitmap; callers may read pixels from it
// once every region has been composed, or pass it to another Blit as its
// own source (nested region composition, e.g. a page built up from several
// striped generic regions).
func (p *Page) Bitmap() *bitmap.Bitmap { return p.bitmap }

// Compose blits a decoded region onto the page at (x, y) using op, per the
// region segment information field's external combination operator (spec
// §3, Region header).
func (p *Page) Compose(region *bitmap.Bitmap, x, y int, op blit.Op) error {
	if region == nil {
		return fmt.Errorf("segment: compose: nil region: %w", common.ErrInvalidHeaderValue)
	}
	return blit.Blit(p.bitmap, region, x, y, op)
}
