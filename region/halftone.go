package region

import (
	"fmt"

	"github.com/cocosip/go-jbig2/arith"
	"github.com/cocosip/go-jbig2/bitmap"
	"github.com/cocosip/go-jbig2/blit"
	"github.com/cocosip/go-jbig2/common"
)

// PatternDictionary is a fixed-size collection of same-sized pattern
// bitmaps, produced by DecodePatternDictionary and consumed by
// DecodeHalftone as the palette a halftone region's grayscale planes index
// into. Grounded on unidoc's PatternDictionarySegment / HT segment pairing.
type PatternDictionary struct {
	PatternWidth, PatternHeight int
	Patterns                    []*bitmap.Bitmap
}

// PatternDictParams collects a pattern dictionary segment's header fields
// (spec §4.7, Annex 6.7).
type PatternDictParams struct {
	PatternWidth, PatternHeight int
	MaxPatternIndex             int // HDPATS-1: highest valid pattern index
	Template                    int
}

// DecodePatternDictionary implements Annex 6.7's collective-bitmap decode: a
// single generic-region bitmap (GRAYMAX+1)*patternWidth wide by
// patternHeight tall is decoded, then sliced into individual patterns. The
// adaptive pixel positions are the Annex 6.7.5 fixed overrides, not the
// generic region defaults: A1 is placed at (-patternWidth, 0) so each
// pattern can reference the one immediately to its left.
func DecodePatternDictionary(d *arith.Decoder, cx *arith.Context, p PatternDictParams) (*PatternDictionary, error) {
	if p.PatternWidth <= 0 || p.PatternHeight <= 0 {
		return nil, fmt.Errorf("region: pattern dimensions %dx%d invalid: %w", p.PatternWidth, p.PatternHeight, common.ErrInvalidHeaderValue)
	}
	if p.MaxPatternIndex < 0 {
		return nil, fmt.Errorf("region: max pattern index %d invalid: %w", p.MaxPatternIndex, common.ErrInvalidHeaderValue)
	}

	count := p.MaxPatternIndex + 1
	at := []Point{{-p.PatternWidth, 0}}
	if p.Template == 0 {
		at = append(at, Point{-3, -1}, Point{2, -2}, Point{-2, -2})
	}

	collective, err := DecodeGeneric(d, cx, GenericParams{
		Width:    count * p.PatternWidth,
		Height:   p.PatternHeight,
		Template: p.Template,
		At:       at,
	})
	if err != nil {
		return nil, err
	}

	patterns := make([]*bitmap.Bitmap, count)
	for i := 0; i < count; i++ {
		pat, err := bitmap.New(p.PatternWidth, p.PatternHeight)
		if err != nil {
			return nil, err
		}
		for y := 0; y < p.PatternHeight; y++ {
			for x := 0; x < p.PatternWidth; x++ {
				pat.SetPixel(x, y, collective.GetPixel(i*p.PatternWidth+x, y))
			}
		}
		patterns[i] = pat
	}
	return &PatternDictionary{PatternWidth: p.PatternWidth, PatternHeight: p.PatternHeight, Patterns: patterns}, nil
}

// HalftoneParams collects a halftone region segment's header fields (spec
// §4.7, Annex 6.6).
type HalftoneParams struct {
	RegionWidth, RegionHeight int
	GridWidth, GridHeight     int
	GridX, GridY              int32 // signed, 1/256-pixel grid origin
	StepX, StepY              int16 // signed grid step vectors
	Template                  int
	DefaultPixel              bool
	CombOp                    blit.Op
	EnableSkip                bool
}

// DecodeHalftone implements the halftone region decoding procedure of spec
// §4.7 / Annex 6.6: decode a stack of Gray-coded bit-plane bitmaps against a
// shared arithmetic context, XOR-assemble them into one grayscale index per
// grid cell, then blit the pattern dictionary entry each index selects onto
// the region bitmap at its grid position.
func DecodeHalftone(d *arith.Decoder, cx *arith.Context, dict *PatternDictionary, p HalftoneParams) (*bitmap.Bitmap, error) {
	if p.RegionWidth <= 0 || p.RegionHeight <= 0 {
		return nil, fmt.Errorf("region: halftone region dimensions %dx%d invalid: %w", p.RegionWidth, p.RegionHeight, common.ErrInvalidHeaderValue)
	}
	if p.GridWidth <= 0 || p.GridHeight <= 0 {
		return nil, fmt.Errorf("region: halftone grid dimensions %dx%d invalid: %w", p.GridWidth, p.GridHeight, common.ErrInvalidHeaderValue)
	}
	if dict == nil || len(dict.Patterns) == 0 {
		return nil, fmt.Errorf("region: halftone requires a non-empty pattern dictionary: %w", common.ErrInvalidHeaderValue)
	}

	// bitsPerValue is 0 when the dictionary has exactly one pattern: every
	// grid cell trivially selects pattern 0 and no GR planes are decoded at
	// all (spec §4.7 corner case).
	bitsPerValue := 0
	for i := 1; i < len(dict.Patterns); bitsPerValue++ {
		i <<= 1
	}

	region, err := bitmap.Filled(p.RegionWidth, p.RegionHeight, p.DefaultPixel)
	if err != nil {
		return nil, err
	}

	grayValues := make([]int, p.GridWidth*p.GridHeight)
	var prevPlane *bitmap.Bitmap

	var at []Point
	if p.Template <= 1 {
		at = []Point{{3, -1}}
	} else {
		at = []Point{{2, -1}}
	}
	if p.Template == 0 {
		at = append(at, Point{-3, -1}, Point{2, -2}, Point{-2, -2})
	}

	for j := bitsPerValue - 1; j >= 0; j-- {
		plane, err := DecodeGeneric(d, cx, GenericParams{
			Width:    p.GridWidth,
			Height:   p.GridHeight,
			Template: p.Template,
			At:       at,
		})
		if err != nil {
			return nil, err
		}
		if prevPlane != nil {
			for y := 0; y < p.GridHeight; y++ {
				for x := 0; x < p.GridWidth; x++ {
					bit := plane.GetPixel(x, y) ^ prevPlane.GetPixel(x, y)
					plane.SetPixel(x, y, bit)
				}
			}
		}
		for y := 0; y < p.GridHeight; y++ {
			for x := 0; x < p.GridWidth; x++ {
				idx := y*p.GridWidth + x
				grayValues[idx] = grayValues[idx]<<1 | plane.GetPixel(x, y)
			}
		}
		prevPlane = plane
	}

	maxIndex := len(dict.Patterns) - 1
	for mg := 0; mg < p.GridHeight; mg++ {
		for ng := 0; ng < p.GridWidth; ng++ {
			val := grayValues[mg*p.GridWidth+ng]
			if err := checkGrayValue(val, maxIndex, ng, mg); err != nil {
				return nil, err
			}
			x := (int(p.GridX) + mg*int(p.StepY) + ng*int(p.StepX)) >> 8
			y := (int(p.GridY) + mg*int(p.StepX) - ng*int(p.StepY)) >> 8
			if err := blit.Blit(region, dict.Patterns[val], x, y, p.CombOp); err != nil {
				return nil, err
			}
		}
	}
	return region, nil
}

// checkGrayValue rejects a Gray-code-assembled pattern index that falls
// outside the dictionary: Gray coding over bitsPerValue bits can legally
// produce a value up to 2^bitsPerValue-1, which exceeds maxIndex whenever
// the dictionary's pattern count isn't itself a power of two. Spec §4.7
// mandates failing rather than clamping to the nearest valid pattern.
func checkGrayValue(val, maxIndex, ng, mg int) error {
	if val > maxIndex {
		return fmt.Errorf("region: halftone grid cell (%d,%d) decoded pattern index %d, max %d: %w", ng, mg, val, maxIndex, common.ErrCorruptedStream)
	}
	return nil
}
