// Package region implements the two region decoders spec §4.6-§4.7 build on
// top of bitmap, blit and arith: generic region decoding (template-based
// context modeling with optional typical prediction) and halftone region
// decoding (grayscale-plane assembly plus pattern-dictionary blitting).
package region

// Point is a signed pixel offset, used for the generic region template's
// adaptive (AT) pixel positions.
type Point struct {
	X, Y int
}

// GenericParams collects a generic region segment's decoding parameters,
// per spec §3 (Region header) and §4.6.
type GenericParams struct {
	Width, Height int
	Template      int  // 0..3
	TPGD          bool // typical prediction for generic direct coding
	At            []Point
}

// defaultAt returns the standard adaptive-pixel positions for a template
// when a segment's header does not override them (spec §4.6, Table 6 of the
// referenced ISO text; taken from unidoc's updateOverrideFlags defaults).
func defaultAt(template int) []Point {
	switch template {
	case 0:
		return []Point{{3, -1}, {-3, -1}, {2, -2}, {-2, -2}}
	case 1:
		return []Point{{3, -1}}
	case 2:
		return []Point{{2, -1}}
	default:
		return []Point{{2, -1}}
	}
}
