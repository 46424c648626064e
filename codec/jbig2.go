package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-jbig2/arith"
	"github.com/cocosip/go-jbig2/bitio"
	"github.com/cocosip/go-jbig2/region"
)

// jbig2UID is the DICOM Transfer Syntax UID registered for JBIG2 lossless
// compression (unofficial/retired in modern DICOM, but still the UID most
// legacy datasets that embed JBIG2 pixel data carry).
const jbig2UID = "1.2.840.10008.1.2.4.90"

// JBIG2Options holds generic-region settings (template, typical prediction)
// for JBIG2Codec. Real .jb2 streams carry this information in segment
// headers, and segment-header framing is outside this module's scope (the
// core spec covers the region decoders themselves, not the container format
// around them). JBIG2Codec.Decode does not read JBIG2Options: it always
// decodes with template 0 and typical prediction enabled, and takes only the
// width and height from its preamble — see JBIG2Codec's doc comment.
type JBIG2Options struct {
	BaseOptions
	Template int
	TPGD     bool
}

// JBIG2Codec adapts the generic region decoder (region.DecodeGeneric) to the
// Codec interface so it can be registered in, and looked up through, the
// codec Registry.
//
// Decode does not parse a full ISO/IEC 14492 segment stream — that framing
// is explicitly out of this project's scope. Instead it expects data to be
// a minimal self-contained encoding this adapter defines: a 4-byte
// big-endian width, a 4-byte big-endian height, and the arithmetically
// coded generic-region bitstream for a single region covering the whole
// image, template 0 with typical prediction enabled. This still exercises
// the full arith/bitio/bitmap/region pipeline end to end; it is not a
// general-purpose JBIG2 container reader.
type JBIG2Codec struct{}

// NewJBIG2Codec constructs the codec. It takes no arguments because, unlike
// the teacher's other codecs, JBIG2 decoding here needs no persistent
// per-instance state.
func NewJBIG2Codec() *JBIG2Codec { return &JBIG2Codec{} }

func init() {
	Register(NewJBIG2Codec())
}

// UID implements Codec.
func (c *JBIG2Codec) UID() string { return jbig2UID }

// Name implements Codec.
func (c *JBIG2Codec) Name() string { return "JBIG2" }

// Encode implements Codec. Encoding is out of scope: this project implements
// the decode-side pipeline only (spec Non-goals).
func (c *JBIG2Codec) Encode(params EncodeParams) ([]byte, error) {
	return nil, fmt.Errorf("codec: JBIG2 encode: %w", ErrUnsupportedFormat)
}

// Decode implements Codec, per JBIG2Codec's doc comment.
func (c *JBIG2Codec) Decode(data []byte) (*DecodeResult, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("codec: JBIG2 decode: %w", ErrInvalidParameter)
	}
	width := int(binary.BigEndian.Uint32(data[0:4]))
	height := int(binary.BigEndian.Uint32(data[4:8]))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("codec: JBIG2 decode: %w", ErrInvalidParameter)
	}

	r := bitio.NewReader(data[8:])
	d, err := arith.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("codec: JBIG2 decode: %w", err)
	}
	cx := arith.NewContext(region.ContextSize(0))
	bm, err := region.DecodeGeneric(d, cx, region.GenericParams{
		Width: width, Height: height, Template: 0, TPGD: true,
	})
	if err != nil {
		return nil, fmt.Errorf("codec: JBIG2 decode: %w", err)
	}

	pixels := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if bm.GetPixel(x, y) != 0 {
				pixels[y*width+x] = 0xff
			}
		}
	}

	return &DecodeResult{
		PixelData:  pixels,
		Width:      width,
		Height:     height,
		Components: 1,
		BitDepth:   8,
	}, nil
}
