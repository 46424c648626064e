// Package common holds the error kinds shared across the JBIG2 decoding
// pipeline (bitio, arith, bitmap, blit, region), mirroring the teacher's own
// jpeg/common package: one shared sentinel-error package imported by every
// codec-specific subpackage instead of each one rolling its own.
package common

import "errors"

var (
	// ErrEndOfStream is returned when the byte source is exhausted before a
	// required read completes. Spec §7.
	ErrEndOfStream = errors.New("jbig2: end of stream")

	// ErrInvalidHeaderValue is returned when a region header field violates
	// an ISO-mandated range (template > 3, a zero grid dimension on a
	// non-empty region, and so on). Spec §7.
	ErrInvalidHeaderValue = errors.New("jbig2: invalid header value")

	// ErrIndexOutOfBounds is returned when a context-memory index exceeds its
	// allocated size. Spec §7. (A decoded halftone pattern index beyond the
	// dictionary is reported as ErrCorruptedStream.)
	ErrIndexOutOfBounds = errors.New("jbig2: index out of bounds")

	// ErrCorruptedStream is returned when a decoded value falls outside its
	// declared range: a halftone pattern index beyond the dictionary, or an
	// integer rejected by the arithmetic integer decoder's range check. The
	// arithmetic decoder does not return it on reaching a marker byte; it
	// pads with 1-bits and reports the marker through Decoder.AtMarker.
	ErrCorruptedStream = errors.New("jbig2: corrupted stream")
)
