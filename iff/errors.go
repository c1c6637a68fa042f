package iff

import "fmt"

// FormatError is returned when the container magic or type tag is wrong, or a
// required chunk is absent.
type FormatError struct {
	Kind Kind
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("iff: invalid %s file: %s", e.Kind, e.Msg)
}

// SizeMismatchError is returned when a declared size disagrees with the data
// actually present. Tag is empty for the outer container.
type SizeMismatchError struct {
	Tag      string
	Declared int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("iff: chunk %s should be %dB, but is %dB", e.Tag, e.Declared, e.Actual)
	}
	return fmt.Sprintf("iff: file reports being %dB, but is actually %dB long", e.Declared, e.Actual)
}

// UnsupportedVariantError is returned for a recognised predecessor format
// that is deliberately not parsed.
type UnsupportedVariantError struct {
	Variant string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("iff: %s files are not supported", e.Variant)
}

// TruncatedChunkError is returned when chunk framing does not consume exactly
// the space available.
type TruncatedChunkError struct {
	Tag       string
	Offset    int
	Remaining int
}

func (e *TruncatedChunkError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("iff: chunk %s at offset %#x overruns the container, %d bytes left", e.Tag, e.Offset, e.Remaining)
	}
	return fmt.Sprintf("iff: chunk framing broken at offset %#x, %d bytes left", e.Offset, e.Remaining)
}
