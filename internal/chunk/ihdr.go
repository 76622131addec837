package chunk

import "github.com/adampollak/pngraster/internal/pngerr"

// Color type constants, as per the PNG spec.
const (
	ColorGrayscale      = 0
	ColorTruecolor      = 2
	ColorIndexed        = 3
	ColorGrayscaleAlpha = 4
	ColorTruecolorAlpha = 6
)

// Header is the decoded image header: the single required chunk that every
// later stage treats as read-only.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// allowedBitDepths is the standard (colorType -> valid bit depths) table
// from the PNG spec, mirrored from original_source/PNGParser.h's
// ColorDataTable<ColorType> specializations.
var allowedBitDepths = map[uint8][]uint8{
	ColorGrayscale:      {1, 2, 4, 8, 16},
	ColorTruecolor:      {8, 16},
	ColorIndexed:        {1, 2, 4, 8},
	ColorGrayscaleAlpha: {8, 16},
	ColorTruecolorAlpha: {8, 16},
}

// SamplesPerPixel returns how many samples make up one pixel for this
// header's color type: 1 for grayscale/indexed, 2 for grayscale+alpha, 3
// for truecolor, 4 for truecolor+alpha.
func (h Header) SamplesPerPixel() int {
	switch h.ColorType {
	case ColorGrayscale, ColorIndexed:
		return 1
	case ColorGrayscaleAlpha:
		return 2
	case ColorTruecolor:
		return 3
	case ColorTruecolorAlpha:
		return 4
	default:
		return 0
	}
}

// ParseIHDR decodes and validates the 13-byte IHDR payload.
func ParseIHDR(data []byte) (Header, error) {
	c := newCursor(data)
	width, err := c.u32be()
	if err != nil {
		return Header{}, err
	}
	height, err := c.u32be()
	if err != nil {
		return Header{}, err
	}
	bitDepth, err := c.u8()
	if err != nil {
		return Header{}, err
	}
	colorType, err := c.u8()
	if err != nil {
		return Header{}, err
	}
	compressionMethod, err := c.u8()
	if err != nil {
		return Header{}, err
	}
	filterMethod, err := c.u8()
	if err != nil {
		return Header{}, err
	}
	interlaceMethod, err := c.u8()
	if err != nil {
		return Header{}, err
	}
	if err := c.requireExhausted(); err != nil {
		return Header{}, err
	}

	h := Header{
		Width:             width,
		Height:            height,
		BitDepth:          bitDepth,
		ColorType:         colorType,
		CompressionMethod: compressionMethod,
		FilterMethod:      filterMethod,
		InterlaceMethod:   interlaceMethod,
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Validate enforces the invariants spec §3 places on the header: positive
// dimensions within a 2^31-1 bound, an allowed (colorType, bitDepth) pair,
// and the fixed compression/filter/interlace method values.
func (h Header) Validate() error {
	const maxDim = 1<<31 - 1
	if h.Width == 0 || h.Width > maxDim {
		return pngerr.New(pngerr.InvalidHeader, "width %d out of range", h.Width)
	}
	if h.Height == 0 || h.Height > maxDim {
		return pngerr.New(pngerr.InvalidHeader, "height %d out of range", h.Height)
	}
	depths, ok := allowedBitDepths[h.ColorType]
	if !ok {
		return pngerr.New(pngerr.InvalidHeader, "unknown color type %d", h.ColorType)
	}
	valid := false
	for _, d := range depths {
		if d == h.BitDepth {
			valid = true
			break
		}
	}
	if !valid {
		return pngerr.New(pngerr.InvalidHeader, "bit depth %d not allowed for color type %d", h.BitDepth, h.ColorType)
	}
	if h.CompressionMethod != 0 {
		return pngerr.New(pngerr.InvalidHeader, "unknown compression method %d", h.CompressionMethod)
	}
	if h.FilterMethod != 0 {
		return pngerr.New(pngerr.InvalidHeader, "unknown filter method %d", h.FilterMethod)
	}
	if h.InterlaceMethod != 0 && h.InterlaceMethod != 1 {
		return pngerr.New(pngerr.InvalidHeader, "unknown interlace method %d", h.InterlaceMethod)
	}
	return nil
}

// RGB is one PLTE entry.
type RGB struct {
	R, G, B uint8
}

// ParsePLTE decodes a palette: an ordered sequence of up to 256 RGB
// triples. length must be a multiple of 3.
func ParsePLTE(data []byte) ([]RGB, error) {
	if len(data)%3 != 0 {
		return nil, pngerr.New(pngerr.InvalidHeader, "PLTE length %d not a multiple of 3", len(data))
	}
	n := len(data) / 3
	if n == 0 || n > 256 {
		return nil, pngerr.New(pngerr.InvalidHeader, "PLTE has %d entries", n)
	}
	entries := make([]RGB, n)
	for i := 0; i < n; i++ {
		entries[i] = RGB{data[i*3], data[i*3+1], data[i*3+2]}
	}
	return entries, nil
}
