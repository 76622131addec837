// Package raster implements everything downstream of the inflated byte
// stream: splitting it into Adam7 reduced images, unpacking sub-byte
// samples, reversing the five scanline filters, reassembling interlaced
// passes into the final grid, and normalizing to canonical RGBA8 (spec
// §4.6-§4.11).
package raster

// Pass describes one of the seven Adam7 interlacing passes: the pixel grid
// offset and stride a reduced image's samples map back to in the full
// image. Grounded verbatim on mi-v-viewshed-server's img1b/png/reader.go
// interlacing table (there: xFactor/yFactor/xOffset/yOffset), renamed to
// match spec §4.5's StartRow/StartCol/RowIncr/ColIncr vocabulary.
type Pass struct {
	StartRow, StartCol int
	RowIncr, ColIncr   int
}

// Passes is the standard Adam7 pass table (spec §4.5).
var Passes = [7]Pass{
	{StartRow: 0, StartCol: 0, RowIncr: 8, ColIncr: 8},
	{StartRow: 0, StartCol: 4, RowIncr: 8, ColIncr: 8},
	{StartRow: 4, StartCol: 0, RowIncr: 8, ColIncr: 4},
	{StartRow: 0, StartCol: 2, RowIncr: 4, ColIncr: 4},
	{StartRow: 2, StartCol: 0, RowIncr: 4, ColIncr: 2},
	{StartRow: 0, StartCol: 1, RowIncr: 2, ColIncr: 2},
	{StartRow: 1, StartCol: 0, RowIncr: 2, ColIncr: 1},
}

// PassDimensions returns the width and height of pass p's reduced image
// given the full image's dimensions. Either may be zero, meaning the pass
// contributes no reduced image at all (spec §4.5).
func (p Pass) PassDimensions(width, height int) (passWidth, passHeight int) {
	passWidth = ceilDiv(width-p.StartCol, p.ColIncr)
	passHeight = ceilDiv(height-p.StartRow, p.RowIncr)
	return
}

func ceilDiv(numerator, denominator int) int {
	if numerator <= 0 {
		return 0
	}
	return (numerator + denominator - 1) / denominator
}

// BytesPerScanline computes ceil(width * samplesPerPixel * bitDepth / 8),
// the byte length of one filtered (but not yet exploded) scanline.
func BytesPerScanline(width, samplesPerPixel, bitDepth int) int {
	bits := width * samplesPerPixel * bitDepth
	return (bits + 7) / 8
}

// PredictedFilteredSize returns the exact number of bytes the Inflater
// must produce: for non-interlaced images, height rows of (1 filter byte +
// scanline); for Adam7, the sum over all seven passes, skipping any pass
// with zero width or height (spec §4.5).
func PredictedFilteredSize(width, height, samplesPerPixel, bitDepth int, adam7 bool) int {
	if !adam7 {
		return height * (1 + BytesPerScanline(width, samplesPerPixel, bitDepth))
	}
	total := 0
	for _, p := range Passes {
		pw, ph := p.PassDimensions(width, height)
		if pw == 0 || ph == 0 {
			continue
		}
		total += ph * (1 + BytesPerScanline(pw, samplesPerPixel, bitDepth))
	}
	return total
}
