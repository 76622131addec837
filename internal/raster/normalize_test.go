package raster

import (
	"testing"

	"github.com/adampollak/pngraster/internal/chunk"
	"github.com/stretchr/testify/assert"
)

func TestReduceSampleTo8ExactSixteenBitValues(t *testing.T) {
	assert.Equal(t, uint8(0), reduceSampleTo8(0x0000, 16, false))
	assert.Equal(t, uint8(255), reduceSampleTo8(0xFFFF, 16, false))
	assert.Equal(t, uint8(128), reduceSampleTo8(0x8080, 16, false))
}

func TestReduceSampleTo8ScalesSubEightBitGray(t *testing.T) {
	// bitDepth 1: 0 -> 0, 1 -> 255.
	assert.Equal(t, uint8(0), reduceSampleTo8(0, 1, true))
	assert.Equal(t, uint8(255), reduceSampleTo8(1, 1, true))
}

func TestNormalizeTruecolorPassesThroughOpaque(t *testing.T) {
	hdr := chunk.Header{Width: 1, Height: 1, BitDepth: 8, ColorType: chunk.ColorTruecolor}
	samples := []byte{10, 20, 30}
	out, err := Normalize(samples, 1, 1, hdr, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 255}, out)
}

func TestNormalizeTruecolorHonorsTransparencyKey(t *testing.T) {
	hdr := chunk.Header{Width: 1, Height: 1, BitDepth: 8, ColorType: chunk.ColorTruecolor}
	samples := []byte{10, 20, 30}
	trns, err := chunk.ParseTRNS([]byte{0, 10, 0, 20, 0, 30}, chunk.ColorTruecolor)
	assert.NoError(t, err)
	out, err := Normalize(samples, 1, 1, hdr, nil, &trns)
	assert.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 0}, out)
}

func TestNormalizeIndexedLooksUpPaletteAndAlpha(t *testing.T) {
	hdr := chunk.Header{Width: 2, Height: 1, BitDepth: 8, ColorType: chunk.ColorIndexed}
	palette := []chunk.RGB{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}}
	trns, err := chunk.ParseTRNS([]byte{0, 128}, chunk.ColorIndexed)
	assert.NoError(t, err)
	out, err := Normalize([]byte{0, 1}, 2, 1, hdr, palette, &trns)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 0, 4, 5, 6, 128}, out)
}

func TestNormalizeIndexedRejectsOutOfRangeIndex(t *testing.T) {
	hdr := chunk.Header{Width: 1, Height: 1, BitDepth: 8, ColorType: chunk.ColorIndexed}
	palette := []chunk.RGB{{R: 1, G: 2, B: 3}}
	_, err := Normalize([]byte{5}, 1, 1, hdr, palette, nil)
	assert.Error(t, err)
}

func TestNormalizeGrayscaleReplicatesChannels(t *testing.T) {
	hdr := chunk.Header{Width: 1, Height: 1, BitDepth: 8, ColorType: chunk.ColorGrayscale}
	out, err := Normalize([]byte{77}, 1, 1, hdr, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []byte{77, 77, 77, 255}, out)
}
