package png

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/adampollak/pngraster/internal/raster"
	"github.com/klauspost/compress/zlib"
	"github.com/snksoft/crc"
	"github.com/stretchr/testify/assert"
)

func writeChunk(buf *bytes.Buffer, tag string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.WriteString(tag)
	buf.Write(data)

	h := crc.NewHash(crc.CRC32)
	h.Write([]byte(tag))
	h.Write(data)
	var crcBytes [4]byte
	binary.BigEndian.PutUint32(crcBytes[:], h.CRC32())
	buf.Write(crcBytes[:])
}

func ihdrPayload(width, height uint32, bitDepth, colorType, interlace uint8) []byte {
	buf := make([]byte, 13)
	binary.BigEndian.PutUint32(buf[0:4], width)
	binary.BigEndian.PutUint32(buf[4:8], height)
	buf[8] = bitDepth
	buf[9] = colorType
	buf[10] = 0
	buf[11] = 0
	buf[12] = interlace
	return buf
}

func zlibDeflate(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(raw)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	return buf.Bytes()
}

func buildPNG(t *testing.T, width, height uint32, bitDepth, colorType, interlace uint8, palette []byte, filteredScanlines []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(pngSignature)
	writeChunk(&buf, "IHDR", ihdrPayload(width, height, bitDepth, colorType, interlace))
	if palette != nil {
		writeChunk(&buf, "PLTE", palette)
	}
	writeChunk(&buf, "IDAT", zlibDeflate(t, filteredScanlines))
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

// Scenario A: 1x1 truecolor red pixel.
func TestDecodeSingleRedPixel(t *testing.T) {
	scanline := []byte{0, 255, 0, 0} // filter None, R=255 G=0 B=0
	data := buildPNG(t, 1, 1, 8, chunkColorTruecolor, 0, nil, scanline)

	img, err := Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 1, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.Equal(t, uint8(32), img.BitsPerPixel)
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Bytes)
}

// Scenario B: 2x2 grayscale bitDepth=1.
func TestDecodeGrayscaleOneBit(t *testing.T) {
	scanlines := []byte{
		0, 0b10000000, // filter None, row 0: pixels 1,0
		0, 0b01000000, // filter None, row 1: pixels 0,1
	}
	data := buildPNG(t, 2, 2, 1, chunkColorGrayscale, 0, nil, scanlines)

	img, err := Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, []byte{
		255, 255, 255, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 255, 255, 255, 255,
	}, img.Bytes)
}

// Scenario C: 3x3 indexed with a two-entry palette.
func TestDecodeIndexedThreeByThree(t *testing.T) {
	palette := []byte{10, 20, 30, 40, 50, 60}
	row := []byte{0, 1, 0, 1, 0, 1, 0, 1, 0}
	scanlines := []byte{
		0, row[0], row[1], row[2],
		0, row[3], row[4], row[5],
		0, row[6], row[7], row[8],
	}
	data := buildPNG(t, 3, 3, 8, chunkColorIndexed, 0, palette, scanlines)

	img, err := Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	expected := make([]byte, 0, 36)
	for _, idx := range row {
		if idx == 0 {
			expected = append(expected, 10, 20, 30, 255)
		} else {
			expected = append(expected, 40, 50, 60, 255)
		}
	}
	assert.Equal(t, expected, img.Bytes)
}

// Scenario D: 4x4 truecolor, Adam7, uniform color.
func TestDecodeAdam7UniformColor(t *testing.T) {
	color := []byte{100, 150, 200}
	var buf bytes.Buffer
	for _, p := range raster.Passes {
		pw, ph := p.PassDimensions(4, 4)
		if pw == 0 || ph == 0 {
			continue
		}
		for y := 0; y < ph; y++ {
			buf.WriteByte(0) // filter None
			for x := 0; x < pw; x++ {
				buf.Write(color)
			}
		}
	}

	data := buildPNG(t, 4, 4, 8, chunkColorTruecolor, 1, nil, buf.Bytes())

	img, err := Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	expected := make([]byte, 0, 4*4*4)
	for i := 0; i < 16; i++ {
		expected = append(expected, 100, 150, 200, 255)
	}
	assert.Equal(t, expected, img.Bytes)
}

// Scenario E: CRC flipped on IHDR.
func TestDecodeRejectsFlippedIHDRCrc(t *testing.T) {
	scanline := []byte{0, 255, 0, 0}
	data := buildPNG(t, 1, 1, 8, chunkColorTruecolor, 0, nil, scanline)

	// The IHDR chunk's CRC is the last 4 bytes before the PLTE/IDAT chunk;
	// flip its final byte.
	ihdrCRCOffset := len(pngSignature) + 4 + 4 + 13 + 3
	data[ihdrCRCOffset] ^= 0xFF

	_, err := Decode(bytes.NewReader(data))
	assert.Error(t, err)
	var pngErr *Error
	assert.ErrorAs(t, err, &pngErr)
	assert.Equal(t, CrcMismatch, pngErr.Kind)
}

// Scenario F: bad compressionMethod.
func TestDecodeRejectsBadCompressionMethod(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(pngSignature)
	payload := ihdrPayload(1, 1, 8, chunkColorTruecolor, 0)
	payload[10] = 1 // compressionMethod
	writeChunk(&buf, "IHDR", payload)
	writeChunk(&buf, "IDAT", zlibDeflate(t, []byte{0, 255, 0, 0}))
	writeChunk(&buf, "IEND", nil)

	_, err := Decode(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
	var pngErr *Error
	assert.ErrorAs(t, err, &pngErr)
	assert.Equal(t, InvalidHeader, pngErr.Kind)
}

// Scenario G: 5x1 grayscale, Paeth-filtered row round-trips to the known raw
// scanline.
func TestDecodeGrayscalePaethRow(t *testing.T) {
	raw := []byte{10, 20, 30, 40, 50}
	filtered := make([]byte, len(raw))
	// bpp=1, no previous row, so Paeth predictor degenerates to Sub (a only).
	var prevSample byte
	for i, v := range raw {
		filtered[i] = v - prevSample
		prevSample = v
	}
	scanline := append([]byte{4}, filtered...)
	data := buildPNG(t, 5, 1, 8, chunkColorGrayscale, 0, nil, scanline)

	img, err := Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	expected := make([]byte, 0, 20)
	for _, v := range raw {
		expected = append(expected, v, v, v, 255)
	}
	assert.Equal(t, expected, img.Bytes)
}

func TestDecodeRejectsSignatureMismatch(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	_, err := Decode(bytes.NewReader(data))
	assert.Error(t, err)
	var pngErr *Error
	assert.ErrorAs(t, err, &pngErr)
	assert.Equal(t, SignatureMismatch, pngErr.Kind)
}

func TestDecodeIgnoresTrailingGarbageAfterIEND(t *testing.T) {
	scanline := []byte{0, 255, 0, 0}
	data := buildPNG(t, 1, 1, 8, chunkColorTruecolor, 0, nil, scanline)
	data = append(data, []byte("trailing garbage")...)

	img, err := Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Bytes)
}

func TestDecodeRejectsStreamTruncatedBeforeIEND(t *testing.T) {
	scanline := []byte{0, 255, 0, 0}
	data := buildPNG(t, 1, 1, 8, chunkColorTruecolor, 0, nil, scanline)

	// buildPNG always appends IEND last; drop it so the stream ends right
	// after the final IDAT's CRC.
	iendLen := 4 + 4 + 0 + 4 // length + type + empty payload + crc
	truncated := data[:len(data)-iendLen]

	_, err := Decode(bytes.NewReader(truncated))
	assert.Error(t, err)
	var pngErr *Error
	assert.ErrorAs(t, err, &pngErr)
	assert.Equal(t, BadOrdering, pngErr.Kind)
}

func TestDecodeRejectsZeroLengthIDAT(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(pngSignature)
	writeChunk(&buf, "IHDR", ihdrPayload(1, 1, 8, chunkColorTruecolor, 0))
	writeChunk(&buf, "IDAT", nil)
	writeChunk(&buf, "IEND", nil)

	_, err := Decode(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}

func TestDecodeMaxSizePalette(t *testing.T) {
	palette := make([]byte, 256*3)
	for i := 0; i < 256; i++ {
		palette[i*3] = byte(i)
	}
	scanline := []byte{0, 0}
	data := buildPNG(t, 1, 1, 8, chunkColorIndexed, 0, palette, scanline)

	img, err := Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 255}, img.Bytes)
}

func TestDecodeSixteenBitTruecolorAlpha(t *testing.T) {
	// One pixel, 16-bit samples: R=0xFFFF G=0x0000 B=0x8080 A=0xFFFF.
	scanline := []byte{0, 0xFF, 0xFF, 0x00, 0x00, 0x80, 0x80, 0xFF, 0xFF}
	data := buildPNG(t, 1, 1, 16, chunkColorTruecolorAlpha, 0, nil, scanline)

	img, err := Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 128, 255}, img.Bytes)
}

const (
	chunkColorGrayscale      = 0
	chunkColorTruecolor      = 2
	chunkColorIndexed        = 3
	chunkColorTruecolorAlpha = 6
)
