package chunk

import (
	"encoding/binary"

	"github.com/adampollak/pngraster/internal/inflate"
	"github.com/adampollak/pngraster/internal/pngerr"
)

// The ancillary chunk types below are parsed for round-trip/diagnostic
// purposes only (spec §1, §3): decode failures here are reported as
// warnings, not fatal errors, and the caller decides whether to log them
// (see internal/pnglog) or, in strict mode, abort the decode. Field layouts are grounded on
// original_source/PNGParser.h's ChunkData<ChunkType> specializations.

// Chroma is the cHRM chunk: the CIE xy chromaticity of the white point and
// the three primaries, each coordinate scaled by 100000 in the file.
type Chroma struct {
	WhiteX, WhiteY uint32
	RedX, RedY     uint32
	GreenX, GreenY uint32
	BlueX, BlueY   uint32
}

// Chromaticities converts the scaled integer fields to their true
// 0.0–1.0-ish float values.
func (c Chroma) Chromaticities() (white, red, green, blue [2]float64) {
	scale := func(x, y uint32) [2]float64 { return [2]float64{float64(x) / 100000, float64(y) / 100000} }
	return scale(c.WhiteX, c.WhiteY), scale(c.RedX, c.RedY), scale(c.GreenX, c.GreenY), scale(c.BlueX, c.BlueY)
}

func ParseChroma(data []byte) (Chroma, error) {
	c := newCursor(data)
	var out Chroma
	fields := []*uint32{&out.WhiteX, &out.WhiteY, &out.RedX, &out.RedY, &out.GreenX, &out.GreenY, &out.BlueX, &out.BlueY}
	for _, f := range fields {
		v, err := c.u32be()
		if err != nil {
			return Chroma{}, err
		}
		*f = v
	}
	return out, c.requireExhausted()
}

// Gamma is the gAMA chunk: image gamma scaled by 100000.
type Gamma struct {
	Scaled uint32
}

func (g Gamma) Value() float64 { return float64(g.Scaled) / 100000 }

func ParseGamma(data []byte) (Gamma, error) {
	c := newCursor(data)
	v, err := c.u32be()
	if err != nil {
		return Gamma{}, err
	}
	return Gamma{Scaled: v}, c.requireExhausted()
}

// ICCProfile is the iCCP chunk: a null-terminated profile name followed by
// a one-byte compression method and the zlib-compressed profile itself
// (left compressed here; call Profile to inflate it).
type ICCProfile struct {
	Name              string
	CompressionMethod uint8
	CompressedProfile []byte
}

func ParseICCP(data []byte) (ICCProfile, error) {
	nul := indexByte(data, 0)
	if nul < 0 || nul > 79 {
		return ICCProfile{}, pngerr.New(pngerr.InvalidHeader, "iCCP: missing or oversized profile name terminator")
	}
	c := newCursor(data[nul+1:])
	method, err := c.u8()
	if err != nil {
		return ICCProfile{}, err
	}
	return ICCProfile{
		Name:              string(data[:nul]),
		CompressionMethod: method,
		CompressedProfile: append([]byte(nil), c.rest()...),
	}, nil
}

// Profile inflates the compressed profile bytes through the same Inflater
// component the IDAT stream uses.
func (p ICCProfile) Profile() ([]byte, error) {
	return inflate.InflateAll(p.CompressedProfile)
}

// SignificantBits is the sBIT chunk: 1-4 significant-bit counts depending
// on color type.
type SignificantBits struct {
	Values []uint8
}

func ParseSBIT(data []byte) (SignificantBits, error) {
	if len(data) < 1 || len(data) > 4 {
		return SignificantBits{}, pngerr.New(pngerr.InvalidHeader, "sBIT length %d out of range", len(data))
	}
	return SignificantBits{Values: append([]uint8(nil), data...)}, nil
}

// RenderingIntent is the sRGB chunk's single-byte payload.
type RenderingIntent struct {
	Intent uint8
}

func ParseSRGB(data []byte) (RenderingIntent, error) {
	c := newCursor(data)
	v, err := c.u8()
	if err != nil {
		return RenderingIntent{}, err
	}
	return RenderingIntent{Intent: v}, c.requireExhausted()
}

// Background is the bKGD chunk. Its shape depends on the image's color
// type, so the raw bytes are kept and PaletteIndex/Gray/RGB accessors interpret
// them according to the header the caller already has.
type Background struct {
	Raw []byte
}

func ParseBKGD(data []byte) (Background, error) {
	return Background{Raw: append([]byte(nil), data...)}, nil
}

func (b Background) PaletteIndex() uint8 { return b.Raw[0] }
func (b Background) Gray() uint16        { return binary.BigEndian.Uint16(b.Raw[0:2]) }
func (b Background) RGB() (r, g, bch uint16) {
	return binary.BigEndian.Uint16(b.Raw[0:2]),
		binary.BigEndian.Uint16(b.Raw[2:4]),
		binary.BigEndian.Uint16(b.Raw[4:6])
}

// Histogram is the hIST chunk: one frequency count per palette entry.
type Histogram struct {
	Frequencies []uint16
}

func ParseHIST(data []byte) (Histogram, error) {
	if len(data)%2 != 0 {
		return Histogram{}, pngerr.New(pngerr.InvalidHeader, "hIST length %d not a multiple of 2", len(data))
	}
	n := len(data) / 2
	freqs := make([]uint16, n)
	for i := 0; i < n; i++ {
		freqs[i] = binary.BigEndian.Uint16(data[i*2 : i*2+2])
	}
	return Histogram{Frequencies: freqs}, nil
}

// Transparency is the tRNS chunk. For indexed images it's a per-palette
// alpha table; for grayscale/truecolor it's a single-color transparency
// key. Interpretation depends on the header's color type (see
// internal/raster/normalize.go).
type Transparency struct {
	Raw []byte
}

// ParseTRNS validates the payload length against the shape colorType
// requires (2 bytes for grayscale, 6 for truecolor, at most 256 for
// indexed, disallowed entirely for the two alpha color types) before
// storing it, so a malformed tRNS chunk becomes an ordinary ancillary
// parse failure (downgraded to a warning by Dispatch) instead of an
// index-out-of-range panic the first time a caller reads it back.
func ParseTRNS(data []byte, colorType uint8) (Transparency, error) {
	switch colorType {
	case ColorGrayscale:
		if len(data) != 2 {
			return Transparency{}, pngerr.New(pngerr.InvalidHeader, "tRNS length %d, grayscale requires 2", len(data))
		}
	case ColorTruecolor:
		if len(data) != 6 {
			return Transparency{}, pngerr.New(pngerr.InvalidHeader, "tRNS length %d, truecolor requires 6", len(data))
		}
	case ColorIndexed:
		if len(data) > 256 {
			return Transparency{}, pngerr.New(pngerr.InvalidHeader, "tRNS length %d exceeds palette maximum", len(data))
		}
	default:
		return Transparency{}, pngerr.New(pngerr.InvalidHeader, "tRNS not allowed for color type %d", colorType)
	}
	return Transparency{Raw: append([]byte(nil), data...)}, nil
}

// PaletteAlphas interprets the payload as an indexed-image alpha table.
func (t Transparency) PaletteAlphas() []uint8 { return t.Raw }

// GraySample interprets the payload as a grayscale transparency key. Callers
// go through ParseTRNS's length validation, so Raw is always long enough
// once a Transparency has been constructed via the package's parser.
func (t Transparency) GraySample() uint16 { return binary.BigEndian.Uint16(t.Raw[0:2]) }

// TruecolorSample interprets the payload as an RGB transparency key.
func (t Transparency) TruecolorSample() (r, g, b uint16) {
	return binary.BigEndian.Uint16(t.Raw[0:2]),
		binary.BigEndian.Uint16(t.Raw[2:4]),
		binary.BigEndian.Uint16(t.Raw[4:6])
}

// PhysicalDimensions is the pHYs chunk: pixels-per-unit in each axis and a
// unit specifier (0 = unknown, 1 = meter).
type PhysicalDimensions struct {
	PixelsPerUnitX, PixelsPerUnitY uint32
	UnitSpecifier                  uint8
}

func ParsePHYS(data []byte) (PhysicalDimensions, error) {
	c := newCursor(data)
	x, err := c.u32be()
	if err != nil {
		return PhysicalDimensions{}, err
	}
	y, err := c.u32be()
	if err != nil {
		return PhysicalDimensions{}, err
	}
	u, err := c.u8()
	if err != nil {
		return PhysicalDimensions{}, err
	}
	return PhysicalDimensions{PixelsPerUnitX: x, PixelsPerUnitY: y, UnitSpecifier: u}, c.requireExhausted()
}

// SuggestedPaletteEntry is one entry of an sPLT chunk.
type SuggestedPaletteEntry struct {
	R, G, B, A uint16
	Frequency  uint16
}

// SuggestedPalette is the sPLT chunk: a named palette suggestion at a
// given sample depth (8 or 16 bits per channel).
type SuggestedPalette struct {
	Name        string
	SampleDepth uint8
	Entries     []SuggestedPaletteEntry
}

func ParseSPLT(data []byte) (SuggestedPalette, error) {
	nul := indexByte(data, 0)
	if nul < 0 {
		return SuggestedPalette{}, pngerr.New(pngerr.InvalidHeader, "sPLT: missing name terminator")
	}
	c := newCursor(data[nul+1:])
	depth, err := c.u8()
	if err != nil {
		return SuggestedPalette{}, err
	}
	var entrySize int
	switch depth {
	case 8:
		entrySize = 6
	case 16:
		entrySize = 10
	default:
		return SuggestedPalette{}, pngerr.New(pngerr.InvalidHeader, "sPLT: sample depth %d invalid", depth)
	}
	if c.remaining()%entrySize != 0 {
		return SuggestedPalette{}, pngerr.New(pngerr.PayloadUnderrun, "sPLT: %d remaining bytes not a multiple of entry size %d", c.remaining(), entrySize)
	}
	n := c.remaining() / entrySize
	entries := make([]SuggestedPaletteEntry, n)
	for i := range entries {
		if depth == 8 {
			r, _ := c.u8()
			g, _ := c.u8()
			b, _ := c.u8()
			a, _ := c.u8()
			freq, err := c.u16be()
			if err != nil {
				return SuggestedPalette{}, err
			}
			entries[i] = SuggestedPaletteEntry{uint16(r), uint16(g), uint16(b), uint16(a), freq}
		} else {
			r, _ := c.u16be()
			g, _ := c.u16be()
			b, _ := c.u16be()
			a, _ := c.u16be()
			freq, err := c.u16be()
			if err != nil {
				return SuggestedPalette{}, err
			}
			entries[i] = SuggestedPaletteEntry{r, g, b, a, freq}
		}
	}
	return SuggestedPalette{Name: string(data[:nul]), SampleDepth: depth, Entries: entries}, nil
}

// Time is the tIME chunk: last modification time in UTC.
type Time struct {
	Year                 uint16
	Month, Day           uint8
	Hour, Minute, Second uint8
}

func ParseTIME(data []byte) (Time, error) {
	c := newCursor(data)
	year, err := c.u16be()
	if err != nil {
		return Time{}, err
	}
	month, err := c.u8()
	if err != nil {
		return Time{}, err
	}
	day, err := c.u8()
	if err != nil {
		return Time{}, err
	}
	hour, err := c.u8()
	if err != nil {
		return Time{}, err
	}
	minute, err := c.u8()
	if err != nil {
		return Time{}, err
	}
	second, err := c.u8()
	if err != nil {
		return Time{}, err
	}
	return Time{year, month, day, hour, minute, second}, c.requireExhausted()
}

// TextEntry is the tEXt chunk: an uncompressed Latin-1 keyword/text pair.
type TextEntry struct {
	Keyword, Text string
}

func ParseTEXT(data []byte) (TextEntry, error) {
	nul := indexByte(data, 0)
	if nul < 0 {
		return TextEntry{}, pngerr.New(pngerr.InvalidHeader, "tEXt: missing keyword terminator")
	}
	return TextEntry{Keyword: string(data[:nul]), Text: string(data[nul+1:])}, nil
}

// CompressedTextEntry is the zTXt chunk: a keyword and a zlib-compressed
// text body. The compressed body is left compressed here; call Text to
// inflate it.
type CompressedTextEntry struct {
	Keyword           string
	CompressionMethod uint8
	CompressedText    []byte
}

func ParseZTXT(data []byte) (CompressedTextEntry, error) {
	nul := indexByte(data, 0)
	if nul < 0 {
		return CompressedTextEntry{}, pngerr.New(pngerr.InvalidHeader, "zTXt: missing keyword terminator")
	}
	c := newCursor(data[nul+1:])
	method, err := c.u8()
	if err != nil {
		return CompressedTextEntry{}, err
	}
	return CompressedTextEntry{
		Keyword:           string(data[:nul]),
		CompressionMethod: method,
		CompressedText:    append([]byte(nil), c.rest()...),
	}, nil
}

// Text inflates the compressed body through the same Inflater component
// the IDAT stream uses and returns it as Latin-1 text.
func (e CompressedTextEntry) Text() (string, error) {
	raw, err := inflate.InflateAll(e.CompressedText)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// InternationalTextEntry is the iTXt chunk: a keyword, an optional
// compression flag/method, a language tag, a translated keyword, and the
// text itself (compressed or not per the flag).
type InternationalTextEntry struct {
	Keyword           string
	Compressed        bool
	CompressionMethod uint8
	LanguageTag       string
	TranslatedKeyword string
	Text              []byte
}

func ParseITXT(data []byte) (InternationalTextEntry, error) {
	rest := data
	nul := indexByte(rest, 0)
	if nul < 0 {
		return InternationalTextEntry{}, pngerr.New(pngerr.InvalidHeader, "iTXt: missing keyword terminator")
	}
	keyword := string(rest[:nul])
	rest = rest[nul+1:]

	c := newCursor(rest)
	compressedFlag, err := c.u8()
	if err != nil {
		return InternationalTextEntry{}, err
	}
	method, err := c.u8()
	if err != nil {
		return InternationalTextEntry{}, err
	}
	rest = c.rest()

	nul = indexByte(rest, 0)
	if nul < 0 {
		return InternationalTextEntry{}, pngerr.New(pngerr.InvalidHeader, "iTXt: missing language tag terminator")
	}
	lang := string(rest[:nul])
	rest = rest[nul+1:]

	nul = indexByte(rest, 0)
	if nul < 0 {
		return InternationalTextEntry{}, pngerr.New(pngerr.InvalidHeader, "iTXt: missing translated keyword terminator")
	}
	translated := string(rest[:nul])
	text := rest[nul+1:]

	return InternationalTextEntry{
		Keyword:           keyword,
		Compressed:        compressedFlag != 0,
		CompressionMethod: method,
		LanguageTag:       lang,
		TranslatedKeyword: translated,
		Text:              append([]byte(nil), text...),
	}, nil
}

// DecodedText returns the entry's UTF-8 text, inflating it through the
// shared Inflater component first when Compressed is set.
func (e InternationalTextEntry) DecodedText() ([]byte, error) {
	if !e.Compressed {
		return e.Text, nil
	}
	return inflate.InflateAll(e.Text)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
