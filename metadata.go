package png

import "github.com/adampollak/pngraster/internal/chunk"

// Metadata exposes the ancillary chunks decoded alongside an Image (spec
// §1: "may be parsed for round-trip"; SPEC_FULL supplemental features).
// None of these fields gate or influence Image.Bytes except Transparency,
// which is already load-bearing for indexed images per spec §4.10 and is
// additionally applied to grayscale/truecolor transparency keys here.
type Metadata struct {
	Chroma            *chunk.Chroma
	Gamma             *chunk.Gamma
	ICCProfile        *chunk.ICCProfile
	SignificantBits   *chunk.SignificantBits
	RenderingIntent   *chunk.RenderingIntent
	Background        *chunk.Background
	Histogram         *chunk.Histogram
	Transparency      *chunk.Transparency
	PhysicalDim       *chunk.PhysicalDimensions
	Time              *chunk.Time
	SuggestedPalettes []chunk.SuggestedPalette
	TextEntries       []chunk.TextEntry
	CompressedText    []chunk.CompressedTextEntry
	InternationalText []chunk.InternationalTextEntry
}

func metadataFromStore(s *chunk.Store) *Metadata {
	return &Metadata{
		Chroma:            s.Chroma,
		Gamma:             s.Gamma,
		ICCProfile:        s.ICCProfile,
		SignificantBits:   s.SBIT,
		RenderingIntent:   s.SRGB,
		Background:        s.Background,
		Histogram:         s.Histogram,
		Transparency:      s.TRNS,
		PhysicalDim:       s.PhysicalDim,
		Time:              s.Time,
		SuggestedPalettes: s.SuggestedPalettes,
		TextEntries:       s.TextEntries,
		CompressedText:    s.CompressedText,
		InternationalText: s.InternationalText,
	}
}
