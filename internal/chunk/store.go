package chunk

// Store accumulates parsed chunk payloads with the cardinality the PNG
// spec gives each type: IHDR and PLTE are at-most-one, IDAT is an ordered
// sequence, and each ancillary type is at-most-one except sPLT/tEXt/zTXt/
// iTXt which may repeat. Grounded on spec §9's "Container for decoded
// chunks" design note: a struct with one field per known type, rather than
// a heterogeneous map, since the set of types is closed.
type Store struct {
	IHDR    *Header
	Palette []RGB

	// IDAT holds the concatenation-ready payload fragments in file order.
	IDAT [][]byte

	Chroma      *Chroma
	Gamma       *Gamma
	ICCProfile  *ICCProfile
	SBIT        *SignificantBits
	SRGB        *RenderingIntent
	Background  *Background
	Histogram   *Histogram
	TRNS        *Transparency
	PhysicalDim *PhysicalDimensions
	Time        *Time

	SuggestedPalettes []SuggestedPalette
	TextEntries       []TextEntry
	CompressedText    []CompressedTextEntry
	InternationalText []InternationalTextEntry
}

// NewStore returns an empty decoded-chunk container.
func NewStore() *Store {
	return &Store{}
}

// AppendIDAT records one IDAT payload fragment in file order.
func (s *Store) AppendIDAT(data []byte) {
	s.IDAT = append(s.IDAT, data)
}
