// Package chunk implements the PNG chunked-container layer: framing
// (length, type, payload, crc) records off the wire, dispatching each
// payload to a typed parser, and enforcing the chunk-ordering state
// machine PNG requires (IHDR, then optional PLTE, then a contiguous run of
// IDAT, then IEND).
package chunk

// Type is a closed enumeration of the 4-byte chunk type tags this decoder
// recognizes, plus a catch-all for anything else that shows up on the
// wire. Critical vs. ancillary is bit 5 of the first byte of the tag, per
// the PNG spec, and is exposed via Type.Critical rather than re-derived at
// every call site.
type Type struct {
	tag string
}

func (t Type) String() string { return t.tag }

// Critical reports whether the first letter of the tag is uppercase, i.e.
// whether an unrecognized chunk of this type must abort decoding rather
// than be skipped.
func (t Type) Critical() bool {
	return len(t.tag) > 0 && t.tag[0] >= 'A' && t.tag[0] <= 'Z'
}

var (
	Unknown = Type{""}

	IHDR = Type{"IHDR"}
	PLTE = Type{"PLTE"}
	IDAT = Type{"IDAT"}
	IEND = Type{"IEND"}

	CHRM = Type{"cHRM"}
	GAMA = Type{"gAMA"}
	ICCP = Type{"iCCP"}
	SBIT = Type{"sBIT"}
	SRGB = Type{"sRGB"}
	BKGD = Type{"bKGD"}
	HIST = Type{"hIST"}
	TRNS = Type{"tRNS"}
	PHYS = Type{"pHYs"}
	SPLT = Type{"sPLT"}
	TIME = Type{"tIME"}
	ITXT = Type{"iTXt"}
	TEXT = Type{"tEXt"}
	ZTXT = Type{"zTXt"}
)

// known maps every recognized 4-byte tag to its Type. Anything not in this
// table has no typed parser; TypeFromTag returns a Type carrying the raw tag
// string for those, and Type.Critical decides whether it is skipped or fatal.
var known = map[string]Type{
	IHDR.tag: IHDR,
	PLTE.tag: PLTE,
	IDAT.tag: IDAT,
	IEND.tag: IEND,
	CHRM.tag: CHRM,
	GAMA.tag: GAMA,
	ICCP.tag: ICCP,
	SBIT.tag: SBIT,
	SRGB.tag: SRGB,
	BKGD.tag: BKGD,
	HIST.tag: HIST,
	TRNS.tag: TRNS,
	PHYS.tag: PHYS,
	SPLT.tag: SPLT,
	TIME.tag: TIME,
	ITXT.tag: ITXT,
	TEXT.tag: TEXT,
	ZTXT.tag: ZTXT,
}

// TypeFromTag resolves a raw 4-byte tag read off the wire to a known Type,
// or to an unrecognized Type carrying the raw tag (its String method returns
// it) if the tag is not one this decoder has a typed parser for.
func TypeFromTag(tag string) Type {
	if t, ok := known[tag]; ok {
		return t
	}
	return Type{tag}
}

// Raw is one framed-but-undispatched chunk record: the type tag and its
// payload bytes, CRC already checked by the Reader (an ancillary chunk with
// a tolerated CRC mismatch is still returned; see Reader.Next).
type Raw struct {
	Type Type
	Data []byte
}
