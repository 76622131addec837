package chunk

import "github.com/adampollak/pngraster/internal/pngerr"

// State is one stage of the chunk-ordering state machine spec §4.2
// requires: IHDR, then an optional PLTE (required for indexed images), then a
// single contiguous run of IDAT chunks, then IEND. The original this
// decoder is grounded on had this machine present but commented out
// (spec §9); here it is load-bearing.
type State int

const (
	ExpectIHDR State = iota
	BeforePLTE
	BeforeIDAT
	InIDAT
	AfterIDAT
	Terminal
)

// StateMachine tracks chunk-ordering progress across a single decode.
type StateMachine struct {
	state       State
	haveIHDR    bool
	havePalette bool
	colorType   uint8
}

// NewStateMachine returns a machine ready to see IHDR first.
func NewStateMachine() *StateMachine {
	return &StateMachine{state: ExpectIHDR}
}

// Done reports whether IEND has been seen; the reader should stop pulling
// further chunks once this is true (trailing bytes are ignored per spec §8
// boundary cases).
func (sm *StateMachine) Done() bool {
	return sm.state == Terminal
}

func (sm *StateMachine) advance(t Type) error {
	if sm.state == InIDAT && t != IDAT {
		sm.state = AfterIDAT
	}

	switch t {
	case IHDR:
		if sm.haveIHDR {
			return pngerr.New(pngerr.BadOrdering, "duplicate IHDR")
		}
		if sm.state != ExpectIHDR {
			return pngerr.New(pngerr.BadOrdering, "IHDR must be the first chunk")
		}
		sm.haveIHDR = true
		sm.state = BeforePLTE
		return nil

	case PLTE:
		if !sm.haveIHDR {
			return pngerr.New(pngerr.BadOrdering, "MissingIHDR before PLTE")
		}
		if sm.state == InIDAT || sm.state == AfterIDAT || sm.state == Terminal {
			return pngerr.New(pngerr.BadOrdering, "PaletteAfterIDAT")
		}
		if sm.state != BeforePLTE {
			return pngerr.New(pngerr.BadOrdering, "PLTE out of order")
		}
		sm.havePalette = true
		sm.state = BeforeIDAT
		return nil

	case IDAT:
		if !sm.haveIHDR {
			return pngerr.New(pngerr.BadOrdering, "MissingIHDR before IDAT")
		}
		if sm.state == AfterIDAT || sm.state == Terminal {
			return pngerr.New(pngerr.BadOrdering, "IdatGap: IDAT chunks are not contiguous")
		}
		if sm.colorType == ColorIndexed && !sm.havePalette {
			return pngerr.New(pngerr.BadOrdering, "indexed color type requires PLTE before IDAT")
		}
		sm.state = InIDAT
		return nil

	case IEND:
		if !sm.haveIHDR {
			return pngerr.New(pngerr.BadOrdering, "MissingIHDR before IEND")
		}
		if sm.state != AfterIDAT {
			return pngerr.New(pngerr.BadOrdering, "MissingIDAT: no IDAT chunks before IEND")
		}
		sm.state = Terminal
		return nil

	default:
		if !sm.haveIHDR {
			return pngerr.New(pngerr.BadOrdering, "chunk %s before IHDR", t)
		}
		return nil
	}
}

// Result is what Dispatch reports for one chunk: at most one of Warn (a
// non-fatal, loggable problem — an ancillary chunk that failed to parse) or
// Err (a fatal problem) is set. A tolerated CRC mismatch is reported by
// Reader.Next, not here.
type Result struct {
	Warn error
	Err  error
}

// Dispatch advances the ordering state machine for raw.Type, then, for
// recognized types, parses the payload into store. Critical-chunk parse
// failures are fatal (Result.Err); ancillary-chunk parse failures are
// downgraded to Result.Warn so the caller can log and continue without
// corrupting decoded state (spec §4.12).
func Dispatch(store *Store, sm *StateMachine, raw Raw) Result {
	if sm.Done() {
		// Trailing chunks after IEND are ignored (spec §8 boundary case).
		return Result{}
	}
	if err := sm.advance(raw.Type); err != nil {
		return Result{Err: err}
	}
	if !isRecognized(raw.Type) {
		if raw.Type.Critical() {
			return Result{Err: pngerr.New(pngerr.UnknownCriticalChunk, "unknown critical chunk %s", raw.Type)}
		}
		return Result{}
	}

	switch raw.Type {
	case IHDR:
		hdr, err := ParseIHDR(raw.Data)
		if err != nil {
			return Result{Err: err}
		}
		store.IHDR = &hdr
		sm.colorType = hdr.ColorType
		return Result{}

	case PLTE:
		entries, err := ParsePLTE(raw.Data)
		if err != nil {
			return Result{Err: err}
		}
		store.Palette = entries
		return Result{}

	case IDAT:
		store.AppendIDAT(raw.Data)
		return Result{}

	case IEND:
		if len(raw.Data) != 0 {
			return Result{Err: pngerr.New(pngerr.PayloadOverrun, "IEND must be empty, got %d bytes", len(raw.Data))}
		}
		return Result{}

	case CHRM:
		v, err := ParseChroma(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.Chroma = &v
	case GAMA:
		v, err := ParseGamma(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.Gamma = &v
	case ICCP:
		v, err := ParseICCP(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.ICCProfile = &v
	case SBIT:
		v, err := ParseSBIT(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.SBIT = &v
	case SRGB:
		v, err := ParseSRGB(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.SRGB = &v
	case BKGD:
		v, err := ParseBKGD(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.Background = &v
	case HIST:
		v, err := ParseHIST(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.Histogram = &v
	case TRNS:
		v, err := ParseTRNS(raw.Data, sm.colorType)
		if err != nil {
			return Result{Warn: err}
		}
		store.TRNS = &v
	case PHYS:
		v, err := ParsePHYS(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.PhysicalDim = &v
	case TIME:
		v, err := ParseTIME(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.Time = &v
	case SPLT:
		v, err := ParseSPLT(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.SuggestedPalettes = append(store.SuggestedPalettes, v)
	case TEXT:
		v, err := ParseTEXT(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.TextEntries = append(store.TextEntries, v)
	case ZTXT:
		v, err := ParseZTXT(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.CompressedText = append(store.CompressedText, v)
	case ITXT:
		v, err := ParseITXT(raw.Data)
		if err != nil {
			return Result{Warn: err}
		}
		store.InternationalText = append(store.InternationalText, v)
	}
	return Result{}
}

func isRecognized(t Type) bool {
	_, ok := known[t.tag]
	return ok
}
