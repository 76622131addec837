// Package png decodes PNG datastreams into a canonical RGBA8 raster. Decode
// is the single fallible entry point; every failure surfaces as an *Error
// carrying a Kind from the taxonomy in errors.go so callers can branch on
// errors.As without string matching.
package png

import (
	"io"

	"github.com/adampollak/pngraster/internal/chunk"
	"github.com/adampollak/pngraster/internal/inflate"
	"github.com/adampollak/pngraster/internal/pnglog"
	"github.com/adampollak/pngraster/internal/raster"
)

// Options configures a decode. The zero value is the tolerant default: an
// ancillary chunk with a bad CRC or a payload that fails to parse is logged
// and skipped rather than treated as fatal (spec §4.12).
type Options struct {
	// Strict, when true, escalates an ancillary chunk's CRC mismatch or
	// parse failure to a fatal error instead of a logged warning.
	Strict bool
}

// Decode reads a full PNG datastream from r and returns its pixel data as
// canonical RGBA8. It discards ancillary metadata; use DecodeWithMetadata to
// keep it.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := decode(r, Options{})
	return img, err
}

// DecodeStrict is Decode with Options{Strict: true}.
func DecodeStrict(r io.Reader) (*Image, error) {
	img, _, err := decode(r, Options{Strict: true})
	return img, err
}

// DecodeWithMetadata is Decode plus the ancillary chunks recognized along
// the way (spec §1's "may be parsed for round-trip", SPEC_FULL supplemental
// features).
func DecodeWithMetadata(r io.Reader, opts Options) (*Image, *Metadata, error) {
	return decode(r, opts)
}

func decode(r io.Reader, opts Options) (*Image, *Metadata, error) {
	if err := verifySignature(r); err != nil {
		return nil, nil, err
	}

	store := chunk.NewStore()
	sm := chunk.NewStateMachine()
	cr := chunk.NewReader(r)

	for {
		raw, crcOK, err := cr.Next(opts.Strict)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if !crcOK {
			pnglog.Warn(raw.Type.String(), New(CrcMismatch, "tolerated ancillary crc mismatch"))
		}

		result := chunk.Dispatch(store, sm, raw)
		if result.Err != nil {
			return nil, nil, result.Err
		}
		if result.Warn != nil {
			if opts.Strict {
				return nil, nil, result.Warn
			}
			pnglog.Warn(raw.Type.String(), result.Warn)
		}
		if sm.Done() {
			break
		}
	}

	if !sm.Done() {
		return nil, nil, New(BadOrdering, "stream ended before IEND")
	}

	if store.IHDR == nil {
		return nil, nil, New(BadOrdering, "no IHDR chunk found")
	}
	hdr := *store.IHDR
	if hdr.ColorType == chunk.ColorIndexed && store.Palette == nil {
		return nil, nil, New(BadOrdering, "indexed color type requires a PLTE chunk")
	}

	compressed := inflate.Concatenate(store.IDAT)
	adam7 := hdr.InterlaceMethod == 1
	predicted := raster.PredictedFilteredSize(int(hdr.Width), int(hdr.Height), hdr.SamplesPerPixel(), int(hdr.BitDepth), adam7)

	filtered, err := inflate.Inflate(compressed, predicted)
	if err != nil {
		return nil, nil, err
	}

	images, err := raster.SplitAll(filtered, int(hdr.Width), int(hdr.Height), hdr.SamplesPerPixel(), int(hdr.BitDepth), adam7)
	if err != nil {
		return nil, nil, err
	}

	for _, im := range images {
		if im == nil {
			continue
		}
		if err := raster.Defilter(im); err != nil {
			return nil, nil, err
		}
	}
	for i, im := range images {
		if im == nil {
			continue
		}
		images[i] = raster.Explode(im)
	}

	bytesPerSample := raster.BytesPerSample(int(hdr.BitDepth))
	assembled := raster.Assemble(images, int(hdr.Width), int(hdr.Height), hdr.SamplesPerPixel(), bytesPerSample)

	pixels, err := raster.Normalize(assembled, int(hdr.Width), int(hdr.Height), hdr, store.Palette, store.TRNS)
	if err != nil {
		return nil, nil, err
	}

	out := &Image{
		Width:        int(hdr.Width),
		Height:       int(hdr.Height),
		Pitch:        int(hdr.Width) * 4,
		BitsPerPixel: 32,
		Bytes:        pixels,
	}
	return out, metadataFromStore(store), nil
}
