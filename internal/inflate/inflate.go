// Package inflate implements the IdatConcatenator and Inflater stages: it
// joins IDAT payload fragments into one zlib-wrapped DEFLATE blob and
// drives that blob through a zlib-compatible decompressor sized exactly to
// the predicted output length (spec §4.3, §4.4, §4.5).
package inflate

import (
	"bytes"
	"io"

	"github.com/adampollak/pngraster/internal/pngerr"
	"github.com/klauspost/compress/zlib"
)

// Concatenate joins IDAT payload fragments, in file order, into a single
// compressed blob. Chunk boundaries carry no semantic meaning once joined.
func Concatenate(fragments [][]byte) []byte {
	total := 0
	for _, f := range fragments {
		total += len(f)
	}
	out := make([]byte, 0, total)
	for _, f := range fragments {
		out = append(out, f...)
	}
	return out
}

// Inflate decompresses compressed (a zlib-wrapped DEFLATE blob) into
// exactly predictedSize bytes. It treats the klauspost/compress/zlib
// reader as the external DEFLATE dependency spec §6 describes: the whole
// input is fed in, output is read into a buffer pre-sized to the
// predicted length, and the read must exactly exhaust both.
func Inflate(compressed []byte, predictedSize int) ([]byte, error) {
	br := bytes.NewReader(compressed)
	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, pngerr.Wrap(pngerr.DecompressionError, err, "opening zlib stream")
	}
	defer zr.Close()

	out := make([]byte, predictedSize)
	n, err := io.ReadFull(zr, out)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, pngerr.Wrap(pngerr.DecompressionError, err, "inflating idat stream")
	}
	if n != predictedSize {
		return nil, pngerr.New(pngerr.InflateSizeMismatch, "inflated %d bytes, predicted %d", n, predictedSize)
	}

	// Confirm the stream ends exactly here: reading one more byte must report
	// EOF, and no compressed bytes may be left after the zlib stream
	// (avail_out == 0 and avail_in == 0 contract from spec §6).
	var extra [1]byte
	if m, err := zr.Read(extra[:]); m != 0 || (err != nil && err != io.EOF) {
		return nil, pngerr.New(pngerr.InflateSizeMismatch, "compressed stream produced more than the predicted %d bytes", predictedSize)
	}
	if br.Len() != 0 {
		return nil, pngerr.New(pngerr.InflateSizeMismatch, "%d compressed bytes left after the end of the zlib stream", br.Len())
	}

	return out, nil
}

// InflateAll decompresses a zlib-wrapped DEFLATE blob whose output size
// isn't known ahead of time, such as an iCCP profile or a zTXt/iTXt text
// body. It opens the stream the same way Inflate does and is the only other
// call site that constructs a zlib.Reader, so a caller wanting a
// still-compressed ancillary payload never hand-rolls a second
// decompressor.
func InflateAll(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, pngerr.Wrap(pngerr.DecompressionError, err, "opening zlib stream")
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, pngerr.Wrap(pngerr.DecompressionError, err, "inflating ancillary payload")
	}
	return out, nil
}
