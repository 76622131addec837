package chunk

import (
	"encoding/binary"
	"io"

	"github.com/adampollak/pngraster/internal/pngerr"
	"github.com/snksoft/crc"
)

// maxChunkLength bounds a single chunk's payload length. The PNG spec caps
// chunk length at 2^31-1; anything larger is rejected outright rather than
// attempted, since it can never be a legitimate chunk.
const maxChunkLength = 0x7fffffff

// Reader frames chunk records off an underlying byte stream: a 4-byte
// big-endian length, a 4-byte type tag, that many payload bytes, and a
// 4-byte CRC-32 over the tag+payload.
type Reader struct {
	r   io.Reader
	tmp [8]byte
}

// NewReader wraps r, which must already be positioned just past the PNG
// signature.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next reads one chunk record and validates its CRC. strict controls what
// happens on an ancillary-chunk CRC mismatch: when strict is false the
// mismatch is tolerated (caller should log a warning) and the chunk's data
// is still returned; when strict is true, or the chunk is critical, a
// CrcMismatch error is returned instead.
func (cr *Reader) Next(strict bool) (Raw, bool, error) {
	n, err := io.ReadFull(cr.r, cr.tmp[:8])
	if err != nil {
		if err == io.EOF && n == 0 {
			return Raw{}, false, io.EOF
		}
		return Raw{}, false, pngerr.Wrap(pngerr.ShortRead, err, "reading chunk length/type")
	}
	length := binary.BigEndian.Uint32(cr.tmp[0:4])
	if length > maxChunkLength {
		return Raw{}, false, pngerr.New(pngerr.PayloadOverrun, "chunk length %d exceeds maximum", length)
	}
	tag := string(cr.tmp[4:8])
	typ := TypeFromTag(tag)

	data := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(cr.r, data); err != nil {
			return Raw{}, false, pngerr.Wrap(pngerr.ShortRead, err, "reading %s payload", tag)
		}
	}

	var stored [4]byte
	if _, err := io.ReadFull(cr.r, stored[:]); err != nil {
		return Raw{}, false, pngerr.Wrap(pngerr.ShortRead, err, "reading %s crc", tag)
	}
	storedCRC := binary.BigEndian.Uint32(stored[:])

	h := crc.NewHash(crc.CRC32)
	h.Write(cr.tmp[4:8])
	h.Write(data)
	computed := h.CRC32()

	if computed != storedCRC {
		mismatch := pngerr.New(pngerr.CrcMismatch, "chunk %s: stored crc %08x, computed %08x", tag, storedCRC, computed)
		if strict || typ.Critical() {
			return Raw{}, false, mismatch
		}
		return Raw{Type: typ, Data: data}, false, nil
	}

	return Raw{Type: typ, Data: data}, true, nil
}
