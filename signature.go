package png

import (
	"bytes"
	"io"

	"github.com/adampollak/pngraster/internal/pngerr"
)

// pngSignature is the 8-byte magic every PNG datastream must begin with.
var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// verifySignature reads and checks the leading magic. It is the only stage
// that runs before any chunk framing exists.
func verifySignature(r io.Reader) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return pngerr.Wrap(pngerr.ShortRead, err, "stream ended before signature")
		}
		return pngerr.Wrap(pngerr.ShortRead, err, "reading signature")
	}
	if !bytes.Equal(buf[:], pngSignature) {
		return pngerr.New(pngerr.SignatureMismatch, "not a PNG file")
	}
	return nil
}
