package chunk

import (
	"encoding/binary"

	"github.com/adampollak/pngraster/internal/pngerr"
)

// cursor is a bounds-checked reader over a single chunk's payload bytes. It
// exists so every typed parser enforces the same rule from spec §4.1: a
// parser must never consume more than the chunk's declared length, and
// must report (via requireExhausted) if it left bytes unconsumed.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) u8() (byte, error) {
	if c.pos+1 > len(c.data) {
		return 0, pngerr.New(pngerr.PayloadUnderrun, "expected 1 more byte, have %d", len(c.data)-c.pos)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// u16be and u32be route through encoding/binary.BigEndian, the same
// primitive internal/chunk/reader.go uses for the chunk length and CRC
// fields on the wire, so the whole package has a single big-endian
// assembly routine rather than two independent ones.
func (c *cursor) u16be() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, pngerr.New(pngerr.PayloadUnderrun, "expected 2 more bytes, have %d", len(c.data)-c.pos)
	}
	v := binary.BigEndian.Uint16(c.data[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

func (c *cursor) u32be() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, pngerr.New(pngerr.PayloadUnderrun, "expected 4 more bytes, have %d", len(c.data)-c.pos)
	}
	v := binary.BigEndian.Uint32(c.data[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, pngerr.New(pngerr.PayloadUnderrun, "expected %d more bytes, have %d", n, len(c.data)-c.pos)
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// rest returns every byte not yet consumed, without advancing pos.
func (c *cursor) rest() []byte {
	return c.data[c.pos:]
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

// requireExhausted reports PayloadOverrun if the parser did not consume the
// entire payload.
func (c *cursor) requireExhausted() error {
	if c.remaining() != 0 {
		return pngerr.New(pngerr.PayloadOverrun, "%d unread bytes left in payload", c.remaining())
	}
	return nil
}
