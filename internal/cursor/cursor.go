// Package cursor provides a bounds-checked view over a byte buffer for
// the block, record, and pdp11 decoders to read and write through.
package cursor

import (
	"encoding/binary"

	"github.com/sandialabs/camio/errs"
)

// Cursor wraps a byte slice and validates every access against its
// length before touching memory. It never silently truncates or wraps.
type Cursor struct {
	buf []byte
}

// New wraps buf in a Cursor. The Cursor does not copy buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Bytes returns the underlying buffer.
func (c *Cursor) Bytes() []byte { return c.buf }

func (c *Cursor) check(context string, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(c.buf) || offset+length < offset {
		return errs.NewRangeError(context, offset, length, len(c.buf))
	}
	return nil
}

// Slice returns the n bytes starting at offset, validating bounds first.
func (c *Cursor) Slice(context string, offset, n int) ([]byte, error) {
	if err := c.check(context, offset, n); err != nil {
		return nil, err
	}
	return c.buf[offset : offset+n], nil
}

// U8 reads one byte at offset.
func (c *Cursor) U8(context string, offset int) (uint8, error) {
	b, err := c.Slice(context, offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a little-endian uint16 at offset.
func (c *Cursor) U16(context string, offset int) (uint16, error) {
	b, err := c.Slice(context, offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32 reads a little-endian uint32 at offset.
func (c *Cursor) U32(context string, offset int) (uint32, error) {
	b, err := c.Slice(context, offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// U64 reads a little-endian uint64 at offset.
func (c *Cursor) U64(context string, offset int) (uint64, error) {
	b, err := c.Slice(context, offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// PutU8 writes one byte at offset.
func (c *Cursor) PutU8(context string, offset int, v uint8) error {
	b, err := c.Slice(context, offset, 1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

// PutU16 writes a little-endian uint16 at offset.
func (c *Cursor) PutU16(context string, offset int, v uint16) error {
	b, err := c.Slice(context, offset, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, v)
	return nil
}

// PutU32 writes a little-endian uint32 at offset.
func (c *Cursor) PutU32(context string, offset int, v uint32) error {
	b, err := c.Slice(context, offset, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, v)
	return nil
}

// PutU64 writes a little-endian uint64 at offset.
func (c *Cursor) PutU64(context string, offset int, v uint64) error {
	b, err := c.Slice(context, offset, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, v)
	return nil
}

// PutBytes copies src into the buffer starting at offset.
func (c *Cursor) PutBytes(context string, offset int, src []byte) error {
	b, err := c.Slice(context, offset, len(src))
	if err != nil {
		return err
	}
	copy(b, src)
	return nil
}

// String reads an n-byte fixed-width ASCII field and trims trailing
// spaces and NUL bytes.
func (c *Cursor) String(context string, offset, n int) (string, error) {
	b, err := c.Slice(context, offset, n)
	if err != nil {
		return "", err
	}
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}
	return string(b[:end]), nil
}
