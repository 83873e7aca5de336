package block

import (
	"github.com/sandialabs/camio/internal/cursor"
)

// Header is the parsed form of a block's leading 0x30 bytes. It is
// also what a TOC slot mirrors, since the TOC carries a copy of each
// block's header.
type Header struct {
	Kind            Kind
	HasCommon       uint16
	BlockSize       uint16
	FileOffset      uint32
	HeaderLen       uint16
	BlockNo         uint16
	RecordCount     uint16
	RecordSize      uint16
	RecAreaOffset   uint16
	TabularAreaOffset uint16
	EntryAreaOffset uint16
	EntrySize       uint16
	ComputedSize    uint16
}

// IsFirstInChain reports whether this header's has-common flag marks
// it as carrying the kind's common preamble (first block of its kind
// in the file), as opposed to a continuation.
func (h Header) IsFirstInChain() bool {
	return h.HasCommon == HasCommonFirstInChain
}

// RecordAreaBias returns the byte bias a record loop adds to skip the
// kind's common preamble. A continuation block (has-common ==
// HasCommonContinuation, or the legacy 0x0300 variant some kinds use)
// carries no preamble, so records start right after the header; a
// first-in-chain block's records start past the preamble, at the
// header's own RecAreaOffset field.
func (h Header) RecordAreaBias() uint16 {
	if h.HasCommon == HasCommonContinuation || h.HasCommon == 0x0300 {
		return 0
	}
	return h.RecAreaOffset
}

// ParseHeader decodes a 0x30-byte block header starting at offset in c.
func ParseHeader(c *cursor.Cursor, offset int) (Header, error) {
	var h Header

	kindRaw, err := c.U32("block header: kind", offset+HeaderKindOffset)
	if err != nil {
		return h, err
	}
	h.Kind = Kind(kindRaw)

	if h.HasCommon, err = c.U16("block header: has-common", offset+HeaderHasCommonOffset); err != nil {
		return h, err
	}
	if h.BlockSize, err = c.U16("block header: block size", offset+HeaderBlockSizeOffset); err != nil {
		return h, err
	}
	if h.FileOffset, err = c.U32("block header: file offset", offset+HeaderFileOffsetOffset); err != nil {
		return h, err
	}
	if h.HeaderLen, err = c.U16("block header: header length", offset+HeaderHeaderLenOffset); err != nil {
		return h, err
	}
	blockNo, err := c.U16("block header: block number", offset+HeaderBlockNoOffset)
	if err != nil {
		return h, err
	}
	h.BlockNo = blockNo
	if h.RecordCount, err = c.U16("block header: record count", offset+HeaderRecordCountOffset); err != nil {
		return h, err
	}
	if h.RecordSize, err = c.U16("block header: record size", offset+HeaderRecordSizeOffset); err != nil {
		return h, err
	}
	if h.RecAreaOffset, err = c.U16("block header: record area offset", offset+HeaderRecAreaOffsetOffset); err != nil {
		return h, err
	}
	if h.TabularAreaOffset, err = c.U16("block header: tabular area offset", offset+HeaderTabularAreaOffsetOffset); err != nil {
		return h, err
	}
	if h.EntryAreaOffset, err = c.U16("block header: entry area offset", offset+HeaderEntryAreaOffsetOffset); err != nil {
		return h, err
	}
	if h.EntrySize, err = c.U16("block header: entry size", offset+HeaderEntrySizeOffset); err != nil {
		return h, err
	}
	if h.ComputedSize, err = c.U16("block header: computed size", offset+HeaderComputedSizeOffset); err != nil {
		return h, err
	}

	return h, nil
}

// WriteHeader encodes h into the 0x30 bytes starting at offset in c.
func WriteHeader(c *cursor.Cursor, offset int, h Header) error {
	if err := c.PutU32("block header: kind", offset+HeaderKindOffset, uint32(h.Kind)); err != nil {
		return err
	}
	if err := c.PutU16("block header: has-common", offset+HeaderHasCommonOffset, h.HasCommon); err != nil {
		return err
	}
	if err := c.PutU16("block header: block size", offset+HeaderBlockSizeOffset, h.BlockSize); err != nil {
		return err
	}
	if err := c.PutU32("block header: file offset", offset+HeaderFileOffsetOffset, h.FileOffset); err != nil {
		return err
	}
	if err := c.PutU16("block header: header length", offset+HeaderHeaderLenOffset, h.HeaderLen); err != nil {
		return err
	}
	if err := c.PutU16("block header: block number", offset+HeaderBlockNoOffset, h.BlockNo); err != nil {
		return err
	}
	if err := c.PutU16("block header: record count", offset+HeaderRecordCountOffset, h.RecordCount); err != nil {
		return err
	}
	if err := c.PutU16("block header: record size", offset+HeaderRecordSizeOffset, h.RecordSize); err != nil {
		return err
	}
	if err := c.PutU16("block header: record area offset", offset+HeaderRecAreaOffsetOffset, h.RecAreaOffset); err != nil {
		return err
	}
	if err := c.PutU16("block header: tabular area offset", offset+HeaderTabularAreaOffsetOffset, h.TabularAreaOffset); err != nil {
		return err
	}
	if err := c.PutU16("block header: entry area offset", offset+HeaderEntryAreaOffsetOffset, h.EntryAreaOffset); err != nil {
		return err
	}
	if err := c.PutU16("block header: entry size", offset+HeaderEntrySizeOffset, h.EntrySize); err != nil {
		return err
	}
	if err := c.PutU16("block header: computed size", offset+HeaderComputedSizeOffset, h.ComputedSize); err != nil {
		return err
	}
	return nil
}
