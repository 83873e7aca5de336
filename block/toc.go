package block

import (
	"github.com/sandialabs/camio/internal/cursor"
)

// TOCEntry is one parsed slot of the 28-slot block directory.
type TOCEntry struct {
	Header
	SlotIndex int
}

// ParseTOC reads every non-empty slot of the file prolog's
// table-of-contents. A slot is unused when its kind code is zero.
func ParseTOC(c *cursor.Cursor) ([]TOCEntry, error) {
	var entries []TOCEntry

	for slot := 0; slot < TOCSlots; slot++ {
		offset := TOCBase + slot*TOCStride
		h, err := ParseHeader(c, offset)
		if err != nil {
			return nil, err
		}
		if h.Kind == KindUnknown {
			continue
		}
		entries = append(entries, TOCEntry{Header: h, SlotIndex: slot})
	}

	return entries, nil
}

// OffsetsByKind groups parsed TOC entries by block kind, preserving
// file order within each kind. A kind with multiple entries is a
// continuation chain.
func OffsetsByKind(entries []TOCEntry) map[Kind][]uint32 {
	out := make(map[Kind][]uint32)
	for _, e := range entries {
		out[e.Kind] = append(out[e.Kind], e.FileOffset)
	}
	return out
}

// WriteTOCSlot mirrors a block's header into its TOC slot.
func WriteTOCSlot(c *cursor.Cursor, slot int, h Header) error {
	offset := TOCBase + slot*TOCStride
	return WriteHeader(c, offset, h)
}
