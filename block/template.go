package block

// Template describes the fixed per-kind header geometry the write
// planner applies when emitting a block: which offsets the header's
// record-area/tabular-area/entry-area fields carry, and any
// additional fixed "magic" values the legacy readers expect at bytes
// outside the fields §4.4 names directly.
type Template struct {
	RecordSize        uint16
	RecAreaOffset     uint16
	TabularAreaOffset uint16
	EntryAreaOffset   uint16
	EntrySize         uint16
	// Extra holds fixed values at header byte offsets not otherwise
	// modeled by Header, keyed by offset.
	Extra map[int]uint16
}

// Templates holds the fixed per-kind header template this module
// writes. Only the kinds this codec emits (§1 Non-goals: ACQP, SAMP,
// PROC, SPEC, NLINES, NUCL) have entries; GEOM/DISP/PEAK are
// read-only.
var Templates = map[Kind]Template{
	KindACQP: {
		RecordSize:        0x0440,
		RecAreaOffset:     0x02EA,
		TabularAreaOffset: 0x01FB,
		EntryAreaOffset:   0x03E6,
		EntrySize:         0x0009,
		Extra: map[int]uint16{
			0x1A: 0x003C,
			0x26: 0x0019,
		},
	},
	KindSAMP: {
		RecordSize:        0x40,
		RecAreaOffset:     0x00,
		TabularAreaOffset: 0x00,
		EntryAreaOffset:   0x00,
		EntrySize:         0x00,
	},
	KindPROC: {
		RecordSize:        0x00,
		RecAreaOffset:     0x00,
		TabularAreaOffset: 0x00,
		EntryAreaOffset:   0x00,
		EntrySize:         0x00,
	},
	KindSPEC: {
		RecordSize:        0x00,
		RecAreaOffset:     0x00,
		TabularAreaOffset: 0x00,
		EntryAreaOffset:   0x00,
		EntrySize:         0x00,
	},
	KindNLINES: {
		RecordSize:        RecordSizeNLINES,
		RecAreaOffset:     uint16(len(NlineCommonPreamble)),
		TabularAreaOffset: 0x00,
		EntryAreaOffset:   0x00,
		EntrySize:         0x00,
	},
	KindNUCL: {
		RecordSize:        RecordSizeNUCL,
		RecAreaOffset:     uint16(len(NuclCommonPreamble)),
		TabularAreaOffset: 0x00,
		EntryAreaOffset:   0x00,
		EntrySize:         0x00,
	},
}

// SpecChannelEntrySize rounds a channel count up to the next power of
// two in [0x200, 0x10000], matching the SPEC block's entry-area
// padding rule. Counts above 0x10000 use the exact count.
func SpecChannelEntrySize(channels int) int {
	const min, max = 0x200, 0x10000
	if channels > max {
		return channels
	}
	size := min
	for size < channels {
		size *= 2
	}
	return size
}

// SpecHasQuadSpecialFlag reports whether the padded channel entry size
// is the 0x4000 special case that sets header byte 0x08.
func SpecHasQuadSpecialFlag(paddedChannels int) bool {
	return paddedChannels == 0x4000
}
