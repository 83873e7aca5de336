package record

import "github.com/sandialabs/camio/block"

// peakRecordBias is the fixed single-byte offset every peak record's
// base location carries past the record-area bias.
const peakRecordBias = 0x01

// RecordLoc computes the base offset of record index i within a block,
// for kinds whose records are uniformly sized (lines, peaks). Nuclide
// records are variable-sized and accumulate their own running offset
// instead; see the reader's nuclide decode loop.
func RecordLoc(blockOffset int, h block.Header, i int) int {
	return blockOffset + int(h.HeaderLen) + int(h.RecordAreaBias()) + i*int(h.RecordSize)
}

// PeakRecordLoc computes the base offset of peak record index i, which
// carries an extra fixed one-byte bias past the usual record area.
func PeakRecordLoc(blockOffset int, h block.Header, i int) int {
	return RecordLoc(blockOffset, h, i) + peakRecordBias
}
