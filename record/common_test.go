package record

import (
	"testing"

	"github.com/sandialabs/camio/block"
	"github.com/stretchr/testify/assert"
)

func TestRecordLoc_FirstInChain(t *testing.T) {
	h := block.Header{HasCommon: block.HasCommonFirstInChain, HeaderLen: 0x30, RecAreaOffset: 0x10, RecordSize: 0x20}
	assert.Equal(t, 0x30+0x10+2*0x20, RecordLoc(0, h, 2))
}

func TestRecordLoc_Continuation(t *testing.T) {
	h := block.Header{HasCommon: block.HasCommonContinuation, HeaderLen: 0x30, RecAreaOffset: 0x10, RecordSize: 0x20}
	assert.Equal(t, 0x30+2*0x20, RecordLoc(0, h, 2))
}

func TestPeakRecordLoc_AddsFixedBias(t *testing.T) {
	h := block.Header{HasCommon: block.HasCommonFirstInChain, HeaderLen: 0x30, RecAreaOffset: 0, RecordSize: 0x10}
	assert.Equal(t, RecordLoc(0, h, 0)+1, PeakRecordLoc(0, h, 0))
}
