package record

import (
	"testing"

	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/internal/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGeometryBlock(t *testing.T) {
	h := block.Header{
		HasCommon:       block.HasCommonFirstInChain,
		HeaderLen:       block.HeaderLength,
		RecAreaOffset:   0,
		EntryAreaOffset: 0x100,
		RecordSize:      0x20,
		RecordCount:     1,
		EntrySize:       16,
	}

	buf := make([]byte, 0x200)
	c := cursor.New(buf)

	require.NoError(t, c.PutBytes("t", efficiencyModelStringBias, []byte("SPLINE  ")))

	entryLoc := int(h.HeaderLen) + int(h.EntryAreaOffset)
	buf[entryLoc] = 1
	require.NoError(t, writeCAMFloat(c, "t", entryLoc+EfficiencyPointEnergy, 100))
	require.NoError(t, writeCAMFloat(c, "t", entryLoc+EfficiencyPointEfficiency, 0.1))

	points, model, err := DecodeGeometryBlock(c, 0, h)
	require.NoError(t, err)
	assert.Equal(t, block.EfficiencyModelSpline, model)
	require.Len(t, points, 1)
	assert.InDelta(t, 100.0, points[0].Energy, 0.01)
}

func TestDecodeGeometryBlock_UnknownModel(t *testing.T) {
	h := block.Header{HasCommon: block.HasCommonFirstInChain, HeaderLen: block.HeaderLength}
	buf := make([]byte, 0x200)
	c := cursor.New(buf)

	_, model, err := DecodeGeometryBlock(c, 0, h)
	require.NoError(t, err)
	assert.Equal(t, block.EfficiencyModelUnknown, model)
}
