package block

import (
	"testing"

	"github.com/sandialabs/camio/internal/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	want := Header{
		Kind:              KindACQP,
		HasCommon:         HasCommonFirstInChain,
		BlockSize:         0x0800,
		FileOffset:        0x800,
		HeaderLen:         HeaderLength,
		BlockNo:           0x28,
		RecordCount:       1,
		RecordSize:        0xD8,
		RecAreaOffset:     0x30,
		TabularAreaOffset: 0x60,
		EntryAreaOffset:   0,
		EntrySize:         4,
		ComputedSize:      0x0800,
	}

	buf := make([]byte, HeaderLength)
	c := cursor.New(buf)
	require.NoError(t, WriteHeader(c, 0, want))

	got, err := ParseHeader(c, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHeader_RecordAreaBias_FirstInChain(t *testing.T) {
	h := Header{HasCommon: HasCommonFirstInChain, RecAreaOffset: 0x30}
	assert.Equal(t, uint16(0x30), h.RecordAreaBias())
}

func TestHeader_RecordAreaBias_Continuation(t *testing.T) {
	h := Header{HasCommon: HasCommonContinuation, RecAreaOffset: 0x30}
	assert.Equal(t, uint16(0), h.RecordAreaBias())
}

func TestHeader_RecordAreaBias_LegacyContinuation(t *testing.T) {
	h := Header{HasCommon: 0x0300, RecAreaOffset: 0x30}
	assert.Equal(t, uint16(0), h.RecordAreaBias())
}

func TestHeader_IsFirstInChain(t *testing.T) {
	assert.True(t, Header{HasCommon: HasCommonFirstInChain}.IsFirstInChain())
	assert.False(t, Header{HasCommon: HasCommonContinuation}.IsFirstInChain())
}

func TestBlockNoLinkage(t *testing.T) {
	assert.Equal(t, uint16(0x2800), BlockNoLinkage(0))
	assert.Equal(t, uint16(0x2805), BlockNoLinkage(1))
	assert.Equal(t, uint16(0x2806), BlockNoLinkage(2))
}
