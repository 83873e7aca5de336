package record

import (
	"testing"

	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/internal/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampHeader() block.Header {
	return block.Header{HasCommon: block.HasCommonFirstInChain, HeaderLen: block.HeaderLength}
}

func TestSampleTitle_RoundTrip(t *testing.T) {
	buf := make([]byte, block.HeaderLength+sampleTitleLen)
	c := cursor.New(buf)
	h := sampHeader()

	require.NoError(t, EncodeSampleTitle(c, 0, h, "Field sample 42"))

	got, err := DecodeSampleTitle(c, 0, h)
	require.NoError(t, err)
	assert.Equal(t, "Field sample 42", got)
}

func TestSampleTitle_Truncation(t *testing.T) {
	buf := make([]byte, block.HeaderLength+sampleTitleLen)
	c := cursor.New(buf)
	h := sampHeader()

	long := make([]byte, sampleTitleLen+10)
	for i := range long {
		long[i] = 'a'
	}

	require.NoError(t, EncodeSampleTitle(c, 0, h, string(long)))
	got, err := DecodeSampleTitle(c, 0, h)
	require.NoError(t, err)
	assert.Len(t, got, sampleTitleLen)
}

func TestGPS_RoundTrip(t *testing.T) {
	buf := make([]byte, block.HeaderLength+gpsSpeedBias+8)
	c := cursor.New(buf)
	h := sampHeader()

	require.NoError(t, EncodeGPS(c, 0, h, 35.0844, -106.6504, 12.3))

	lat, lon, speed, err := DecodeGPS(c, 0, h)
	require.NoError(t, err)
	assert.InDelta(t, 35.0844, lat, 1e-6)
	assert.InDelta(t, -106.6504, lon, 1e-6)
	assert.InDelta(t, 12.3, speed, 1e-6)
}

func TestSampleTimeOffset(t *testing.T) {
	h := sampHeader()
	assert.Equal(t, int(block.HeaderLength)+sampleTimeBias, SampleTimeOffset(h))
}
