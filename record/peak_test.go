package record

import (
	"testing"

	"github.com/sandialabs/camio/internal/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePeak_FieldsAtDocumentedOffsets(t *testing.T) {
	buf := make([]byte, 0x100)
	c := cursor.New(buf)

	require.NoError(t, writeCAMFloat(c, "t", PeakEnergy, 661.7))
	require.NoError(t, writeCAMFloat(c, "t", PeakCentroid, 512.3))
	require.NoError(t, writeCAMFloat(c, "t", PeakFWHM, 2.1))
	require.NoError(t, writeCAMFloat(c, "t", PeakArea, 15000))
	require.NoError(t, writeCAMFloat(c, "t", PeakCriticalLevel, 3.2))
	require.NoError(t, c.PutU32("t", PeakLeftChannel, 100))
	require.NoError(t, c.PutU16("t", PeakWidth, 20))

	p, err := DecodePeak(c, 0)
	require.NoError(t, err)

	assert.InDelta(t, 661.7, p.Energy, 0.01)
	assert.InDelta(t, 512.3, p.Centroid, 0.01)
	assert.InDelta(t, 512.3, p.CentroidUncertainty, 0.01, "centroid uncertainty aliases centroid offset")
	assert.InDelta(t, 2.1, p.FWHM, 0.01)
	assert.InDelta(t, 15000.0, p.Area, 1)
	assert.InDelta(t, 3.2, p.CriticalLevel, 0.01)
	assert.Equal(t, uint32(100), p.LeftChannel)
	assert.Equal(t, uint32(20), p.Width)
}

func TestPeak_RightChannel(t *testing.T) {
	buf := make([]byte, 0x100)
	c := cursor.New(buf)
	require.NoError(t, c.PutU32("t", PeakLeftChannel, 100))
	require.NoError(t, c.PutU16("t", PeakWidth, 20))

	p, err := DecodePeak(c, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(119), p.RightChannel())
}

func TestCAMDuration_RoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	c := cursor.New(buf)

	require.NoError(t, writeCAMDuration(c, "t", 0, 3600))
	v, err := readCAMDuration(c, "t", 0)
	require.NoError(t, err)
	assert.InDelta(t, 3600.0, v, 0.01)
}
