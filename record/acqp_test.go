package record

import (
	"testing"
	"time"

	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/internal/cursor"
	"github.com/sandialabs/camio/pdp11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acqpHeaderAndBuf() (block.Header, *cursor.Cursor) {
	h := block.Header{
		HasCommon:         block.HasCommonFirstInChain,
		HeaderLen:         block.HeaderLength,
		RecAreaOffset:     0,
		TabularAreaOffset: 0x200,
	}
	buf := make([]byte, 0x400)
	return h, cursor.New(buf)
}

func TestDetInfo_RoundTrip(t *testing.T) {
	h, c := acqpHeaderAndBuf()
	d := entity.DetInfo{Type: "NaI", MCAType: "MCA-8000D", Name: "Detector 1", SerialNo: "SN1234"}

	require.NoError(t, EncodeDetInfo(c, 0, h, d))

	got, err := DecodeDetInfo(c, 0, h)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestAcquisitionTime_RoundTrip(t *testing.T) {
	h, c := acqpHeaderAndBuf()

	arr, err := pdp11.EncodeDateTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, EncodeAcquisitionTime(c, 0, h, arr))

	gotArr, _, err := DecodeAcquisitionTime(c, 0, h)
	require.NoError(t, err)
	assert.Equal(t, arr, gotArr)
}

func TestRealLiveTime_RoundTrip(t *testing.T) {
	h, c := acqpHeaderAndBuf()

	require.NoError(t, EncodeRealTime(c, 0, h, 3600.5))
	require.NoError(t, EncodeLiveTime(c, 0, h, 3590.1))

	real, err := DecodeRealTime(c, 0, h)
	require.NoError(t, err)
	live, err := DecodeLiveTime(c, 0, h)
	require.NoError(t, err)

	assert.InDelta(t, 3600.5, real, 0.1)
	assert.InDelta(t, 3590.1, live, 0.1)
}

func TestCalibration_RoundTrip(t *testing.T) {
	h, c := acqpHeaderAndBuf()
	cal := entity.Calibration{Coefficients: [4]float32{0.1, 0.5, 0, 0}}

	require.NoError(t, EncodeCalibration(c, 0, h, energyCalibrationBias, cal))

	got, err := DecodeEnergyCalibration(c, 0, h)
	require.NoError(t, err)
	for i := range cal.Coefficients {
		assert.InDelta(t, cal.Coefficients[i], got.Coefficients[i], 0.001)
	}
}
