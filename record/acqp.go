package record

import (
	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/internal/cursor"
)

// Detector-info field offsets within an ACQP record.
const (
	DetInfoType     = 0x2DC // 8 bytes
	DetInfoMCAType  = 0x9C  // 24 bytes
	DetInfoName     = 0x108 // 16 bytes
	DetInfoSerialNo = 0x1CB // 8 bytes
)

// Timing field offsets, relative to the ACQP block's tabular area.
const (
	acquisitionTimeBias = 0x01
	realTimeBias        = 0x09
	liveTimeBias        = 0x11
)

// Calibration field biases past the record area offset.
const (
	energyCalibrationBias = 0x44
	shapeCalibrationBias  = 0xDC
)

// DecodeDetInfo decodes the detector-identification fields embedded
// in an ACQP record.
func DecodeDetInfo(c *cursor.Cursor, blockOffset int, h block.Header) (entity.DetInfo, error) {
	var d entity.DetInfo

	loc := blockOffset + int(h.HeaderLen) + int(h.RecordAreaBias())

	typ, err := c.String("det info: type", loc+DetInfoType, 8)
	if err != nil {
		return d, err
	}
	d.Type = typ

	mca, err := c.String("det info: mca type", loc+DetInfoMCAType, 24)
	if err != nil {
		return d, err
	}
	d.MCAType = mca

	name, err := c.String("det info: name", loc+DetInfoName, 16)
	if err != nil {
		return d, err
	}
	d.Name = name

	sn, err := c.String("det info: serial number", loc+DetInfoSerialNo, 8)
	if err != nil {
		return d, err
	}
	d.SerialNo = sn

	return d, nil
}

// DecodeAcquisitionTime decodes the acquisition start time.
func DecodeAcquisitionTime(c *cursor.Cursor, blockOffset int, h block.Header) ([8]byte, int, error) {
	loc := blockOffset + int(h.HeaderLen) + int(h.TabularAreaOffset) + acquisitionTimeBias
	b, err := c.Slice("acqp: acquisition time", loc, 8)
	if err != nil {
		return [8]byte{}, 0, err
	}
	var arr [8]byte
	copy(arr[:], b)
	return arr, loc, nil
}

// DecodeRealTime decodes the real-time duration field, in seconds.
func DecodeRealTime(c *cursor.Cursor, blockOffset int, h block.Header) (float32, error) {
	loc := blockOffset + block.HeaderLength + int(h.TabularAreaOffset) + realTimeBias
	v, err := readCAMDuration(c, "acqp: real time", loc)
	return float32(v), err
}

// DecodeLiveTime decodes the live-time duration field, in seconds.
func DecodeLiveTime(c *cursor.Cursor, blockOffset int, h block.Header) (float32, error) {
	loc := blockOffset + block.HeaderLength + int(h.TabularAreaOffset) + liveTimeBias
	v, err := readCAMDuration(c, "acqp: live time", loc)
	return float32(v), err
}

// DecodeEnergyCalibration decodes the four energy-calibration
// coefficients.
func DecodeEnergyCalibration(c *cursor.Cursor, blockOffset int, h block.Header) (entity.Calibration, error) {
	return decodeCalibration(c, blockOffset, h, energyCalibrationBias, "acqp: energy calibration")
}

// DecodeShapeCalibration decodes the four shape-calibration
// coefficients.
func DecodeShapeCalibration(c *cursor.Cursor, blockOffset int, h block.Header) (entity.Calibration, error) {
	return decodeCalibration(c, blockOffset, h, shapeCalibrationBias, "acqp: shape calibration")
}

func decodeCalibration(c *cursor.Cursor, blockOffset int, h block.Header, bias int, context string) (entity.Calibration, error) {
	var cal entity.Calibration
	loc := blockOffset + block.HeaderLength + int(h.RecAreaOffset) + bias
	for i := 0; i < 4; i++ {
		v, err := readCAMFloat(c, context, loc+i*4)
		if err != nil {
			return cal, err
		}
		cal.Coefficients[i] = v
	}
	return cal, nil
}

// EncodeCalibration patches the four coefficients of cal into the
// writer's owned ACQP working copy at the given bias.
func EncodeCalibration(c *cursor.Cursor, blockOffset int, h block.Header, bias int, cal entity.Calibration) error {
	loc := blockOffset + block.HeaderLength + int(h.RecAreaOffset) + bias
	for i := 0; i < 4; i++ {
		if err := writeCAMFloat(c, "acqp: calibration", loc+i*4, cal.Coefficients[i]); err != nil {
			return err
		}
	}
	return nil
}

// EncodeDetInfo writes d's detector-identification fields into the
// writer's owned ACQP working copy.
func EncodeDetInfo(c *cursor.Cursor, blockOffset int, h block.Header, d entity.DetInfo) error {
	loc := blockOffset + int(h.HeaderLen) + int(h.RecordAreaBias())

	if err := c.PutBytes("acqp: detector type", loc+DetInfoType, []byte(padSpace(d.Type, 8))); err != nil {
		return err
	}
	if err := c.PutBytes("acqp: detector mca type", loc+DetInfoMCAType, []byte(padSpace(d.MCAType, 24))); err != nil {
		return err
	}
	if err := c.PutBytes("acqp: detector name", loc+DetInfoName, []byte(padSpace(d.Name, 16))); err != nil {
		return err
	}
	if err := c.PutBytes("acqp: detector serial", loc+DetInfoSerialNo, []byte(padSpace(d.SerialNo, 8))); err != nil {
		return err
	}
	return nil
}

// EncodeAcquisitionTime writes the acquisition start time into the
// writer's owned ACQP working copy.
func EncodeAcquisitionTime(c *cursor.Cursor, blockOffset int, h block.Header, arr [8]byte) error {
	loc := blockOffset + int(h.HeaderLen) + int(h.TabularAreaOffset) + acquisitionTimeBias
	return c.PutBytes("acqp: acquisition time", loc, arr[:])
}

// EncodeRealTime writes the real-time duration, in seconds, into the
// writer's owned ACQP working copy.
func EncodeRealTime(c *cursor.Cursor, blockOffset int, h block.Header, seconds float32) error {
	loc := blockOffset + block.HeaderLength + int(h.TabularAreaOffset) + realTimeBias
	return writeCAMDuration(c, "acqp: real time", loc, float64(seconds))
}

// EncodeLiveTime writes the live-time duration, in seconds, into the
// writer's owned ACQP working copy.
func EncodeLiveTime(c *cursor.Cursor, blockOffset int, h block.Header, seconds float32) error {
	loc := blockOffset + block.HeaderLength + int(h.TabularAreaOffset) + liveTimeBias
	return writeCAMDuration(c, "acqp: live time", loc, float64(seconds))
}
