// Package record implements the per-block-kind record decoders and
// encoders: the fixed-offset field layouts for peaks, lines, nuclides,
// efficiency points, spectra, and the ACQP/SAMP accessory fields.
package record

import (
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/internal/cursor"
	"github.com/sandialabs/camio/pdp11"
)

// Peak record field offsets, relative to the record's base location.
const (
	PeakEnergy        = 0x00
	PeakCentroid      = 0x40
	// PeakCentroidUncertainty aliases PeakCentroid: the source stores
	// both fields near the centroid in a larger struct and the
	// distilled format documents them at the same offset.
	PeakCentroidUncertainty = 0x40
	PeakFWHM          = 0x10
	PeakLowTail       = 0x50
	PeakArea          = 0x34
	PeakAreaUncertainty = 0x84
	PeakContinuum     = 0x0C
	// PeakCriticalLevel sits past every other documented field width
	// for every peak variant this module writes or reads; see
	// DESIGN.md for the open-question rationale.
	PeakCriticalLevel = 0xD1
	PeakCountRate     = 0x18
	PeakCountRateUncertainty = 0x1C
	PeakLeftChannel   = 0xE0
	PeakWidth         = 0xE4
)

func readCAMFloat(c *cursor.Cursor, context string, offset int) (float32, error) {
	b, err := c.Slice(context, offset, 4)
	if err != nil {
		return 0, err
	}
	var arr [4]byte
	copy(arr[:], b)
	return pdp11.DecodeFloat(arr), nil
}

func writeCAMFloat(c *cursor.Cursor, context string, offset int, v float32) error {
	arr := pdp11.EncodeFloat(v)
	return c.PutBytes(context, offset, arr[:])
}

func readCAMDouble(c *cursor.Cursor, context string, offset int) (float64, error) {
	b, err := c.Slice(context, offset, 8)
	if err != nil {
		return 0, err
	}
	var arr [8]byte
	copy(arr[:], b)
	return pdp11.DecodeDouble(arr), nil
}

func writeCAMDouble(c *cursor.Cursor, context string, offset int, v float64) error {
	arr := pdp11.EncodeDouble(v)
	return c.PutBytes(context, offset, arr[:])
}

func readCAMDuration(c *cursor.Cursor, context string, offset int) (float64, error) {
	b, err := c.Slice(context, offset, 8)
	if err != nil {
		return 0, err
	}
	var arr [8]byte
	copy(arr[:], b)
	return pdp11.DecodeDuration(arr), nil
}

func writeCAMDuration(c *cursor.Cursor, context string, offset int, seconds float64) error {
	arr := pdp11.EncodeDuration(seconds)
	return c.PutBytes(context, offset, arr[:])
}

// DecodePeak decodes one peak record at loc.
func DecodePeak(c *cursor.Cursor, loc int) (entity.Peak, error) {
	var p entity.Peak
	var err error

	if p.Energy, err = readCAMFloat(c, "peak: energy", loc+PeakEnergy); err != nil {
		return p, err
	}
	if p.Centroid, err = readCAMFloat(c, "peak: centroid", loc+PeakCentroid); err != nil {
		return p, err
	}
	if p.CentroidUncertainty, err = readCAMFloat(c, "peak: centroid uncertainty", loc+PeakCentroidUncertainty); err != nil {
		return p, err
	}
	if p.FWHM, err = readCAMFloat(c, "peak: fwhm", loc+PeakFWHM); err != nil {
		return p, err
	}
	if p.LowTail, err = readCAMFloat(c, "peak: low tail", loc+PeakLowTail); err != nil {
		return p, err
	}
	if p.Area, err = readCAMFloat(c, "peak: area", loc+PeakArea); err != nil {
		return p, err
	}
	if p.AreaUncertainty, err = readCAMFloat(c, "peak: area uncertainty", loc+PeakAreaUncertainty); err != nil {
		return p, err
	}
	if p.Continuum, err = readCAMFloat(c, "peak: continuum", loc+PeakContinuum); err != nil {
		return p, err
	}
	if p.CriticalLevel, err = readCAMFloat(c, "peak: critical level", loc+PeakCriticalLevel); err != nil {
		return p, err
	}
	if p.CountRate, err = readCAMFloat(c, "peak: count rate", loc+PeakCountRate); err != nil {
		return p, err
	}
	if p.CountRateUncertainty, err = readCAMFloat(c, "peak: count rate uncertainty", loc+PeakCountRateUncertainty); err != nil {
		return p, err
	}
	if p.LeftChannel, err = c.U32("peak: left channel", loc+PeakLeftChannel); err != nil {
		return p, err
	}
	width, err := c.U16("peak: width", loc+PeakWidth)
	if err != nil {
		return p, err
	}
	p.Width = uint32(width)

	return p, nil
}
