package record

import (
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/internal/cursor"
)

// Efficiency-point entry offsets, relative to the entry's base
// location. Byte 0 of each entry, read into RecordIndex, is the
// 1-based record index it belongs to.
const (
	EfficiencyPointEnergy             = 0x01
	EfficiencyPointEfficiency         = 0x05
	EfficiencyPointEfficiencyUncertainty = 0x09
)

// DecodeEfficiencyPoint decodes one GEOM entry at loc.
func DecodeEfficiencyPoint(c *cursor.Cursor, loc int) (entity.EfficiencyPoint, error) {
	var p entity.EfficiencyPoint
	var err error

	recIdx, err := c.U8("efficiency point: record index", loc)
	if err != nil {
		return p, err
	}
	p.RecordIndex = recIdx

	if p.Energy, err = readCAMFloat(c, "efficiency point: energy", loc+EfficiencyPointEnergy); err != nil {
		return p, err
	}
	if p.Efficiency, err = readCAMFloat(c, "efficiency point: efficiency", loc+EfficiencyPointEfficiency); err != nil {
		return p, err
	}
	if p.EfficiencyUncertainty, err = readCAMFloat(c, "efficiency point: efficiency uncertainty", loc+EfficiencyPointEfficiencyUncertainty); err != nil {
		return p, err
	}

	return p, nil
}
