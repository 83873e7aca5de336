package record

import (
	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/internal/cursor"
)

// Line record field offsets, relative to the record's base location.
const (
	LineEnergy            = 0x01
	LineEnergyUncertainty = 0x21
	LineAbundance         = 0x05
	LineAbundanceUncertainty = 0x39
	LineIsKeyLine         = 0x1D
	LineNuclideIndex      = 0x1B
	LineNoWeightMean      = 0x1F
	LineActivity          = 0x0B
	LineActivityUncertainty = 0x13
	LineEfficiency        = 0x31
	LineEfficiencyUncertainty = 0x35
	LineMDA               = 0x25
)

const (
	isKeyLineFlag    uint8 = 0x04
	noWeightMeanFlag uint8 = 0x02
)

// DecodeLine decodes one NLINES record at loc.
func DecodeLine(c *cursor.Cursor, loc int) (entity.Line, error) {
	var l entity.Line
	var err error

	if l.Energy, err = readCAMFloat(c, "line: energy", loc+LineEnergy); err != nil {
		return l, err
	}
	if l.EnergyUncertainty, err = readCAMFloat(c, "line: energy uncertainty", loc+LineEnergyUncertainty); err != nil {
		return l, err
	}
	if l.Abundance, err = readCAMFloat(c, "line: abundance", loc+LineAbundance); err != nil {
		return l, err
	}
	if l.AbundanceUncertainty, err = readCAMFloat(c, "line: abundance uncertainty", loc+LineAbundanceUncertainty); err != nil {
		return l, err
	}
	if l.LineActivity, err = readCAMFloat(c, "line: activity", loc+LineActivity); err != nil {
		return l, err
	}
	if l.LineActivityUncertainty, err = readCAMFloat(c, "line: activity uncertainty", loc+LineActivityUncertainty); err != nil {
		return l, err
	}
	if l.LineEfficiency, err = readCAMFloat(c, "line: efficiency", loc+LineEfficiency); err != nil {
		return l, err
	}
	if l.LineEfficiencyUncertainty, err = readCAMFloat(c, "line: efficiency uncertainty", loc+LineEfficiencyUncertainty); err != nil {
		return l, err
	}
	if l.LineMDA, err = readCAMFloat(c, "line: mda", loc+LineMDA); err != nil {
		return l, err
	}

	isKey, err := c.U8("line: is-key-line flag", loc+LineIsKeyLine)
	if err != nil {
		return l, err
	}
	l.IsKeyLine = isKey == isKeyLineFlag

	noWeight, err := c.U8("line: no-weight-mean flag", loc+LineNoWeightMean)
	if err != nil {
		return l, err
	}
	l.NoWeightMean = noWeight == noWeightMeanFlag

	nucIdx, err := c.U8("line: nuclide index", loc+LineNuclideIndex)
	if err != nil {
		return l, err
	}
	l.NuclideIndex = nucIdx

	return l, nil
}

// EncodeLine builds a RecordSize.NLINES-byte record for l.
func EncodeLine(l entity.Line) ([]byte, error) {
	buf := make([]byte, block.RecordSizeNLINES)
	c := cursor.New(buf)

	buf[0] = 0x01

	if err := writeCAMFloat(c, "line: energy", LineEnergy, l.Energy); err != nil {
		return nil, err
	}
	if err := writeCAMFloat(c, "line: energy uncertainty", LineEnergyUncertainty, l.EnergyUncertainty); err != nil {
		return nil, err
	}
	if err := writeCAMFloat(c, "line: abundance", LineAbundance, l.Abundance); err != nil {
		return nil, err
	}
	if err := writeCAMFloat(c, "line: abundance uncertainty", LineAbundanceUncertainty, l.AbundanceUncertainty); err != nil {
		return nil, err
	}
	if err := writeCAMFloat(c, "line: activity", LineActivity, l.LineActivity); err != nil {
		return nil, err
	}
	if err := writeCAMFloat(c, "line: activity uncertainty", LineActivityUncertainty, l.LineActivityUncertainty); err != nil {
		return nil, err
	}
	if err := writeCAMFloat(c, "line: efficiency", LineEfficiency, l.LineEfficiency); err != nil {
		return nil, err
	}
	if err := writeCAMFloat(c, "line: efficiency uncertainty", LineEfficiencyUncertainty, l.LineEfficiencyUncertainty); err != nil {
		return nil, err
	}
	if err := writeCAMFloat(c, "line: mda", LineMDA, l.LineMDA); err != nil {
		return nil, err
	}

	if l.IsKeyLine {
		buf[LineIsKeyLine] = isKeyLineFlag
	}
	if l.NoWeightMean {
		buf[LineNoWeightMean] = noWeightMeanFlag
	}
	buf[LineNuclideIndex] = l.NuclideIndex

	return buf, nil
}
