package record

import (
	"strings"

	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/errs"
	"github.com/sandialabs/camio/internal/cursor"
)

// Nuclide record field offsets, relative to the record's base location.
const (
	NuclideSizeField   = 0x00 // u16 LE, total record size including tail
	NuclideStructMark1 = 0x02 // fixed 0x01
	NuclideName        = 0x03 // 8 bytes
	NuclideHalfLife    = 0x1B // duration
	NuclideMDA         = 0x27 // double
	NuclideMeanActivity = 0x57 // double
	NuclideMeanActivityUncertainty = 0x69 // double
	NuclideHalfLifeUnit = 0x61 // 3 bytes, uppercase
	NuclideHalfLifeUncertainty = 0x89 // duration
	NuclideStructMark2 = 0x5F // fixed 0x01
)

const nuclideTailEntrySize = 3

// halfLifeUnitSeconds maps a half-life unit letter to the number of
// seconds it represents, matching ConvertHalfLife. HalfLife and
// HalfLifeUncertainty are stored on the wire as CAM-durations
// (seconds) but exposed on entity.Nuclide scaled into the record's own
// unit, exactly as the original converts on read.
var halfLifeUnitSeconds = map[string]float64{
	"Y": 31_557_600,
	"D": 86_400,
	"H": 3_600,
	"M": 60,
	"S": 1,
}

// HalfLifeSecondsPerUnit returns the number of seconds unit represents
// (Y, D, H, M, or S, case-insensitive), or ErrUnsupportedUnit.
func HalfLifeSecondsPerUnit(unit string) (float64, error) {
	secs, ok := halfLifeUnitSeconds[strings.ToUpper(strings.TrimSpace(unit))]
	if !ok {
		return 0, errs.ErrUnsupportedUnit
	}
	return secs, nil
}

// DecodeNuclide decodes one NUCL record starting at loc. It returns
// the nuclide's line indices (1-based, into the global sorted line
// list) as read from the record's trailing tail, but does not set
// Index: the high-level nuclide list derives Index from the first
// referenced line's own NuclideIndex field, matching the source.
func DecodeNuclide(c *cursor.Cursor, loc int) (entity.Nuclide, error) {
	var n entity.Nuclide

	sizeField, err := c.U16("nuclide: size field", loc+NuclideSizeField)
	if err != nil {
		return n, err
	}
	if int(sizeField) < block.RecordSizeNUCL {
		return n, errs.NewBlockError("NUCL", errs.ErrInvalidEncoding)
	}

	name, err := c.String("nuclide: name", loc+NuclideName, 8)
	if err != nil {
		return n, err
	}
	n.Name = name

	if element, mass, meta, ok := entity.DecomposeIsotopeName(name); ok {
		n.Element = element
		n.MassNumber = mass
		n.Metastable = meta
	}

	if n.HalfLife, err = readCAMDuration(c, "nuclide: half-life", loc+NuclideHalfLife); err != nil {
		return n, err
	}
	if n.HalfLifeUncertainty, err = readCAMDuration(c, "nuclide: half-life uncertainty", loc+NuclideHalfLifeUncertainty); err != nil {
		return n, err
	}
	unit, err := c.String("nuclide: half-life unit", loc+NuclideHalfLifeUnit, 3)
	if err != nil {
		return n, err
	}
	n.HalfLifeUnit = strings.ToUpper(unit)

	secsPerUnit, err := HalfLifeSecondsPerUnit(n.HalfLifeUnit)
	if err != nil {
		return n, errs.NewBlockError("NUCL", err)
	}
	n.HalfLife /= secsPerUnit
	n.HalfLifeUncertainty /= secsPerUnit

	if n.Activity, err = readCAMDouble(c, "nuclide: mean activity", loc+NuclideMeanActivity); err != nil {
		return n, err
	}
	if n.ActivityUncertainty, err = readCAMDouble(c, "nuclide: mean activity uncertainty", loc+NuclideMeanActivityUncertainty); err != nil {
		return n, err
	}
	if n.MDA, err = readCAMDouble(c, "nuclide: mda", loc+NuclideMDA); err != nil {
		return n, err
	}

	// Tail entries: [0x01, lineIdxLo, lineIdxHi] starting at
	// RecordSize.NUCL. The encoder always writes sizeField =
	// RecordSize.NUCL + 3*n, so the entry count is exact without an
	// off-by-one (see DESIGN.md for the algebra reconciling this with
	// the source's other call site).
	tailCount := (int(sizeField) - block.RecordSizeNUCL) / nuclideTailEntrySize
	n.LineIndices = make([]int, 0, tailCount)
	for i := 0; i < tailCount; i++ {
		entryLoc := loc + block.RecordSizeNUCL + i*nuclideTailEntrySize
		idx, err := c.U16("nuclide: line index tail entry", entryLoc+1)
		if err != nil {
			return n, err
		}
		n.LineIndices = append(n.LineIndices, int(idx))
	}

	return n, nil
}

// EncodeNuclide builds a RecordSize.NUCL + 3*len(n.LineIndices)-byte
// record for n.
func EncodeNuclide(n entity.Nuclide) ([]byte, error) {
	tailLen := len(n.LineIndices) * nuclideTailEntrySize
	buf := make([]byte, block.RecordSizeNUCL+tailLen)
	c := cursor.New(buf)

	sizeField := uint16(block.RecordSizeNUCL + tailLen)
	if err := c.PutU16("nuclide: size field", NuclideSizeField, sizeField); err != nil {
		return nil, err
	}
	buf[NuclideStructMark1] = 0x01
	buf[NuclideStructMark2] = 0x01

	name := strings.ToUpper(n.Name)
	if len(name) > 8 {
		name = name[:8]
	}
	if err := c.PutBytes("nuclide: name", NuclideName, []byte(padSpace(name, 8))); err != nil {
		return nil, err
	}

	unit := strings.ToUpper(n.HalfLifeUnit)
	secsPerUnit, err := HalfLifeSecondsPerUnit(unit)
	if err != nil {
		return nil, errs.NewBlockError("NUCL", err)
	}

	if err := writeCAMDuration(c, "nuclide: half-life", NuclideHalfLife, n.HalfLife*secsPerUnit); err != nil {
		return nil, err
	}
	if err := writeCAMDuration(c, "nuclide: half-life uncertainty", NuclideHalfLifeUncertainty, n.HalfLifeUncertainty*secsPerUnit); err != nil {
		return nil, err
	}
	if len(unit) > 2 {
		unit = unit[:2]
	}
	if err := c.PutBytes("nuclide: half-life unit", NuclideHalfLifeUnit, []byte(padSpace(unit, 2))); err != nil {
		return nil, err
	}

	if err := writeCAMDouble(c, "nuclide: mean activity", NuclideMeanActivity, n.Activity); err != nil {
		return nil, err
	}
	if err := writeCAMDouble(c, "nuclide: mean activity uncertainty", NuclideMeanActivityUncertainty, n.ActivityUncertainty); err != nil {
		return nil, err
	}
	if err := writeCAMDouble(c, "nuclide: mda", NuclideMDA, n.MDA); err != nil {
		return nil, err
	}

	for i, lineIdx := range n.LineIndices {
		entryLoc := block.RecordSizeNUCL + i*nuclideTailEntrySize
		buf[entryLoc] = 0x01
		if err := c.PutU16("nuclide: line index tail entry", entryLoc+1, uint16(lineIdx)); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

func padSpace(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}
