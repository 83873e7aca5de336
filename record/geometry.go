package record

import (
	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/internal/cursor"
)

// efficiencyModelStringBias and efficiencyModelStringLen locate the
// model-name string read from a GEOM block. Unlike every other
// per-kind accessor, the source reads this string relative to the
// record-area bias alone, without also adding the header length.
const (
	efficiencyModelStringBias = 222
	efficiencyModelStringLen  = 8
)

// DecodeGeometryBlock decodes a GEOM block's efficiency-curve entries
// and its model-name string.
func DecodeGeometryBlock(c *cursor.Cursor, blockOffset int, h block.Header) ([]entity.EfficiencyPoint, block.EfficiencyModel, error) {
	recOffset := int(h.RecordAreaBias())

	model := block.EfficiencyModelUnknown
	if modelStr, err := c.String("geometry: model name", blockOffset+recOffset+efficiencyModelStringBias, efficiencyModelStringLen); err == nil {
		model = block.ParseEfficiencyModel(modelStr)
	}

	var points []entity.EfficiencyPoint
	for i := 0; i < int(h.RecordCount); i++ {
		loc := blockOffset + int(h.HeaderLen) + recOffset + int(h.EntryAreaOffset) + i*int(h.RecordSize)
		if loc >= c.Len() {
			break
		}

		for loc < c.Len() {
			marker, err := c.U8("geometry: entry marker", loc)
			if err != nil || int(marker) != i+1 {
				break
			}

			point, err := DecodeEfficiencyPoint(c, loc)
			if err != nil {
				return points, model, err
			}
			points = append(points, point)

			if h.EntrySize == 0 {
				break
			}
			loc += int(h.EntrySize)
		}
	}

	return points, model, nil
}
