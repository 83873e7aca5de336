package record

import (
	"testing"

	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/internal/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine_RoundTrip(t *testing.T) {
	l := entity.Line{
		Energy:               661.7,
		EnergyUncertainty:    0.1,
		Abundance:            85.1,
		AbundanceUncertainty: 0.3,
		IsKeyLine:            true,
		NoWeightMean:         false,
		NuclideIndex:         3,
		LineActivity:         12.5,
		LineActivityUncertainty: 0.5,
		LineEfficiency:       0.02,
		LineEfficiencyUncertainty: 0.001,
		LineMDA:              0.4,
	}

	rec, err := EncodeLine(l)
	require.NoError(t, err)

	got, err := DecodeLine(cursor.New(rec), 0)
	require.NoError(t, err)

	assert.InDelta(t, l.Energy, got.Energy, 0.01)
	assert.InDelta(t, l.Abundance, got.Abundance, 0.01)
	assert.Equal(t, l.IsKeyLine, got.IsKeyLine)
	assert.Equal(t, l.NoWeightMean, got.NoWeightMean)
	assert.Equal(t, l.NuclideIndex, got.NuclideIndex)
}

func TestLine_NoWeightMeanFlag(t *testing.T) {
	l := entity.Line{NoWeightMean: true, NuclideIndex: 1}

	rec, err := EncodeLine(l)
	require.NoError(t, err)

	got, err := DecodeLine(cursor.New(rec), 0)
	require.NoError(t, err)
	assert.True(t, got.NoWeightMean)
	assert.False(t, got.IsKeyLine)
}
