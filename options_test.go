package camio

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandialabs/camio/entity"
)

func TestWithReaderLogger(t *testing.T) {
	lg := logrus.New()
	buf := buildSampleFile(t)

	r, err := NewReader(buf, WithReaderLogger(lg))
	require.NoError(t, err)
	assert.Same(t, lg, r.log)
}

func TestWithWriterLogger(t *testing.T) {
	lg := logrus.New()
	w, err := NewWriter(WithWriterLogger(lg))
	require.NoError(t, err)
	assert.Same(t, lg, w.log)
}

func TestWithKeyLineInterferenceLimit(t *testing.T) {
	w, err := NewWriter(WithKeyLineInterferenceLimit(5.0))
	require.NoError(t, err)
	assert.Equal(t, float32(5.0), w.keyLineInterferenceLimit)
}

func TestWithUncertaintyFraction(t *testing.T) {
	w, err := NewWriter(WithUncertaintyFraction(0.25))
	require.NoError(t, err)
	assert.Equal(t, 0.25, w.uncertaintyFraction)

	idx, err := w.AddNuclide(entity.Nuclide{Name: "CO-60", HalfLife: 5.27, HalfLifeUnit: "Y"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}
