package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecomposeIsotopeName(t *testing.T) {
	cases := []struct {
		name         string
		element      string
		mass         int
		metastable   string
		ok           bool
	}{
		{"Co-60", "CO", 60, "", true},
		{"Co-60m", "CO", 60, "M", true},
		{"CS137", "CS", 137, "", true},
		{"Am-241m2", "AM", 241, "M2", true},
		{"60-CO", "", 0, "", false},
		{"", "", 0, "", false},
		{"Co-", "", 0, "", false},
	}

	for _, tc := range cases {
		element, mass, metastable, ok := DecomposeIsotopeName(tc.name)
		assert.Equal(t, tc.ok, ok, "name %q", tc.name)
		if tc.ok {
			assert.Equal(t, tc.element, element, "name %q", tc.name)
			assert.Equal(t, tc.mass, mass, "name %q", tc.name)
			assert.Equal(t, tc.metastable, metastable, "name %q", tc.name)
		}
	}
}

func TestByEnergy(t *testing.T) {
	a := Line{Energy: 100}
	b := Line{Energy: 200}
	assert.True(t, ByEnergy(a, b))
	assert.False(t, ByEnergy(b, a))
}

func TestByMassNumberThenSymbolThenMetastable(t *testing.T) {
	a := Nuclide{MassNumber: 60, Element: "CO"}
	b := Nuclide{MassNumber: 137, Element: "CS"}
	assert.True(t, ByMassNumberThenSymbolThenMetastable(a, b))

	c := Nuclide{MassNumber: 60, Element: "CO", Metastable: "M"}
	assert.True(t, ByMassNumberThenSymbolThenMetastable(a, c))
}

func TestPeak_RightChannel(t *testing.T) {
	p := Peak{LeftChannel: 50, Width: 10}
	assert.Equal(t, uint32(59), p.RightChannel())
}
