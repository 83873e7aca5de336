// Package entity holds the domain types the camio façade exposes:
// peaks, gamma lines, nuclides, efficiency points, detector info,
// spectra, and calibrations. These are plain data types; the record
// package knows how to decode and encode them.
package entity

import (
	"strconv"
	"strings"
)

// Peak is one entry of a PEAK block's record table.
type Peak struct {
	Energy              float32
	Centroid            float32
	CentroidUncertainty float32
	FWHM                float32
	LowTail             float32
	Area                float32
	AreaUncertainty     float32
	Continuum           float32
	CriticalLevel       float32
	CountRate           float32
	CountRateUncertainty float32
	LeftChannel         uint32
	Width               uint32
}

// RightChannel is the derived last channel of the peak's window.
func (p Peak) RightChannel() uint32 {
	return p.LeftChannel + p.Width - 1
}

// Line is one gamma line associated with a nuclide.
type Line struct {
	Energy               float32
	EnergyUncertainty    float32
	Abundance            float32
	AbundanceUncertainty float32
	IsKeyLine            bool
	NoWeightMean         bool
	NuclideIndex         uint8 // 1..255, references a Nuclide.Index
	LineActivity         float32
	LineActivityUncertainty float32
	LineEfficiency       float32
	LineEfficiencyUncertainty float32
	LineMDA              float32
}

// ByEnergy is the total order used to keep the staged line list sorted
// ascending by energy (§3 invariant 3).
func ByEnergy(a, b Line) bool {
	return a.Energy < b.Energy
}

// Nuclide is one identified nuclide with its half-life and embedded
// list of 1-based global line indices.
type Nuclide struct {
	Name                 string // e.g. "CO-60", up to 8 chars
	Element              string
	MassNumber           int
	Metastable           string // e.g. "M"; letters only, empty if ground state
	HalfLife             float64 // scaled by HalfLifeUnit, e.g. years when HalfLifeUnit=="Y"
	HalfLifeUncertainty  float64 // same scale as HalfLife
	HalfLifeUnit         string  // one of Y, D, H, M, S (case-insensitive on input)
	Index                uint8   // 1..255
	Activity             float64
	ActivityUncertainty  float64
	MDA                  float64
	LineIndices          []int // 1-based positions into the global sorted line list
}

// ByMassNumberThenSymbolThenMetastable is the total order used to
// sort-and-binary-insert nuclides. The source leaves this comparator
// stubbed (always false); this is a real implementation: mass number,
// then element symbol, then metastable suffix.
func ByMassNumberThenSymbolThenMetastable(a, b Nuclide) bool {
	if a.MassNumber != b.MassNumber {
		return a.MassNumber < b.MassNumber
	}
	if a.Element != b.Element {
		return a.Element < b.Element
	}
	return a.Metastable < b.Metastable
}

// DecomposeIsotopeName splits a name like "Co-60m" into element "CO",
// mass number 60, and metastable suffix "M". Returns ok=false if name
// does not match ^[A-Za-z]+-?\d+[A-Za-z]*$.
func DecomposeIsotopeName(name string) (element string, massNumber int, metastable string, ok bool) {
	name = strings.TrimSpace(name)
	i := 0
	for i < len(name) && isAlpha(name[i]) {
		i++
	}
	if i == 0 {
		return "", 0, "", false
	}
	element = strings.ToUpper(name[:i])

	j := i
	if j < len(name) && name[j] == '-' {
		j++
	}
	digitsStart := j
	for j < len(name) && name[j] >= '0' && name[j] <= '9' {
		j++
	}
	if j == digitsStart {
		return "", 0, "", false
	}
	mass, err := strconv.Atoi(name[digitsStart:j])
	if err != nil {
		return "", 0, "", false
	}

	k := j
	for k < len(name) && isAlpha(name[k]) {
		k++
	}
	if k != len(name) {
		return "", 0, "", false
	}

	return element, mass, strings.ToUpper(name[j:k]), true
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// EfficiencyPoint is one entry of a GEOM block's efficiency curve.
type EfficiencyPoint struct {
	RecordIndex        uint8
	Energy             float32
	Efficiency         float32
	EfficiencyUncertainty float32
}

// DetInfo identifies the detector that acquired a spectrum.
type DetInfo struct {
	Type     string // <=8
	Name     string // <=16
	SerialNo string // <=8
	MCAType  string // <=24
}

// Spectrum is the channel-count data of a SPEC block.
type Spectrum struct {
	Channels []uint32
}

// Calibration is an ordered set of four polynomial coefficients
// (energy or shape).
type Calibration struct {
	Coefficients [4]float32
}
