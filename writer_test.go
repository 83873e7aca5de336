package camio

import (
	"testing"
	"time"

	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleFile(t *testing.T) []byte {
	t.Helper()

	w, err := NewWriter()
	require.NoError(t, err)

	w.SetDetectorType("NaI")
	w.SetSampleTitle("Field sample 1")
	acqTime := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	w.SetAcquisitionTime(acqTime)
	w.SetRealTime(3600)
	w.SetLiveTime(3590)
	w.SetEnergyCalibration([4]float32{0, 0.5, 0, 0})
	w.SetGPS(35.0844, -106.6504, 0)
	w.AddSpectrum([]uint32{1, 2, 3, 4, 5})

	_, err = w.AddLineAndNuclide("CO-60", 5.27, -1, "Y", 1173.2, -1, 99.85, -1)
	require.NoError(t, err)
	_, err = w.AddLineAndNuclide("CO-60", 5.27, -1, "Y", 1332.5, -1, 99.98, -1)
	require.NoError(t, err)
	_, err = w.AddLineAndNuclide("CS-137", 30.17, -1, "Y", 661.7, -1, 85.1, -1)
	require.NoError(t, err)

	buf, err := w.Finalize()
	require.NoError(t, err)
	return buf
}

func TestWriter_Finalize_ReaderRoundTrip(t *testing.T) {
	buf := buildSampleFile(t)

	r, err := NewReader(buf)
	require.NoError(t, err)

	title, err := r.SampleTitle()
	require.NoError(t, err)
	assert.Equal(t, "Field sample 1", title)

	det, err := r.DetectorInfo()
	require.NoError(t, err)
	assert.Equal(t, "NaI", det.Type)

	real, err := r.RealTime()
	require.NoError(t, err)
	assert.InDelta(t, 3600.0, real, 0.1)

	live, err := r.LiveTime()
	require.NoError(t, err)
	assert.InDelta(t, 3590.0, live, 0.1)

	cal, err := r.EnergyCalibration()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cal.Coefficients[1], 0.001)

	lat, lon, _, err := r.GPS()
	require.NoError(t, err)
	assert.InDelta(t, 35.0844, lat, 1e-6)
	assert.InDelta(t, -106.6504, lon, 1e-6)

	spectrum, err := r.Spectrum()
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3, 4, 5}, spectrum.Channels)

	lines, err := r.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.InDelta(t, 661.7, lines[0].Energy, 0.1, "lines should be sorted ascending by energy")
	assert.InDelta(t, 1173.2, lines[1].Energy, 0.1)
	assert.InDelta(t, 1332.5, lines[2].Energy, 0.1)

	nuclides, err := r.Nuclides()
	require.NoError(t, err)
	require.Len(t, nuclides, 2)

	acqTime, err := r.AcquisitionTime()
	require.NoError(t, err)
	assert.Equal(t, int64(2025), int64(acqTime.Year()))
}

func TestWriter_AddNuclide_Dedupes(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	idx1, err := w.AddNuclide(entity.Nuclide{Name: "CO-60", HalfLifeUnit: "Y"})
	require.NoError(t, err)
	idx2, err := w.AddNuclide(entity.Nuclide{Name: "CO-60", HalfLifeUnit: "Y"})
	require.NoError(t, err)
	assert.Equal(t, idx1, idx2)
}

func TestWriter_AddNuclide_InvalidName(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	_, err = w.AddNuclide(entity.Nuclide{Name: "123-456", HalfLifeUnit: "Y"})
	require.ErrorIs(t, err, errs.ErrNameParse)
}

func TestWriter_AddNuclide_InvalidHalfLifeUnit(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	_, err = w.AddNuclide(entity.Nuclide{Name: "CO-60", HalfLifeUnit: "PARSEC"})
	require.ErrorIs(t, err, errs.ErrUnsupportedUnit)
}

func TestWriter_AddLine_InvalidNuclideIndex(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	_, err = w.AddLine(entity.Line{NuclideIndex: 5})
	require.Error(t, err)
}

func TestWriter_AddNuclide_ExceedsLimit(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	for i := 0; i < maxDistinctNuclides; i++ {
		name := "X-" + string(rune('0'+i/100)) + string(rune('0'+(i/10)%10)) + string(rune('0'+i%10))
		_, err := w.AddNuclide(entity.Nuclide{Name: name, HalfLifeUnit: "Y"})
		require.NoError(t, err)
	}

	_, err = w.AddNuclide(entity.Nuclide{Name: "ZZ-999", HalfLifeUnit: "Y"})
	require.ErrorIs(t, err, errs.ErrUnsupportedLimit)
}

func TestWriter_Finalize_MultiBlockContinuationChains(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	const n = 130 // exceeds both MaxRecordsPerBlockNLINES (125) and MaxRecordsPerBlockNUCL (29)
	elements := []string{"CO", "CS", "NA", "BA", "EU", "AM", "RA", "TH", "U", "PU"}
	for i := 0; i < n; i++ {
		name := elements[i%len(elements)] + "-" + string(rune('0'+i%10)) + string(rune('0'+(i/10)%10)) + string(rune('0'+(i/100)%10))
		energy := float32(50 + i*5)
		_, err := w.AddLineAndNuclide(name, 5.0, -1, "Y", energy, -1, 90.0, -1)
		require.NoError(t, err)
	}

	buf, err := w.Finalize()
	require.NoError(t, err)

	r, err := NewReader(buf)
	require.NoError(t, err)

	lines, err := r.Lines()
	require.NoError(t, err)
	assert.Len(t, lines, n, "every NLINES continuation block's records must be recovered, not just the first block's")

	for i := 1; i < len(lines); i++ {
		assert.LessOrEqual(t, lines[i-1].Energy, lines[i].Energy, "lines must remain sorted across block boundaries")
	}

	nuclides, err := r.Nuclides()
	require.NoError(t, err)
	assert.Len(t, nuclides, n, "every NUCL continuation block's records must be recovered, not just the first block's")

	nlinesOffsets := r.offsets[block.KindNLINES]
	require.GreaterOrEqual(t, len(nlinesOffsets), 2, "130 lines must span at least two NLINES blocks")
	for i := 1; i < len(nlinesOffsets); i++ {
		assert.Equal(t, block.MaxBlockSizeNLINES, int(nlinesOffsets[i]-nlinesOffsets[i-1]),
			"consecutive NLINES block offsets must differ by the fixed NLINES block size")
	}

	nuclOffsets := r.offsets[block.KindNUCL]
	require.GreaterOrEqual(t, len(nuclOffsets), 2, "130 nuclides must span at least two NUCL blocks")
	for i := 1; i < len(nuclOffsets); i++ {
		assert.Equal(t, block.MaxBlockSizeNUCL, int(nuclOffsets[i]-nuclOffsets[i-1]),
			"consecutive NUCL block offsets must differ by the fixed NUCL block size")
	}
}

func TestWriter_Finalize_ResetsStagingState(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	w.SetSampleTitle("first")
	_, err = w.Finalize()
	require.NoError(t, err)

	buf, err := w.Finalize()
	require.NoError(t, err)

	r, err := NewReader(buf)
	require.NoError(t, err)
	_, err = r.SampleTitle()
	assert.Error(t, err, "second finalize should produce an empty file with no SAMP block")
}
