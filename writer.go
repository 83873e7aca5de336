package camio

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/errs"
	"github.com/sandialabs/camio/internal/cursor"
	"github.com/sandialabs/camio/internal/options"
	"github.com/sandialabs/camio/internal/pool"
	"github.com/sandialabs/camio/pdp11"
	"github.com/sandialabs/camio/record"
)

// maxDistinctNuclides is the structural limit named in §8 Boundaries:
// a 256th distinct nuclide name fails with ErrUnsupportedLimit.
const maxDistinctNuclides = 255

// Calibration field biases, mirrored from the record package's own
// unexported constants since they're needed on the writer's side too.
const (
	energyCalibrationBias = 0x44
	shapeCalibrationBias  = 0xDC
)

// Writer accumulates domain entities added by the caller and, on
// Finalize, packs them into blocks and emits a complete file. A Writer
// is the exclusive owner of its staging state; Finalize clears it.
type Writer struct {
	log *logrus.Logger

	keyLineInterferenceLimit float32
	uncertaintyFraction      float64

	lines            []entity.Line
	nuclides         []entity.Nuclide
	nuclideIndexOf   map[string]int // 1-based index into nuclides, keyed by uppercased name

	spectrum    entity.Spectrum
	hasSpectrum bool

	sampleTitle string
	hasTitle    bool

	gpsLat, gpsLon, gpsSpeed float64
	gpsTime                  time.Time
	hasGPS                   bool
	hasGPSTime               bool

	detectorType string
	detInfo      entity.DetInfo

	acquisitionTime time.Time
	hasAcqTime      bool

	realTime, liveTime float32

	energyCal, shapeCal entity.Calibration
}

// NewWriter constructs an empty Writer.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		log:                      DefaultLogger,
		keyLineInterferenceLimit: DefaultKeyLineInterferenceLimit,
		uncertaintyFraction:      DefaultUncertaintyFraction,
		nuclideIndexOf:           map[string]int{},
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}
	return w, nil
}

// SetDetectorType patches the writer's own working copy of the ACQP
// detector-type fields, per the §9 instruction to move this off the
// source's module-scope mutable common preamble and onto an
// instance-owned copy.
func (w *Writer) SetDetectorType(detectorType string) {
	w.detectorType = detectorType
	w.detInfo.Type = detectorType
}

// SetAcquisitionTime stages the acquisition start time.
func (w *Writer) SetAcquisitionTime(t time.Time) {
	w.acquisitionTime = t
	w.hasAcqTime = true
}

// SetRealTime stages the real-time duration, in seconds.
func (w *Writer) SetRealTime(seconds float32) { w.realTime = seconds }

// SetLiveTime stages the live-time duration, in seconds.
func (w *Writer) SetLiveTime(seconds float32) { w.liveTime = seconds }

// SetSampleTitle stages the sample title.
func (w *Writer) SetSampleTitle(title string) {
	w.sampleTitle = title
	w.hasTitle = true
}

// SetGPS stages a GPS fix with no associated timestamp.
func (w *Writer) SetGPS(latitude, longitude, speed float64) {
	w.gpsLat, w.gpsLon, w.gpsSpeed = latitude, longitude, speed
	w.hasGPS = true
	w.hasGPSTime = false
}

// SetGPSWithTime stages a GPS fix along with the time it was acquired.
func (w *Writer) SetGPSWithTime(latitude, longitude, speed float64, t time.Time) {
	w.gpsLat, w.gpsLon, w.gpsSpeed = latitude, longitude, speed
	w.gpsTime = t
	w.hasGPS = true
	w.hasGPSTime = true
}

// SetEnergyCalibration stages the four energy-calibration coefficients.
func (w *Writer) SetEnergyCalibration(coefficients [4]float32) {
	w.energyCal = entity.Calibration{Coefficients: coefficients}
}

// SetShapeCalibration stages the four shape-calibration coefficients.
func (w *Writer) SetShapeCalibration(coefficients [4]float32) {
	w.shapeCal = entity.Calibration{Coefficients: coefficients}
}

// AddSpectrum stages a 32-bit channel-count spectrum.
func (w *Writer) AddSpectrum(channels []uint32) {
	cp := make([]uint32, len(channels))
	copy(cp, channels)
	w.spectrum = entity.Spectrum{Channels: cp}
	w.hasSpectrum = true
}

// AddSpectrumFloat stages a spectrum given as float channel counts,
// rounding each to the nearest uint32.
func (w *Writer) AddSpectrumFloat(channels []float32) {
	cp := make([]uint32, len(channels))
	for i, v := range channels {
		if v < 0 {
			v = 0
		}
		cp[i] = uint32(v + 0.5)
	}
	w.spectrum = entity.Spectrum{Channels: cp}
	w.hasSpectrum = true
}

// AddNuclide stages nuc, assigning it the next sequential index if it
// is new (by name), or returning the existing index. Fails with
// ErrUnsupportedLimit past the 255th distinct nuclide.
func (w *Writer) AddNuclide(nuc entity.Nuclide) (int, error) {
	key := strings.ToUpper(nuc.Name)
	if idx, ok := w.nuclideIndexOf[key]; ok {
		return idx, nil
	}
	if len(w.nuclides) >= maxDistinctNuclides {
		return 0, errs.ErrUnsupportedLimit
	}

	element, mass, meta, ok := entity.DecomposeIsotopeName(nuc.Name)
	if !ok {
		return 0, errs.NewBlockError("NUCL", errs.ErrNameParse)
	}
	nuc.Element, nuc.MassNumber, nuc.Metastable = element, mass, meta

	if _, err := record.HalfLifeSecondsPerUnit(nuc.HalfLifeUnit); err != nil {
		return 0, errs.NewBlockError("NUCL", err)
	}

	nuc.Index = uint8(len(w.nuclides) + 1)
	w.nuclides = append(w.nuclides, nuc)
	idx := len(w.nuclides)
	w.nuclideIndexOf[key] = idx
	return idx, nil
}

// AddLine stages line, inserting it into the staging list at the
// position preserving ascending-energy order, and appends the line's
// resulting 1-based global position to its owning nuclide's embedded
// index list.
func (w *Writer) AddLine(line entity.Line) (int, error) {
	if int(line.NuclideIndex) < 1 || int(line.NuclideIndex) > len(w.nuclides) {
		return 0, errs.NewBlockError("NLINES", errs.ErrInvalidEncoding)
	}

	pos := sort.Search(len(w.lines), func(i int) bool {
		return !entity.ByEnergy(w.lines[i], line)
	})

	w.lines = append(w.lines, entity.Line{})
	copy(w.lines[pos+1:], w.lines[pos:])
	w.lines[pos] = line

	// Every line index at or past the insertion point shifted up by
	// one; the nuclides' own embedded index lists track the
	// now-stale positions and must be renumbered.
	for i := range w.nuclides {
		for j, li := range w.nuclides[i].LineIndices {
			if li-1 >= pos {
				w.nuclides[i].LineIndices[j] = li + 1
			}
		}
	}

	globalIndex := pos + 1
	w.nuclides[line.NuclideIndex-1].LineIndices = append(w.nuclides[line.NuclideIndex-1].LineIndices, globalIndex)

	return globalIndex, nil
}

// AddLineAndNuclide stages both a line and, if its name is new, the
// nuclide that owns it, in one call — mirroring the source's
// ergonomic overload. Uncertainty arguments below zero fall back to the
// writer's uncertainty fraction (DefaultUncertaintyFraction unless set
// by WithUncertaintyFraction) of the primary value, matching
// ComputeUncertainty.
func (w *Writer) AddLineAndNuclide(nuclideName string, halfLife, halfLifeUnc float64, halfLifeUnit string, energy, energyUnc, yield, yieldUnc float32) (lineIndex int, err error) {
	nucIdx, err := w.AddNuclide(entity.Nuclide{
		Name:                nuclideName,
		HalfLife:            halfLife,
		HalfLifeUncertainty: w.resolveUncertainty(halfLife, halfLifeUnc),
		HalfLifeUnit:        halfLifeUnit,
	})
	if err != nil {
		return 0, err
	}

	line := entity.Line{
		Energy:               energy,
		EnergyUncertainty:    float32(w.resolveUncertainty(float64(energy), float64(energyUnc))),
		Abundance:            yield,
		AbundanceUncertainty: float32(w.resolveUncertainty(float64(yield), float64(yieldUnc))),
		NuclideIndex:         uint8(nucIdx),
	}
	return w.AddLine(line)
}

func (w *Writer) resolveUncertainty(value, uncertainty float64) float64 {
	if uncertainty >= 0 {
		return uncertainty
	}
	return value * w.uncertaintyFraction
}

// Finalize materializes the staged state into a complete file buffer
// and clears the writer's staging state. The returned buffer is owned
// by the caller.
func (w *Writer) Finalize() ([]byte, error) {
	runID := uuid.NewString()
	log := w.log.WithField("write_run", runID)

	stagedLines := append([]entity.Line(nil), w.lines...)
	assignKeyLines(w.lines, w.keyLineInterferenceLimit)

	var bodies []blockBody

	bodies = append(bodies, w.buildACQP())
	if w.hasTitle || w.hasGPS || w.hasSpectrum {
		bodies = append(bodies, w.buildSAMP())
	}
	bodies = append(bodies, w.buildPROC())
	if w.hasSpectrum {
		bodies = append(bodies, w.buildSPEC())
	}
	bodies = append(bodies, w.buildNLINESBlocks()...)
	bodies = append(bodies, w.buildNUCLBlocks()...)

	log.WithField("blocks", len(bodies)).Debug("laid out blocks for finalize")

	out, err := assembleFile(bodies)
	if err != nil {
		w.lines = stagedLines
		return nil, err
	}

	*w = Writer{
		log:                      w.log,
		keyLineInterferenceLimit: w.keyLineInterferenceLimit,
		uncertaintyFraction:      w.uncertaintyFraction,
		nuclideIndexOf:           map[string]int{},
	}

	return out, nil
}

// blockBody is one laid-out block's header plus the bytes that follow
// it, ready to be concatenated into the final file.
type blockBody struct {
	header block.Header
	data   []byte // full block body including the 0x30-byte header
}

func (w *Writer) buildACQP() blockBody {
	tmpl := block.Templates[block.KindACQP]
	bb := pool.GetBlockBuffer()
	size := block.MaxBlockSizeACQP
	bb.SetLength(size)
	c := cursor.New(bb.B)

	h := block.Header{
		Kind:              block.KindACQP,
		HasCommon:         block.HasCommonFirstInChain,
		HeaderLen:         block.HeaderLength,
		RecordCount:       1,
		RecordSize:        tmpl.RecordSize,
		RecAreaOffset:     tmpl.RecAreaOffset,
		TabularAreaOffset: tmpl.TabularAreaOffset,
		EntryAreaOffset:   tmpl.EntryAreaOffset,
		EntrySize:         tmpl.EntrySize,
		BlockSize:         uint16(size),
		ComputedSize:      uint16(size),
	}
	_ = block.WriteHeader(c, 0, h)
	for offset, v := range tmpl.Extra {
		_ = c.PutU16("acqp: template extra", offset, v)
	}

	_ = record.EncodeCalibration(c, 0, h, energyCalibrationBias, w.energyCal)
	_ = record.EncodeCalibration(c, 0, h, shapeCalibrationBias, w.shapeCal)

	if w.hasAcqTime {
		if arr, err := pdp11.EncodeDateTime(w.acquisitionTime); err == nil {
			_ = record.EncodeAcquisitionTime(c, 0, h, arr)
		} else {
			w.log.WithError(err).Warn("acquisition time not encodable, leaving field zero")
		}
	}
	_ = record.EncodeRealTime(c, 0, h, w.realTime)
	_ = record.EncodeLiveTime(c, 0, h, w.liveTime)
	_ = record.EncodeDetInfo(c, 0, h, w.detInfo)

	data := append([]byte(nil), bb.B...)
	pool.PutBlockBuffer(bb)

	return blockBody{header: h, data: data}
}

// sampMinSize covers the title, sample-time, and GPS fields SAMP
// blocks this writer emits may carry.
const sampMinSize = block.HeaderLength + 0xB4 + 8 + 24

func (w *Writer) buildSAMP() blockBody {
	tmpl := block.Templates[block.KindSAMP]
	size := block.HeaderLength + int(tmpl.RecordSize)
	if size < sampMinSize {
		size = sampMinSize
	}
	buf := make([]byte, size)
	c := cursor.New(buf)

	h := block.Header{
		Kind:        block.KindSAMP,
		HasCommon:   block.HasCommonFirstInChain,
		HeaderLen:   block.HeaderLength,
		RecordCount: 1,
		RecordSize:  uint16(size - block.HeaderLength),
		BlockSize:   uint16(size),
		ComputedSize: uint16(size),
	}
	_ = block.WriteHeader(c, 0, h)

	if w.hasTitle {
		_ = record.EncodeSampleTitle(c, 0, h, w.sampleTitle)
	}
	if w.hasGPSTime {
		if arr, err := pdp11.EncodeDateTime(w.gpsTime); err == nil {
			_ = c.PutBytes("samp: sample time", record.SampleTimeOffset(h), arr[:])
		}
	}
	if w.hasGPS {
		_ = record.EncodeGPS(c, 0, h, w.gpsLat, w.gpsLon, w.gpsSpeed)
	}

	return blockBody{header: h, data: buf}
}

func (w *Writer) buildPROC() blockBody {
	size := block.HeaderLength
	buf := make([]byte, size)
	c := cursor.New(buf)
	h := block.Header{
		Kind:         block.KindPROC,
		HasCommon:    block.HasCommonFirstInChain,
		HeaderLen:    block.HeaderLength,
		BlockSize:    uint16(size),
		ComputedSize: uint16(size),
	}
	_ = block.WriteHeader(c, 0, h)
	return blockBody{header: h, data: buf}
}

func (w *Writer) buildSPEC() blockBody {
	channels := len(w.spectrum.Channels)
	padded := block.SpecChannelEntrySize(channels)
	size := block.HeaderLength + padded*4
	buf := make([]byte, size)
	c := cursor.New(buf)

	h := block.Header{
		Kind:            block.KindSPEC,
		HasCommon:       block.HasCommonFirstInChain,
		HeaderLen:       block.HeaderLength,
		RecordCount:     1,
		EntryAreaOffset: 0,
		EntrySize:       uint16(channels),
		BlockSize:       uint16(size),
		ComputedSize:    uint16(size),
	}
	_ = block.WriteHeader(c, 0, h)
	if block.SpecHasQuadSpecialFlag(padded) {
		buf[0x08] = 0x01
	}
	_ = record.EncodeSpectrum(c, block.HeaderLength, w.spectrum)

	return blockBody{header: h, data: buf}
}

func (w *Writer) buildNLINESBlocks() []blockBody {
	tmpl := block.Templates[block.KindNLINES]
	var blocks []blockBody
	for start, blockNum := 0, 0; start < len(w.lines); start, blockNum = start+block.MaxRecordsPerBlockNLINES, blockNum+1 {
		end := start + block.MaxRecordsPerBlockNLINES
		if end > len(w.lines) {
			end = len(w.lines)
		}
		chunk := w.lines[start:end]

		buf := make([]byte, block.MaxBlockSizeNLINES)
		c := cursor.New(buf)

		firstInChain := blockNum == 0
		hasCommon := block.HasCommonFirstInChain
		if !firstInChain {
			hasCommon = block.HasCommonContinuation
		}
		bias := 0
		if firstInChain {
			bias = int(tmpl.RecAreaOffset)
		}
		computedSize := block.HeaderLength + bias + len(chunk)*block.RecordSizeNLINES

		h := block.Header{
			Kind:          block.KindNLINES,
			HasCommon:     hasCommon,
			HeaderLen:     block.HeaderLength,
			BlockNo:       block.BlockNoLinkage(blockNum),
			RecordCount:   uint16(len(chunk)),
			RecordSize:    block.RecordSizeNLINES,
			RecAreaOffset: tmpl.RecAreaOffset,
			BlockSize:     block.MaxBlockSizeNLINES,
			ComputedSize:  uint16(computedSize),
		}
		_ = block.WriteHeader(c, 0, h)

		if firstInChain {
			_ = c.PutBytes("nlines: common preamble", block.HeaderLength, block.NlineCommonPreamble[:])
		}

		for i, line := range chunk {
			rec, err := record.EncodeLine(line)
			if err != nil {
				w.log.WithError(err).Warn("failed to encode line record, leaving zeroed")
				continue
			}
			loc := record.RecordLoc(0, h, i)
			_ = c.PutBytes("nlines: record", loc, rec)
		}

		blocks = append(blocks, blockBody{header: h, data: buf})
	}
	return blocks
}

func (w *Writer) buildNUCLBlocks() []blockBody {
	tmpl := block.Templates[block.KindNUCL]
	var blocks []blockBody
	for start, blockNum := 0, 0; start < len(w.nuclides); start, blockNum = start+block.MaxRecordsPerBlockNUCL, blockNum+1 {
		end := start + block.MaxRecordsPerBlockNUCL
		if end > len(w.nuclides) {
			end = len(w.nuclides)
		}
		chunk := w.nuclides[start:end]

		buf := make([]byte, block.MaxBlockSizeNUCL)
		c := cursor.New(buf)

		firstInChain := blockNum == 0
		hasCommon := block.HasCommonFirstInChain
		if !firstInChain {
			hasCommon = block.HasCommonContinuation
		}
		bias := 0
		if firstInChain {
			bias = int(tmpl.RecAreaOffset)
		}

		recSize := 0
		totalLines := 0
		for _, n := range chunk {
			recSize += block.RecordSizeNUCL
			totalLines += len(n.LineIndices)
		}
		computedSize := block.HeaderLength + recSize + bias + 0x0003
		if totalLines > 0 {
			computedSize += (totalLines - 1) * 3
		}

		h := block.Header{
			Kind:          block.KindNUCL,
			HasCommon:     hasCommon,
			HeaderLen:     block.HeaderLength,
			BlockNo:       block.BlockNoLinkage(blockNum),
			RecordCount:   uint16(len(chunk)),
			RecordSize:    block.RecordSizeNUCL,
			RecAreaOffset: tmpl.RecAreaOffset,
			BlockSize:     block.MaxBlockSizeNUCL,
			ComputedSize:  uint16(computedSize),
		}
		_ = block.WriteHeader(c, 0, h)

		if firstInChain {
			_ = c.PutBytes("nucl: common preamble", block.HeaderLength, block.NuclCommonPreamble[:])
		}

		offset := block.HeaderLength + bias
		for _, n := range chunk {
			sorted := append([]int(nil), n.LineIndices...)
			sort.Ints(sorted)
			n.LineIndices = sorted

			rec, err := record.EncodeNuclide(n)
			if err != nil {
				w.log.WithError(err).Warn("failed to encode nuclide record, leaving zeroed")
				continue
			}
			_ = c.PutBytes("nucl: record", offset, rec)
			offset += len(rec)
		}

		blocks = append(blocks, blockBody{header: h, data: buf})
	}
	return blocks
}

// assembleFile lays out the prolog, writes each block's header into
// its TOC slot, concatenates the block bodies starting at 0x800, and
// patches the total file size into the prolog.
func assembleFile(bodies []blockBody) ([]byte, error) {
	if len(bodies) > block.TOCSlots {
		return nil, errs.NewBlockError("TOC", errs.ErrUnsupportedLimit)
	}

	totalSize := block.PrologSize
	for _, b := range bodies {
		totalSize += len(b.data)
	}

	out := make([]byte, totalSize)
	c := cursor.New(out)

	offset := block.PrologSize
	for i, b := range bodies {
		b.header.FileOffset = uint32(offset)
		_ = block.WriteHeader(cursor.New(b.data), 0, b.header)

		if err := c.PutBytes("assemble: block body", offset, b.data); err != nil {
			return nil, err
		}
		if err := c.PutBytes("assemble: toc slot", block.TOCBase+i*block.TOCStride, b.data[:block.HeaderLength]); err != nil {
			return nil, err
		}

		offset += len(b.data)
	}

	_ = c.PutU32("assemble: total file size", 0x0A, uint32(totalSize))

	return out, nil
}
