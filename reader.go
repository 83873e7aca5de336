// Package camio implements a reader and writer for the legacy
// block-structured binary container used by gamma-ray spectroscopy
// software to persist a measurement and its analysis results.
package camio

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/errs"
	"github.com/sandialabs/camio/internal/cursor"
	"github.com/sandialabs/camio/internal/options"
	"github.com/sandialabs/camio/pdp11"
	"github.com/sandialabs/camio/record"
)

// Reader decodes a camio file held entirely in memory. It borrows its
// input buffer for its whole lifetime and never mutates it. Per-kind
// entity lists are decoded lazily on first access and cached
// thereafter; a failed decode leaves the Reader otherwise unchanged
// and is safe to retry (though it will fail again on the same input).
type Reader struct {
	buf     []byte
	cur     *cursor.Cursor
	toc     []block.TOCEntry
	offsets map[block.Kind][]uint32
	log     *logrus.Logger

	lines             []entity.Line
	linesDecoded      bool
	nuclides          []entity.Nuclide
	nuclidesDecoded   bool
	peaks             []entity.Peak
	peaksDecoded      bool
	efficiencyPoints  []entity.EfficiencyPoint
	efficiencyModel   block.EfficiencyModel
	efficiencyDecoded bool
	spectrum          entity.Spectrum
	spectrumDecoded   bool
}

// NewReader parses the file prolog and TOC of buf and returns a Reader
// over it. It does not decode any block bodies; those are decoded
// lazily by the corresponding accessor.
func NewReader(buf []byte, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{buf: buf, log: DefaultLogger}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	r.cur = cursor.New(buf)

	toc, err := block.ParseTOC(r.cur)
	if err != nil {
		return nil, err
	}
	r.toc = toc
	r.offsets = block.OffsetsByKind(toc)

	r.log.WithField("blocks", len(toc)).Debug("parsed block table of contents")

	return r, nil
}

func (r *Reader) blockOffsets(kind block.Kind) ([]uint32, error) {
	offs, ok := r.offsets[kind]
	if !ok || len(offs) == 0 {
		return nil, errs.NewBlockError(kind.String(), errs.ErrMissingBlock)
	}
	return offs, nil
}

// Lines decodes and concatenates every NLINES block's records, in TOC
// order, inserting each in ascending-energy order the way the source
// does on read — this reader folds every continuation chain into one
// flat, sorted list.
func (r *Reader) Lines() ([]entity.Line, error) {
	if r.linesDecoded {
		return r.lines, nil
	}

	offs, err := r.blockOffsets(block.KindNLINES)
	if err != nil {
		return nil, err
	}

	var lines []entity.Line
	for _, off := range offs {
		h, err := block.ParseHeader(r.cur, int(off))
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(h.RecordCount); i++ {
			loc := record.RecordLoc(int(off), h, i)
			line, err := record.DecodeLine(r.cur, loc)
			if err != nil {
				return nil, errs.NewBlockError("NLINES", err)
			}
			pos := sortedInsertPos(lines, line)
			lines = append(lines, entity.Line{})
			copy(lines[pos+1:], lines[pos:])
			lines[pos] = line
		}
	}

	r.lines = lines
	r.linesDecoded = true
	r.log.WithField("count", len(lines)).Debug("decoded gamma lines")
	return r.lines, nil
}

func sortedInsertPos(lines []entity.Line, l entity.Line) int {
	lo, hi := 0, len(lines)
	for lo < hi {
		mid := (lo + hi) / 2
		if entity.ByEnergy(lines[mid], l) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Nuclides decodes and concatenates every NUCL block's records. Each
// nuclide's Index is derived from the global line it lists first, by
// reading that line's own NuclideIndex field — the source does not
// store a nuclide's index directly in its own record.
func (r *Reader) Nuclides() ([]entity.Nuclide, error) {
	if r.nuclidesDecoded {
		return r.nuclides, nil
	}

	offs, err := r.blockOffsets(block.KindNUCL)
	if err != nil {
		return nil, err
	}

	lines, err := r.Lines()
	if err != nil {
		return nil, err
	}

	var nuclides []entity.Nuclide
	for _, off := range offs {
		h, err := block.ParseHeader(r.cur, int(off))
		if err != nil {
			return nil, err
		}

		recOffset := int(h.RecordAreaBias())
		lineListOffset := 0
		for i := 0; i < int(h.RecordCount); i++ {
			loc := int(off) + int(h.HeaderLen) + recOffset + lineListOffset
			nuc, err := record.DecodeNuclide(r.cur, loc)
			if err != nil {
				return nil, errs.NewBlockError("NUCL", err)
			}

			if len(nuc.LineIndices) > 0 {
				firstIdx := nuc.LineIndices[0]
				if firstIdx >= 1 && firstIdx <= len(lines) {
					nuc.Index = lines[firstIdx-1].NuclideIndex
				}
			}

			nuclides = append(nuclides, nuc)
			lineListOffset += int(block.RecordSizeNUCL) + len(nuc.LineIndices)*3
		}
	}

	r.nuclides = nuclides
	r.nuclidesDecoded = true
	r.log.WithField("count", len(nuclides)).Debug("decoded nuclides")
	return r.nuclides, nil
}

// Peaks decodes and concatenates every PEAK block's records.
func (r *Reader) Peaks() ([]entity.Peak, error) {
	if r.peaksDecoded {
		return r.peaks, nil
	}

	offs, err := r.blockOffsets(block.KindPEAK)
	if err != nil {
		return nil, err
	}

	var peaks []entity.Peak
	for _, off := range offs {
		h, err := block.ParseHeader(r.cur, int(off))
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(h.RecordCount); i++ {
			loc := record.PeakRecordLoc(int(off), h, i)
			p, err := record.DecodePeak(r.cur, loc)
			if err != nil {
				return nil, errs.NewBlockError("PEAK", err)
			}
			peaks = append(peaks, p)
		}
	}

	r.peaks = peaks
	r.peaksDecoded = true
	return r.peaks, nil
}

// EfficiencyPoints decodes the efficiency-curve entries of every GEOM
// block, concatenated in TOC order, together with the model name. §1 Non-goals excludes write-side GEOM generation; this
// is read-only.
func (r *Reader) EfficiencyPoints() ([]entity.EfficiencyPoint, error) {
	if err := r.decodeGeometry(); err != nil {
		return nil, err
	}
	return r.efficiencyPoints, nil
}

// EfficiencyModel reports the curve-fit family named in the GEOM
// block, degrading to EfficiencyModelUnknown rather than failing if
// the name is unrecognized.
func (r *Reader) EfficiencyModel() (block.EfficiencyModel, error) {
	if err := r.decodeGeometry(); err != nil {
		return block.EfficiencyModelUnknown, err
	}
	return r.efficiencyModel, nil
}

func (r *Reader) decodeGeometry() error {
	if r.efficiencyDecoded {
		return nil
	}

	offs, err := r.blockOffsets(block.KindGEOM)
	if err != nil {
		return err
	}

	var points []entity.EfficiencyPoint
	model := block.EfficiencyModelUnknown
	for _, off := range offs {
		h, err := block.ParseHeader(r.cur, int(off))
		if err != nil {
			return err
		}
		blockPoints, blockModel, err := record.DecodeGeometryBlock(r.cur, int(off), h)
		if err != nil {
			return errs.NewBlockError("GEOM", err)
		}
		points = append(points, blockPoints...)
		if blockModel != block.EfficiencyModelUnknown {
			model = blockModel
		} else {
			r.log.Warn("geometry block model name not recognized, degrading to Unknown")
		}
	}

	r.efficiencyPoints = points
	r.efficiencyModel = model
	r.efficiencyDecoded = true
	return nil
}

// Spectrum decodes the channel counts of every SPEC block,
// concatenated in TOC order.
func (r *Reader) Spectrum() (entity.Spectrum, error) {
	if r.spectrumDecoded {
		return r.spectrum, nil
	}

	offs, err := r.blockOffsets(block.KindSPEC)
	if err != nil {
		return entity.Spectrum{}, err
	}

	var spectrum entity.Spectrum
	for _, off := range offs {
		h, err := block.ParseHeader(r.cur, int(off))
		if err != nil {
			return entity.Spectrum{}, err
		}
		channels := int(h.EntrySize)
		dataStart := int(off) + int(h.EntryAreaOffset) + int(h.HeaderLen)
		s, err := record.DecodeSpectrum(r.cur, dataStart, channels)
		if err != nil {
			return entity.Spectrum{}, errs.NewBlockError("SPEC", err)
		}
		spectrum.Channels = append(spectrum.Channels, s.Channels...)
	}

	r.spectrum = spectrum
	r.spectrumDecoded = true
	return r.spectrum, nil
}

// SampleTitle decodes the 64-byte sample title from the first SAMP block.
func (r *Reader) SampleTitle() (string, error) {
	off, h, err := r.firstBlock(block.KindSAMP)
	if err != nil {
		return "", err
	}
	title, err := record.DecodeSampleTitle(r.cur, int(off), h)
	if err != nil {
		return "", errs.NewBlockError("SAMP", err)
	}
	return title, nil
}

// SampleTime decodes the sample timestamp from the first SAMP block.
func (r *Reader) SampleTime() (time.Time, error) {
	off, h, err := r.firstBlock(block.KindSAMP)
	if err != nil {
		return time.Time{}, err
	}
	b, err := r.cur.Slice("samp: sample time", int(off)+record.SampleTimeOffset(h), 8)
	if err != nil {
		return time.Time{}, errs.NewBlockError("SAMP", err)
	}
	var arr [8]byte
	copy(arr[:], b)
	return pdp11.DecodeDateTime(arr), nil
}

// DetectorInfo decodes the detector-identification fields embedded in
// the first ACQP block.
func (r *Reader) DetectorInfo() (entity.DetInfo, error) {
	off, h, err := r.firstBlock(block.KindACQP)
	if err != nil {
		return entity.DetInfo{}, err
	}
	info, err := record.DecodeDetInfo(r.cur, int(off), h)
	if err != nil {
		return entity.DetInfo{}, errs.NewBlockError("ACQP", err)
	}
	return info, nil
}

// AcquisitionTime decodes the acquisition start time from the first
// ACQP block.
func (r *Reader) AcquisitionTime() (time.Time, error) {
	off, h, err := r.firstBlock(block.KindACQP)
	if err != nil {
		return time.Time{}, err
	}
	arr, _, err := record.DecodeAcquisitionTime(r.cur, int(off), h)
	if err != nil {
		return time.Time{}, errs.NewBlockError("ACQP", err)
	}
	return pdp11.DecodeDateTime(arr), nil
}

// LiveTime decodes the live-time duration, in seconds, from the first
// ACQP block.
func (r *Reader) LiveTime() (float32, error) {
	off, h, err := r.firstBlock(block.KindACQP)
	if err != nil {
		return 0, err
	}
	v, err := record.DecodeLiveTime(r.cur, int(off), h)
	if err != nil {
		return 0, errs.NewBlockError("ACQP", err)
	}
	return v, nil
}

// RealTime decodes the real-time duration, in seconds, from the first
// ACQP block.
func (r *Reader) RealTime() (float32, error) {
	off, h, err := r.firstBlock(block.KindACQP)
	if err != nil {
		return 0, err
	}
	v, err := record.DecodeRealTime(r.cur, int(off), h)
	if err != nil {
		return 0, errs.NewBlockError("ACQP", err)
	}
	return v, nil
}

// EnergyCalibration decodes the four energy-calibration coefficients
// from the first ACQP block.
func (r *Reader) EnergyCalibration() (entity.Calibration, error) {
	off, h, err := r.firstBlock(block.KindACQP)
	if err != nil {
		return entity.Calibration{}, err
	}
	cal, err := record.DecodeEnergyCalibration(r.cur, int(off), h)
	if err != nil {
		return entity.Calibration{}, errs.NewBlockError("ACQP", err)
	}
	return cal, nil
}

// ShapeCalibration decodes the four shape-calibration coefficients
// from the first ACQP block.
func (r *Reader) ShapeCalibration() (entity.Calibration, error) {
	off, h, err := r.firstBlock(block.KindACQP)
	if err != nil {
		return entity.Calibration{}, err
	}
	cal, err := record.DecodeShapeCalibration(r.cur, int(off), h)
	if err != nil {
		return entity.Calibration{}, errs.NewBlockError("ACQP", err)
	}
	return cal, nil
}

// GPS decodes a latitude/longitude/speed fix from the first SAMP
// block. The original source only ever writes GPS data (AddGPSData,
// no matching getter); this accessor is a usability addition so data
// staged via Writer.SetGPS round-trips through this port.
func (r *Reader) GPS() (latitude, longitude, speed float64, err error) {
	off, h, err := r.firstBlock(block.KindSAMP)
	if err != nil {
		return 0, 0, 0, err
	}
	latitude, longitude, speed, err = record.DecodeGPS(r.cur, int(off), h)
	if err != nil {
		return 0, 0, 0, errs.NewBlockError("SAMP", err)
	}
	return latitude, longitude, speed, nil
}

func (r *Reader) firstBlock(kind block.Kind) (uint32, block.Header, error) {
	offs, err := r.blockOffsets(kind)
	if err != nil {
		return 0, block.Header{}, err
	}
	h, err := block.ParseHeader(r.cur, int(offs[0]))
	if err != nil {
		return 0, block.Header{}, err
	}
	return offs[0], h, nil
}
