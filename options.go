package camio

import (
	"github.com/sirupsen/logrus"

	"github.com/sandialabs/camio/internal/options"
)

// DefaultKeyLineInterferenceLimit is the default energy tolerance, in
// keV, the key-line selector uses to detect interference with a
// candidate's immediate neighbors (§4.8).
const DefaultKeyLineInterferenceLimit = 2.0

// DefaultUncertaintyFraction is the default fallback fractional
// uncertainty a Writer's AddLineAndNuclide applies to a negative
// uncertainty argument, mirroring the source's ComputeUncertainty
// estimate. Decoders do not apply it.
const DefaultUncertaintyFraction = 0.1

// ReaderOption configures a Reader at construction time.
type ReaderOption = options.Option[*Reader]

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*Writer]

// WithReaderLogger overrides the package default logger for a single
// Reader instance.
func WithReaderLogger(lg *logrus.Logger) ReaderOption {
	return options.New(func(r *Reader) error {
		r.log = lg
		return nil
	})
}

// WithWriterLogger overrides the package default logger for a single
// Writer instance.
func WithWriterLogger(lg *logrus.Logger) WriterOption {
	return options.New(func(w *Writer) error {
		w.log = lg
		return nil
	})
}

// WithKeyLineInterferenceLimit overrides the energy tolerance (keV)
// the key-line selector uses when finalizing a Writer.
func WithKeyLineInterferenceLimit(keV float32) WriterOption {
	return options.New(func(w *Writer) error {
		w.keyLineInterferenceLimit = keV
		return nil
	})
}

// WithUncertaintyFraction overrides the fallback fractional
// uncertainty a Writer's AddLineAndNuclide applies to a negative
// uncertainty argument.
func WithUncertaintyFraction(fraction float64) WriterOption {
	return options.New(func(w *Writer) error {
		w.uncertaintyFraction = fraction
		return nil
	})
}
