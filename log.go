package camio

import "github.com/sirupsen/logrus"

// DefaultLogger is the package-level logger used when a Reader or
// Writer is constructed without an explicit WithReaderLogger or
// WithWriterLogger option.
var DefaultLogger = logrus.New()

// SetLogger replaces the package-level default logger.
func SetLogger(lg *logrus.Logger) {
	DefaultLogger = lg
}
