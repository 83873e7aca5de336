// Package errs defines the error kinds returned by the camio codec.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a read or write would cross the
	// buffer boundary, or an offset computation overflows.
	ErrOutOfRange = errors.New("camio: out of range")

	// ErrInvalidEncoding is returned when a decoded nuclide record's
	// size field is smaller than the base nuclide record, and when a
	// line is staged for a nuclide index that has not been added.
	// Efficiency-point row markers and the TOC are not checked against
	// it: the geometry decoder stops at the first entry whose marker
	// does not match, and a TOC with no used slots parses without error.
	ErrInvalidEncoding = errors.New("camio: invalid encoding")

	// ErrInvalidDateTime is returned when encoding a min/max/zero
	// timestamp, none of which have a CAM-datetime representation.
	ErrInvalidDateTime = errors.New("camio: invalid datetime")

	// ErrMissingBlock is returned when an accessor is called for an
	// entity class whose block kind is absent from the TOC.
	ErrMissingBlock = errors.New("camio: missing block")

	// ErrUnsupportedUnit is returned for a half-life unit outside
	// {Y, D, H, M, S} (case-insensitive).
	ErrUnsupportedUnit = errors.New("camio: unsupported half-life unit")

	// ErrNameParse is returned when a nuclide name does not match
	// ^[A-Za-z]+-?\d+[A-Za-z]*$.
	ErrNameParse = errors.New("camio: nuclide name parse error")

	// ErrUnsupportedLimit is returned when a write would exceed a
	// structural limit of the format, such as the 256th distinct
	// nuclide in a file.
	ErrUnsupportedLimit = errors.New("camio: unsupported limit")
)

// RangeError carries the context of an out-of-range buffer access:
// what operation was being performed, the offset and length that were
// requested, and the buffer's actual length.
type RangeError struct {
	Context   string
	Offset    int
	Length    int
	BufferLen int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("camio: %s: offset %d, length %d exceeds buffer of %d bytes", e.Context, e.Offset, e.Length, e.BufferLen)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// NewRangeError builds a RangeError for the given access.
func NewRangeError(context string, offset, length, bufferLen int) *RangeError {
	return &RangeError{Context: context, Offset: offset, Length: length, BufferLen: bufferLen}
}

// BlockError wraps a failure tied to a specific block kind, such as a
// missing or malformed block encountered while decoding.
type BlockError struct {
	Kind  string
	Cause error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("camio: block %s: %v", e.Kind, e.Cause)
}

func (e *BlockError) Unwrap() error { return e.Cause }

// NewBlockError builds a BlockError for the given block kind.
func NewBlockError(kind string, cause error) *BlockError {
	return &BlockError{Kind: kind, Cause: cause}
}
