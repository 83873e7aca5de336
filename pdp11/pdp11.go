// Package pdp11 implements the mixed-endian numeric encodings inherited
// from the PDP-11 toolchain that produced the legacy container format:
// word-swapped float and double, modified-Julian datetime, and the
// two-mode duration encoding. The word swap is the only
// endianness-related logic in the codec; everything else is ordinary
// little-endian.
package pdp11

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/sandialabs/camio/errs"
)

// julianUnixOffsetSeconds is the gap between the modified-Julian epoch
// (1858-11-17) and the Unix epoch, in seconds.
const julianUnixOffsetSeconds = 3_506_716_800

// minDateTime and maxDateTime are Go's analog of the boost ptime
// min/max sentinels DateTime.cpp's is_special checks alongside the
// zero time: a timestamp at the representable extreme, not an actual
// measurement time.
var (
	minDateTime = time.Unix(math.MinInt64, 0).UTC()
	maxDateTime = time.Unix(math.MaxInt64, 0).UTC()
)

// secondsPerYear is the duration-mode year length used by both
// encoding and decoding, so that years-mode round-trips.
const secondsPerYear = 31_557_600.0

// EncodeFloat encodes f as a 4-byte CAM-float: f is scaled by 4, laid
// out as a native little-endian IEEE-754 float, then its two 16-bit
// words are swapped.
func EncodeFloat(f float32) [4]byte {
	var native [4]byte
	binary.LittleEndian.PutUint32(native[:], math.Float32bits(f*4))

	var out [4]byte
	copy(out[0:2], native[2:4])
	copy(out[2:4], native[0:2])
	return out
}

// DecodeFloat reverses EncodeFloat.
func DecodeFloat(b [4]byte) float32 {
	var native [4]byte
	copy(native[0:2], b[2:4])
	copy(native[2:4], b[0:2])
	bits := binary.LittleEndian.Uint32(native[:])
	return math.Float32frombits(bits) / 4
}

// EncodeDouble encodes d as an 8-byte CAM-double: d is scaled by 4,
// laid out as a native little-endian IEEE-754 double, then its four
// 16-bit words are reversed (word[i] of the encoding is word[3-i] of
// the native layout).
func EncodeDouble(d float64) [8]byte {
	var native [8]byte
	binary.LittleEndian.PutUint64(native[:], math.Float64bits(d*4))

	var out [8]byte
	for i := 0; i < 4; i++ {
		copy(out[i*2:i*2+2], native[(3-i)*2:(3-i)*2+2])
	}
	return out
}

// DecodeDouble reverses EncodeDouble.
func DecodeDouble(b [8]byte) float64 {
	var native [8]byte
	for i := 0; i < 4; i++ {
		copy(native[(3-i)*2:(3-i)*2+2], b[i*2:i*2+2])
	}
	bits := binary.LittleEndian.Uint64(native[:])
	return math.Float64frombits(bits) / 4
}

// EncodeDateTime encodes t as an 8-byte CAM-datetime: modified-Julian
// seconds since the epoch gap, scaled to 100ns ticks, as a little-endian
// uint64. Fails with ErrInvalidDateTime for the zero time or times so
// extreme they represent the special min/max sentinels.
func EncodeDateTime(t time.Time) ([8]byte, error) {
	var out [8]byte
	if t.IsZero() || t.Equal(minDateTime) || t.Equal(maxDateTime) {
		return out, errs.ErrInvalidDateTime
	}

	secFromEpoch := t.Unix()
	jSec := uint64(secFromEpoch+julianUnixOffsetSeconds) * 10_000_000
	binary.LittleEndian.PutUint64(out[:], jSec)
	return out, nil
}

// DecodeDateTime reverses EncodeDateTime. An all-zero encoding decodes
// to the zero time, matching the source's treatment of an absent
// timestamp.
func DecodeDateTime(b [8]byte) time.Time {
	raw := binary.LittleEndian.Uint64(b[:])
	if raw == 0 {
		return time.Time{}
	}

	ticks := int64(raw)
	secs := ticks / 10_000_000
	fracTicks := ticks % 10_000_000
	secFromEpoch := secs - julianUnixOffsetSeconds

	return time.Unix(secFromEpoch, 0).UTC().Add(time.Duration(fracTicks) * 100 * time.Nanosecond)
}

// EncodeDuration encodes a duration given in seconds as an 8-byte
// CAM-duration, selecting among the three representational modes by
// magnitude: negated 100-nanosecond ticks (1e7 per second) when they fit
// a signed 64-bit tick count,
// otherwise whole years, otherwise years scaled down by 1e6.
func EncodeDuration(seconds float64) [8]byte {
	var out [8]byte

	usec := seconds * 10_000_000
	if math.Abs(usec) <= math.MaxInt64 {
		ticks := int64(-usec)
		binary.LittleEndian.PutUint64(out[:], uint64(ticks))
		return out
	}

	years := seconds / secondsPerYear
	if math.Abs(years) <= math.MaxInt32 {
		binary.LittleEndian.PutUint32(out[0:4], uint32(int32(years)))
		out[7] = 0x80
		return out
	}

	scaledYears := int32(years / 1e6)
	binary.LittleEndian.PutUint32(out[0:4], uint32(scaledYears))
	out[4] = 0x01
	out[7] = 0x80
	return out
}

// DecodeDuration reverses EncodeDuration, returning the duration in
// seconds.
func DecodeDuration(b [8]byte) float64 {
	if b[7] != 0x80 {
		ticks := int64(binary.LittleEndian.Uint64(b[:]))
		return math.Abs(float64(ticks)) / 10_000_000
	}

	years := float64(int32(binary.LittleEndian.Uint32(b[0:4])))
	if b[4] == 0x01 {
		years *= 1e6
	}
	return years * secondsPerYear
}
