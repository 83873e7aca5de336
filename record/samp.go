package record

import (
	"github.com/sandialabs/camio/block"
	"github.com/sandialabs/camio/internal/cursor"
)

// Sample-title and sample-time biases within a SAMP record, relative
// to the record's header length.
const (
	sampleTitleLen = 64
	sampleTimeBias = 0xB4
)

// GPS field biases, placed immediately past the sample-time field.
// Not given explicit offsets by the distilled format; chosen to avoid
// colliding with the documented title/time fields.
const (
	gpsLatitudeBias  = sampleTimeBias + 8
	gpsLongitudeBias = gpsLatitudeBias + 8
	gpsSpeedBias     = gpsLongitudeBias + 8
)

// DecodeSampleTitle decodes the 64-byte sample title.
func DecodeSampleTitle(c *cursor.Cursor, blockOffset int, h block.Header) (string, error) {
	loc := blockOffset + int(h.HeaderLen)
	return c.String("samp: title", loc, sampleTitleLen)
}

// EncodeSampleTitle writes title, space-padded to 64 bytes, into the
// writer's SAMP working copy.
func EncodeSampleTitle(c *cursor.Cursor, blockOffset int, h block.Header, title string) error {
	loc := blockOffset + int(h.HeaderLen)
	if len(title) > sampleTitleLen {
		title = title[:sampleTitleLen]
	}
	return c.PutBytes("samp: title", loc, []byte(padSpace(title, sampleTitleLen)))
}

// SampleTimeOffset returns the byte offset within the block of the
// sample-time CAM-datetime field.
func SampleTimeOffset(h block.Header) int {
	return int(h.HeaderLen) + sampleTimeBias
}

// EncodeGPS writes a GPS fix's latitude, longitude, and speed as three
// consecutive CAM-doubles into the writer's SAMP working copy.
func EncodeGPS(c *cursor.Cursor, blockOffset int, h block.Header, latitude, longitude, speed float64) error {
	base := blockOffset + int(h.HeaderLen)
	if err := writeCAMDouble(c, "samp: gps latitude", base+gpsLatitudeBias, latitude); err != nil {
		return err
	}
	if err := writeCAMDouble(c, "samp: gps longitude", base+gpsLongitudeBias, longitude); err != nil {
		return err
	}
	return writeCAMDouble(c, "samp: gps speed", base+gpsSpeedBias, speed)
}

// DecodeGPS reverses EncodeGPS.
func DecodeGPS(c *cursor.Cursor, blockOffset int, h block.Header) (latitude, longitude, speed float64, err error) {
	base := blockOffset + int(h.HeaderLen)
	if latitude, err = readCAMDouble(c, "samp: gps latitude", base+gpsLatitudeBias); err != nil {
		return
	}
	if longitude, err = readCAMDouble(c, "samp: gps longitude", base+gpsLongitudeBias); err != nil {
		return
	}
	speed, err = readCAMDouble(c, "samp: gps speed", base+gpsSpeedBias)
	return
}
