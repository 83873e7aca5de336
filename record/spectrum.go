package record

import (
	"encoding/binary"

	"github.com/sandialabs/camio/entity"
	"github.com/sandialabs/camio/internal/cursor"
)

// DecodeSpectrum reads channels 32-bit unsigned little-endian channel
// counts starting at dataStart.
func DecodeSpectrum(c *cursor.Cursor, dataStart, channels int) (entity.Spectrum, error) {
	var s entity.Spectrum

	b, err := c.Slice("spectrum: channel data", dataStart, channels*4)
	if err != nil {
		return s, err
	}

	s.Channels = make([]uint32, channels)
	for i := range s.Channels {
		s.Channels[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}

	return s, nil
}

// EncodeSpectrum writes spectrum's channels as 32-bit unsigned
// little-endian values starting at dataStart in c.
func EncodeSpectrum(c *cursor.Cursor, dataStart int, spectrum entity.Spectrum) error {
	b, err := c.Slice("spectrum: channel data", dataStart, len(spectrum.Channels)*4)
	if err != nil {
		return err
	}
	for i, ch := range spectrum.Channels {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], ch)
	}
	return nil
}
