package block

// Fixed common preambles the legacy writer copies in immediately after
// the header of the first block in a NUCL or NLINES continuation
// chain (a continuation block carries none — see Header.RecordAreaBias).
// They hold unit labels and scale factors the record area itself
// doesn't encode. Byte layout grounded in CAMIO.cpp's nuclCommon and
// nlineCommon constants.

// NuclCommonPreamble repeats "uCi "/"cm3 " unit labels and a 4.0 scale
// factor for up to nine nuclide slots' MeanActivity/NuclideMDA fields,
// followed by a trailing pair of empty-quote markers.
var NuclCommonPreamble = buildNuclCommonPreamble()

func buildNuclCommonPreamble() [0x401]byte {
	var b [0x401]byte

	uCiLabel := [8]byte{'u', 'C', 'i', ' ', ' ', ' ', ' ', ' '}
	cm3Label := [8]byte{'c', 'm', '3', ' ', ' ', ' ', ' ', ' '}
	scale := [4]byte{0x80, 0x40, 0x00, 0x00}
	quoteMark := [8]byte{'"', '"', ' ', ' ', ' ', ' ', ' ', ' '}

	off := 0x10C
	for i := 0; i < 8; i++ {
		copy(b[off:], uCiLabel[:])
		off += len(uCiLabel)
	}
	for i := 0; i < 8; i++ {
		copy(b[off:], cm3Label[:])
		off += len(cm3Label)
	}
	for i := 0; i < 7; i++ {
		copy(b[off:], scale[:])
		off += len(scale)
	}

	copy(b[0x1B4:], uCiLabel[:])
	copy(b[0x1BC:], cm3Label[:])
	copy(b[0x1C4:], scale[:])

	copy(b[0x202:], quoteMark[:])
	copy(b[0x20A:], quoteMark[:])

	return b
}

// NlineCommonPreamble carries the "keV" energy-unit label and a 4.0
// scale factor shared by every line record in the chain.
var NlineCommonPreamble = [0x18]byte{
	'k', 'e', 'V', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ',
	0x80, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}
