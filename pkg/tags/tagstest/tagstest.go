// Package tagstest provides helpers for tests that need image files with
// real EXIF blocks.
package tagstest

import (
	"bytes"
	"encoding/binary"
)

const (
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003

	typeASCII = 2
	typeLong  = 4
)

// JPEG returns a minimal JPEG whose EXIF sub-IFD carries dateTimeOriginal.
func JPEG(dateTimeOriginal string) []byte {
	le := binary.LittleEndian
	val := append([]byte(dateTimeOriginal), 0)

	const (
		ifd0Offset    = 8
		exifIFDOffset = ifd0Offset + 2 + 12 + 4
		valueOffset   = exifIFDOffset + 2 + 12 + 4
	)

	var tiff bytes.Buffer
	tiff.WriteString("II")
	_ = binary.Write(&tiff, le, uint16(42))
	_ = binary.Write(&tiff, le, uint32(ifd0Offset))

	// IFD0: pointer to the EXIF sub-IFD.
	_ = binary.Write(&tiff, le, uint16(1))
	_ = binary.Write(&tiff, le, uint16(tagExifIFDPointer))
	_ = binary.Write(&tiff, le, uint16(typeLong))
	_ = binary.Write(&tiff, le, uint32(1))
	_ = binary.Write(&tiff, le, uint32(exifIFDOffset))
	_ = binary.Write(&tiff, le, uint32(0))

	// EXIF sub-IFD.
	_ = binary.Write(&tiff, le, uint16(1))
	_ = binary.Write(&tiff, le, uint16(tagDateTimeOriginal))
	_ = binary.Write(&tiff, le, uint16(typeASCII))
	_ = binary.Write(&tiff, le, uint32(len(val)))
	_ = binary.Write(&tiff, le, uint32(valueOffset))
	_ = binary.Write(&tiff, le, uint32(0))

	tiff.Write(val)

	app1 := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var jpg bytes.Buffer
	jpg.Write([]byte{0xFF, 0xD8})
	jpg.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&jpg, binary.BigEndian, uint16(len(app1)+2))
	jpg.Write(app1)
	jpg.Write([]byte{0xFF, 0xD9})
	return jpg.Bytes()
}
