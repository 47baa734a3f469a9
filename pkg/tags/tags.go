// Package tags reads embedded image metadata into a flat map of
// group-qualified tag names (for example "EXIF:DateTimeOriginal").
package tags

import (
	"github.com/pkg/errors"
)

// Tag names consulted when resolving capture time.
const (
	ExifDateTimeOriginal  = "EXIF:DateTimeOriginal"
	ExifDateTimeDigitized = "EXIF:DateTimeDigitized"
	QuickTimeCreationDate = "QuickTime:CreationDate"
	QuickTimeCreateDate   = "QuickTime:CreateDate"

	ExifOffsetTimeOriginal  = "EXIF:OffsetTimeOriginal"
	ExifOffsetTimeDigitized = "EXIF:OffsetTimeDigitized"
	ExifOffsetTime          = "EXIF:OffsetTime"
)

// ErrNoMetadata is returned when a reader produced nothing for a file.
var ErrNoMetadata = errors.New("no metadata")

// Map holds the tags reported for a single file.
type Map map[string]string

// Lookup returns the value stored under name and whether it was present.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Reader extracts tags from a file on disk.
//
// Implementations return ErrNoMetadata (possibly wrapped) when the file
// yields no tags at all.
type Reader interface {
	Read(path string) (Map, error)
}
