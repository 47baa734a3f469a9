package tags

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rwcarlsen/goexif/exif"
)

// nativeFields maps goexif field names onto the tag names exiftool reports.
var nativeFields = []struct {
	field exif.FieldName
	name  string
}{
	{exif.DateTimeOriginal, ExifDateTimeOriginal},
	{exif.DateTimeDigitized, ExifDateTimeDigitized},
}

// Native is a Reader that decodes EXIF in-process.
//
// It only understands JPEG/TIFF style EXIF blocks and reports the capture
// date fields, so it is a fallback for when exiftool is not installed.
type Native struct{}

// Read implements Reader.
func (Native) Read(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// goexif drops the partially decoded result on any error.
		return nil, errors.Wrapf(ErrNoMetadata, "decode exif: %v", err)
	}

	m := make(Map, len(nativeFields))
	for _, nf := range nativeFields {
		tag, err := x.Get(nf.field)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			continue
		}
		m[nf.name] = s
	}
	if len(m) == 0 {
		return nil, ErrNoMetadata
	}
	return m, nil
}
