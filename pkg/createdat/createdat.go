package createdat

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/quidome/photo-birthtime/pkg/tags"
)

// Source describes how the offset of a CreatedAt timestamp was chosen.
//
// The priority order is:
//  1. offset_tag
//  2. embedded_offset
//  3. local
type Source string

const (
	SourceOffsetTag      Source = "offset_tag"
	SourceEmbeddedOffset Source = "embedded_offset"
	SourceLocal          Source = "local"
)

// DateLayout is the EXIF date-time layout.
const DateLayout = "2006:01:02 15:04:05"

// DateTags lists the date-bearing tags in priority order.
var DateTags = []string{
	tags.ExifDateTimeOriginal,
	tags.ExifDateTimeDigitized,
	tags.QuickTimeCreationDate,
	tags.QuickTimeCreateDate,
}

// OffsetTags lists the offset-bearing tags in priority order.
var OffsetTags = []string{
	tags.ExifOffsetTimeOriginal,
	tags.ExifOffsetTimeDigitized,
	tags.ExifOffsetTime,
}

// ErrNoDate is returned when none of the DateTags carries a value.
var ErrNoDate = errors.New("no date tag")

// DateError reports a date tag whose value could not be parsed.
type DateError struct {
	Tag string
	Raw string
	Err error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Tag, e.Raw, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

// Fields holds the tag values selected for resolution.
type Fields struct {
	DateTag string
	Date    string

	// OffsetTag is empty and Offset nil when no offset tag parsed.
	OffsetTag string
	Offset    *time.Location
}

// Result contains a resolved creation timestamp and its source.
type Result struct {
	CreatedAt time.Time
	Source    Source
	Fields    Fields
}

// Options configures Resolve.
type Options struct {
	// Location is used for dates that carry no offset.
	// If nil, time.Local is used.
	Location *time.Location
}

// Select picks the date and offset values from m.
//
// The first present date tag wins even when its value is malformed. The
// first offset tag whose value parses wins. ok is false when no date tag is
// present or the chosen one is empty.
func Select(m tags.Map) (fields Fields, ok bool) {
	for _, name := range DateTags {
		if v, found := m.Lookup(name); found {
			fields.DateTag = name
			fields.Date = v
			break
		}
	}
	if fields.Date == "" {
		return fields, false
	}

	for _, name := range OffsetTags {
		v, found := m.Lookup(name)
		if !found {
			continue
		}
		if loc, parsed := ParseOffset(v); parsed {
			fields.OffsetTag = name
			fields.Offset = loc
			break
		}
	}
	return fields, true
}

// Resolve returns the capture instant described by m.
func Resolve(m tags.Map, opts Options) (Result, error) {
	fields, ok := Select(m)
	if !ok {
		return Result{}, ErrNoDate
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	head, tail := splitDate(fields.Date)

	var (
		source = SourceLocal
		zone   = loc
	)
	if fields.Offset != nil {
		source, zone = SourceOffsetTag, fields.Offset
	} else if tail != "" {
		// A suffix that is not an offset leaves the date in local time.
		if embedded, parsed := ParseOffset(tail); parsed {
			source, zone = SourceEmbeddedOffset, embedded
		}
	}

	t, err := time.ParseInLocation(DateLayout, head, zone)
	if err != nil {
		return Result{}, &DateError{Tag: fields.DateTag, Raw: fields.Date, Err: err}
	}

	return Result{CreatedAt: t, Source: source, Fields: fields}, nil
}

// splitDate cuts s after the first len(DateLayout) characters.
func splitDate(s string) (head, tail string) {
	n := utf8.RuneCountInString(DateLayout)
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
