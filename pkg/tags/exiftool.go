package tags

import (
	"fmt"
	"strconv"

	"github.com/barasher/go-exiftool"
	"github.com/pkg/errors"
)

// ExiftoolOptions configures OpenExiftool.
type ExiftoolOptions struct {
	// BinaryPath overrides the exiftool executable looked up on PATH.
	BinaryPath string
}

// Exiftool is a Reader backed by a single long-lived exiftool process.
//
// The process is started by OpenExiftool and must be released with Close.
type Exiftool struct {
	et *exiftool.Exiftool
}

// OpenExiftool starts exiftool in stay-open mode, reporting group-0 tag
// names and unconverted values.
func OpenExiftool(opts ExiftoolOptions) (*Exiftool, error) {
	initOpts := []func(*exiftool.Exiftool) error{
		exiftool.PrintGroupNames("0"),
		exiftool.NoPrintConversion(),
	}
	if opts.BinaryPath != "" {
		initOpts = append(initOpts, exiftool.SetExiftoolBinaryPath(opts.BinaryPath))
	}

	et, err := exiftool.NewExiftool(initOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "start exiftool")
	}
	return &Exiftool{et: et}, nil
}

// Read implements Reader.
func (e *Exiftool) Read(path string) (Map, error) {
	infos := e.et.ExtractMetadata(path)
	if len(infos) == 0 {
		return nil, ErrNoMetadata
	}

	info := infos[0]
	if info.Err != nil {
		return nil, errors.Wrapf(ErrNoMetadata, "exiftool: %v", info.Err)
	}
	if len(info.Fields) == 0 {
		return nil, ErrNoMetadata
	}

	m := make(Map, len(info.Fields))
	for k, v := range info.Fields {
		m[k] = valueString(v)
	}
	return m, nil
}

// Close stops the exiftool process.
func (e *Exiftool) Close() error {
	return e.et.Close()
}

// valueString renders a decoded JSON value the way exiftool printed it.
func valueString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
