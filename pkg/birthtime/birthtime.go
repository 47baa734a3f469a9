// Package birthtime stamps a file's access, modification and creation times.
//
// Creation time is set through an external utility (SetFile on macOS);
// there is no fallback where that utility is missing.
package birthtime

import (
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gopkg.in/djherbis/times.v1"
)

const (
	// DefaultTool is the creation-time utility invoked by default.
	DefaultTool = "SetFile"

	// Layout is the date format SetFile expects for -d.
	Layout = "01/02/2006 15:04:05"
)

// ErrToolNotFound is returned when the creation-time utility is not installed.
var ErrToolNotFound = errors.New("creation time utility not found")

// Options configures a Setter.
type Options struct {
	// Tool is the utility name or path. Defaults to DefaultTool.
	Tool string

	// Location is the zone the utility interprets dates in.
	// If nil, time.Local is used.
	Location *time.Location

	Logger *log.Logger
}

// Setter applies a timestamp to files.
type Setter struct {
	tool   string
	loc    *time.Location
	logger *log.Logger
}

// New returns a Setter for opts.
func New(opts Options) *Setter {
	s := &Setter{tool: opts.Tool, loc: opts.Location, logger: opts.Logger}
	if s.tool == "" {
		s.tool = DefaultTool
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Result holds the outcome of each half of Set. Both are independent.
type Result struct {
	// TimesErr is set when access/modification time could not be changed.
	TimesErr error

	// BirthErr is set when the creation-time utility was missing or failed.
	BirthErr error
}

// OK reports whether every timestamp was applied.
func (r Result) OK() bool {
	return r.TimesErr == nil && r.BirthErr == nil
}

// Set stamps path with t.
func (s *Setter) Set(path string, t time.Time) Result {
	var res Result

	if err := os.Chtimes(path, t, t); err != nil {
		res.TimesErr = errors.Wrap(err, "set modification time")
	}

	res.BirthErr = s.setBirth(path, t)
	if res.BirthErr == nil {
		s.readBack(path, t)
	}

	return res
}

// Stamp renders t the way the creation-time utility expects it.
func (s *Setter) Stamp(t time.Time) string {
	return t.In(s.loc).Format(Layout)
}

func (s *Setter) setBirth(path string, t time.Time) error {
	bin, err := exec.LookPath(s.tool)
	if err != nil {
		return errors.Wrapf(ErrToolNotFound, "%s: %v", s.tool, err)
	}

	out, err := exec.Command(bin, "-d", s.Stamp(t), path).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return errors.Wrapf(err, "%s", s.tool)
		}
		return errors.Wrapf(err, "%s: %s", s.tool, msg)
	}
	return nil
}

// readBack logs the birth time the filesystem now reports, where it reports one.
func (s *Setter) readBack(path string, want time.Time) {
	ts, err := times.Stat(path)
	if err != nil || !ts.HasBirthTime() {
		return
	}
	got := ts.BirthTime()
	if got.Unix() != want.Unix() {
		s.logger.Debug("birth time differs after update", "file", path, "want", want, "got", got)
	}
}
