// Package retime copies image files and stamps each copy with the capture
// time found in its metadata.
//
// Files are handled one at a time. A failure on one file is logged and
// recorded in its Outcome; it never stops the batch.
package retime

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/quidome/photo-birthtime/pkg/birthtime"
	"github.com/quidome/photo-birthtime/pkg/copy"
	"github.com/quidome/photo-birthtime/pkg/createdat"
	"github.com/quidome/photo-birthtime/pkg/plan"
	"github.com/quidome/photo-birthtime/pkg/tags"
)

// State is the last state a file reached.
type State string

const (
	StateCopying           State = "copying"
	StateMetadataLookup    State = "metadata_lookup"
	StateTimestampResolved State = "timestamp_resolved"
	StateTimestampAbsent   State = "timestamp_absent"
	StateTimesSet          State = "times_set"
	StateTimesSetFailed    State = "times_set_failed"
	StateFailed            State = "failed"
)

// TimeSetter stamps a file with a capture time.
type TimeSetter interface {
	Set(path string, t time.Time) birthtime.Result
}

// Options configures a Processor.
type Options struct {
	Reader tags.Reader
	Setter TimeSetter

	Copy    copy.Options
	Resolve createdat.Options

	// DryRun resolves timestamps from the sources without copying or
	// touching any file.
	DryRun bool

	Logger *log.Logger
}

// Outcome is what happened to a single file.
type Outcome struct {
	Operation plan.Operation
	State     State

	// CreatedAt and Source are set once the timestamp resolved.
	CreatedAt time.Time
	Source    createdat.Source

	// Err is the failure that stopped or degraded processing, if any.
	Err error
}

// Summary counts outcomes by final state.
type Summary map[State]int

// Processor runs the copy, resolve and stamp steps for each file.
type Processor struct {
	opts   Options
	logger *log.Logger
}

// New returns a Processor for opts. Reader and Setter are required unless
// DryRun is set, in which case only Reader is.
func New(opts Options) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{opts: opts, logger: logger}
}

// Run processes every operation in order.
func (p *Processor) Run(ops []plan.Operation) ([]Outcome, Summary) {
	outcomes := make([]Outcome, 0, len(ops))
	summary := make(Summary)

	for _, op := range ops {
		out := p.Process(op)
		outcomes = append(outcomes, out)
		summary[out.State]++
	}

	return outcomes, summary
}

// Process handles a single file.
func (p *Processor) Process(op plan.Operation) Outcome {
	logger := p.logger.With("file", op.SourcePath)
	logger.Info("Processing")

	out := Outcome{Operation: op, State: StateCopying}

	if !p.opts.DryRun {
		if err := copy.File(op, p.opts.Copy); err != nil {
			out.State = StateFailed
			out.Err = errors.Wrap(err, "copy")
			logger.Error("Copy failed", "err", err)
			return out
		}
	}

	out.State = StateMetadataLookup
	m, err := p.opts.Reader.Read(op.SourcePath)
	if err != nil {
		out.State = StateTimestampAbsent
		out.Err = errors.Wrap(err, "read metadata")
		logger.Warn("Could not read metadata", "err", err)
		return out
	}

	res, err := createdat.Resolve(m, p.opts.Resolve)
	if err != nil {
		out.State = StateTimestampAbsent
		out.Err = err

		var dateErr *createdat.DateError
		if errors.As(err, &dateErr) {
			logger.Error("Error parsing date", "tag", dateErr.Tag, "raw", dateErr.Raw, "err", dateErr.Err)
		} else {
			logger.Warn("No valid EXIF dates found")
		}
		return out
	}

	out.State = StateTimestampResolved
	out.CreatedAt = res.CreatedAt
	out.Source = res.Source
	logger.Debug("Resolved capture time",
		"date_tag", res.Fields.DateTag,
		"raw", res.Fields.Date,
		"offset_tag", res.Fields.OffsetTag,
		"source", res.Source,
		"at", res.CreatedAt,
	)

	if p.opts.DryRun {
		logger.Info("Would set date", "at", res.CreatedAt)
		return out
	}

	set := p.opts.Setter.Set(op.DestinationPath, res.CreatedAt)
	if set.TimesErr != nil {
		logger.Warn("Could not set modification time", "err", set.TimesErr)
	}
	if set.BirthErr != nil {
		if errors.Is(set.BirthErr, birthtime.ErrToolNotFound) {
			logger.Warn("Creation time utility not found; creation time unchanged", "err", set.BirthErr)
		} else {
			logger.Warn("Creation time utility failed; is Xcode CLI installed?", "err", set.BirthErr)
		}
	}

	if !set.OK() {
		out.State = StateTimesSetFailed
		out.Err = firstErr(set.TimesErr, set.BirthErr)
		return out
	}

	out.State = StateTimesSet
	logger.Info("Date updated", "at", res.CreatedAt)
	return out
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
