package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/quidome/photo-birthtime/pkg/birthtime"
	"github.com/quidome/photo-birthtime/pkg/copy"
	"github.com/quidome/photo-birthtime/pkg/plan"
	"github.com/quidome/photo-birthtime/pkg/retime"
	"github.com/quidome/photo-birthtime/pkg/scan"
	"github.com/quidome/photo-birthtime/pkg/tags"
)

const version = "0.1.0"

type options struct {
	input  string
	output string

	verbose bool
	dryRun  bool
	verify  bool

	exiftool string
	setFile  string
}

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "photo-birthtime",
		Short:         "Copy images and set their creation time from EXIF metadata",
		Long:          "Photo Birthtime copies images from an input directory to an output directory and sets each copy's creation, modification and access time to the capture time recorded in its EXIF or QuickTime metadata.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.PrintErrln("Error:", err)
		cmd.PrintErrln(cmd.UsageString())
		return &exitError{code: 2, err: err}
	})

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "./input1", "input directory containing images")
	flags.StringVarP(&opts.output, "output", "o", "./output1", "output directory to copy files to")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "resolve capture times without copying or changing files")
	flags.BoolVar(&opts.verify, "verify", false, "verify each copy against its source")
	flags.StringVar(&opts.exiftool, "exiftool", "", "path to the exiftool binary (default: look up on PATH)")
	flags.StringVar(&opts.setFile, "setfile", birthtime.DefaultTool, "utility used to set file creation time")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options) error {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Level: log.InfoLevel})
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if _, err := os.Stat(opts.input); err != nil {
		cmd.PrintErrf("Input folder not found: %s\n", opts.input)
		return &exitError{code: 2, err: errors.Wrap(err, "input folder")}
	}

	if !opts.dryRun {
		if _, err := os.Stat(opts.output); os.IsNotExist(err) {
			if err := os.MkdirAll(opts.output, 0o755); err != nil {
				return errors.Wrap(err, "create output directory")
			}
			logger.Info("Created output directory", "dir", opts.output)
		}
	}

	names, err := scan.Scan(os.DirFS(opts.input), ".", scan.DefaultOptions())
	if err != nil {
		return errors.Wrap(err, "scan input")
	}
	ops := plan.Plan(opts.input, opts.output, names)

	logger.Infof("Found %d files. Starting ExifTool...", len(ops))

	reader, closeReader := openReader(opts, logger)
	defer closeReader()

	p := retime.New(retime.Options{
		Reader: reader,
		Setter: birthtime.New(birthtime.Options{Tool: opts.setFile, Logger: logger}),
		Copy:   copy.Options{Overwrite: true, Verify: opts.verify},
		DryRun: opts.dryRun,
		Logger: logger,
	})

	_, summary := p.Run(ops)

	logger.Debug("Summary",
		"times_set", summary[retime.StateTimesSet],
		"times_set_failed", summary[retime.StateTimesSetFailed],
		"timestamp_resolved", summary[retime.StateTimestampResolved],
		"timestamp_absent", summary[retime.StateTimestampAbsent],
		"failed", summary[retime.StateFailed],
	)

	cmd.Println("Done.")
	return nil
}

// openReader starts the exiftool session, falling back to the built-in
// EXIF decoder when exiftool cannot be started.
func openReader(opts *options, logger *log.Logger) (tags.Reader, func()) {
	et, err := tags.OpenExiftool(tags.ExiftoolOptions{BinaryPath: opts.exiftool})
	if err != nil {
		logger.Warn("ExifTool unavailable, using built-in EXIF decoder", "err", err)
		return tags.Native{}, func() {}
	}

	return et, func() {
		if err := et.Close(); err != nil {
			logger.Warn("Could not stop ExifTool", "err", err)
		}
	}
}
