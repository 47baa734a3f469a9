package copy

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	shutil "github.com/termie/go-shutil"
	"gopkg.in/djherbis/times.v1"

	"github.com/quidome/photo-birthtime/pkg/plan"
)

var (
	// ErrDestinationExists is returned when attempting to copy to an existing file
	ErrDestinationExists = errors.New("destination file already exists")

	// ErrVerifyMismatch is returned when a verified copy differs from its source
	ErrVerifyMismatch = errors.New("copy does not match source")
)

// Options configures the copy behavior.
type Options struct {
	// Overwrite allows overwriting existing files.
	Overwrite bool

	// Verify re-reads source and copy and compares their digests.
	Verify bool
}

// File copies op.SourcePath to op.DestinationPath.
//
// It will:
// - Create the destination directory if it doesn't exist
// - Refuse to replace an existing file unless Overwrite is true
// - Copy content and permission bits
// - Carry the source access and modification times over to the copy
func File(op plan.Operation, opts Options) error {
	src, dst := op.SourcePath, op.DestinationPath

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(err, "create directory")
	}

	if !opts.Overwrite {
		if _, err := os.Lstat(dst); err == nil {
			return ErrDestinationExists
		}
	}

	srcTimes, err := times.Stat(src)
	if err != nil {
		return errors.Wrap(err, "stat source")
	}

	if _, err := shutil.Copy(src, dst, true); err != nil {
		return errors.Wrap(err, "copy content")
	}

	if err := os.Chtimes(dst, srcTimes.AccessTime(), srcTimes.ModTime()); err != nil {
		return errors.Wrap(err, "preserve times")
	}

	if opts.Verify {
		if err := verify(src, dst); err != nil {
			return err
		}
	}

	return nil
}

func verify(src, dst string) error {
	want, err := digest(src)
	if err != nil {
		return errors.Wrap(err, "hash source")
	}
	got, err := digest(dst)
	if err != nil {
		return errors.Wrap(err, "hash destination")
	}
	if got != want {
		return errors.Wrapf(ErrVerifyMismatch, "%s: %016x != %016x", dst, got, want)
	}
	return nil
}

func digest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
