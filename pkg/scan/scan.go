package scan

import (
	"io/fs"
	"path"
	"strings"
	"time"
)

type Options struct {
	Extensions []string
}

func DefaultOptions() Options {
	return Options{
		Extensions: []string{".jpg", ".jpeg", ".cr3", ".hif", ".heic"},
	}
}

type Record struct {
	Path          string    `json:"path"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	ModTime       time.Time `json:"mod_time"`
}

// Scan lists the image files directly inside root, sorted by name.
func Scan(fsys fs.FS, root string, opts Options) ([]string, error) {
	records, err := ScanRecords(fsys, root, opts)
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(records))
	for _, r := range records {
		matches = append(matches, r.Path)
	}
	return matches, nil
}

// ScanRecords is Scan with size and modification time for each match.
//
// Subdirectories are not descended into. Symlinks are followed and kept
// only when they resolve to a regular file.
func ScanRecords(fsys fs.FS, root string, opts Options) ([]Record, error) {
	exts := normalizeExts(opts.Extensions)

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}

	var matches []Record
	for _, d := range entries {
		if !exts[suffix(d.Name())] {
			continue
		}

		rel := path.Join(root, d.Name())

		var info fs.FileInfo
		if d.Type()&fs.ModeSymlink != 0 {
			info, err = fs.Stat(fsys, rel)
		} else {
			info, err = d.Info()
		}
		if err != nil {
			// Dangling symlinks and entries removed mid-scan are not files.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		matches = append(matches, Record{
			Path:          d.Name(),
			FileSizeBytes: info.Size(),
			ModTime:       info.ModTime(),
		})
	}

	// fs.ReadDir already sorts by name.
	return matches, nil
}

// suffix returns the lower-cased extension of name. A leading dot alone
// does not start an extension, so ".jpg" has none.
func suffix(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}
