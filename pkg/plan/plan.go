package plan

import (
	"path/filepath"
)

// Operation represents a planned copy from source to destination.
type Operation struct {
	SourcePath      string
	DestinationPath string
}

// Destination returns the path filename is copied to under destRoot.
// Copies keep their base name.
func Destination(destRoot string, filename string) string {
	return filepath.Join(destRoot, filepath.Base(filename))
}

// Plan pairs each name found in srcRoot with its destination.
//
// names are relative to srcRoot, as returned by scan.Scan.
func Plan(srcRoot string, destRoot string, names []string) []Operation {
	operations := make([]Operation, 0, len(names))

	for _, name := range names {
		operations = append(operations, Operation{
			SourcePath:      filepath.Join(srcRoot, filepath.FromSlash(name)),
			DestinationPath: Destination(destRoot, name),
		})
	}

	return operations
}
