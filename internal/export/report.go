package export

import "os"

// FileInfo is the size of one written artifact.
type FileInfo struct {
	Path  string
	Bytes int64
}

// KB returns the size in kibibytes.
func (f FileInfo) KB() float64 { return float64(f.Bytes) / 1024 }

// Stat returns size information for the paths that exist, in input order.
// Missing paths are skipped.
func Stat(paths ...string) []FileInfo {
	var out []FileInfo
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			continue
		}
		out = append(out, FileInfo{Path: p, Bytes: fi.Size()})
	}
	return out
}
