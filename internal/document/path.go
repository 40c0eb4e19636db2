package document

import (
	"path/filepath"
	"strings"
)

// DefaultSuffix is appended to the input file name (before the extension)
// when no explicit output path is given.
const DefaultSuffix = "_sorted"

// DerivedOutputPath builds the default destination for a normalized document:
// "flows.json" becomes "flows_sorted.json". Output is always JSON, so YAML
// inputs derive a .json destination. An empty suffix falls back to
// DefaultSuffix.
func DerivedOutputPath(input, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		ext = ".json"
	}
	return base + suffix + ext
}
