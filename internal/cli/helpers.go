package cli

import "path/filepath"

// resolveAgainst returns path unchanged when absolute, otherwise joined
// with base.
func resolveAgainst(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
