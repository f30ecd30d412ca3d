package extractor

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/ts-extractor/internal/ast"
)

// Boundary decides which declarations are extracted.
type Boundary struct {
	fe         Frontend
	projectDir string
	external   map[string]bool
	exclude    map[string]bool
	patterns   []glob.Glob
}

// NewBoundary compiles the scope rules of opts.
func NewBoundary(fe Frontend, opts Options) (*Boundary, error) {
	opts = opts.withDefaults()
	b := &Boundary{
		fe:         fe,
		projectDir: opts.ProjectDirectory,
		external:   make(map[string]bool, len(opts.ExternalPackages)),
		exclude:    make(map[string]bool, len(opts.Exclude)),
	}
	for _, name := range opts.ExternalPackages {
		b.external[name] = true
	}
	for _, e := range opts.Exclude {
		b.exclude[resolveExclude(b.projectDir, e)] = true
	}
	for _, pattern := range opts.ExcludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		b.patterns = append(b.patterns, g)
	}
	return b, nil
}

func resolveExclude(projectDir, entry string) string {
	if filepath.IsAbs(entry) {
		return filepath.ToSlash(filepath.Clean(entry))
	}
	return path.Join(projectDir, filepath.ToSlash(entry))
}

// ShouldVisit applies the scope rules in order; the first match wins.
func (b *Boundary) ShouldVisit(d *ast.Declaration) bool {
	if d == nil || d.File == nil {
		return false
	}
	file := d.File

	if pkg, ok := b.fe.ExternalPackage(file); ok {
		return b.external[pkg.Name]
	}
	if !isInside(file.FileName, b.projectDir) {
		return false
	}
	if b.exclude[file.FileName] {
		return false
	}
	if len(b.patterns) > 0 {
		rel := strings.TrimPrefix(strings.TrimPrefix(file.FileName, b.projectDir), "/")
		for _, g := range b.patterns {
			if g.Match(rel) {
				return false
			}
		}
	}
	return true
}

func isInside(fileName, dir string) bool {
	if dir == "" {
		return false
	}
	if fileName == dir {
		return true
	}
	return strings.HasPrefix(fileName, strings.TrimSuffix(dir, "/")+"/")
}
