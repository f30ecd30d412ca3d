package extractor

import (
	"path/filepath"
	"strings"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// Locate returns the output location of a declaration.
func (r *Resolver) Locate(d *ast.Declaration) *contracts.LocationDto {
	if d == nil || d.File == nil {
		return nil
	}
	line, char := d.File.LineAndCharacter(d.Pos)
	loc := &contracts.LocationDto{
		FileName:  r.RelativeFileName(d.File.FileName),
		Line:      line,
		Character: char,
	}
	if pkg, ok := r.fe.ExternalPackage(d.File); ok {
		loc.FileName = pkg.Specifier
		loc.IsExternalPackage = true
	}
	return loc
}

// RelativeFileName renders fileName relative to the project directory in
// the output path style.
func (r *Resolver) RelativeFileName(fileName string) string {
	rel := fileName
	if r.opts.ProjectDirectory != "" {
		if p, err := filepath.Rel(filepath.FromSlash(r.opts.ProjectDirectory), filepath.FromSlash(fileName)); err == nil {
			rel = p
		}
	}
	return StandardizeRelativePath(filepath.ToSlash(rel), r.opts.OutputPathSeparator)
}

// StandardizeRelativePath rewrites the slashes of a relative path to sep and
// prefixes it with "." so it reads as relative. Absolute paths that do not
// start with sep, and paths already starting with ".", are returned as is.
func StandardizeRelativePath(location, sep string) string {
	if sep == "" {
		sep = "/"
	}
	fixed := strings.ReplaceAll(location, "/", sep)
	if fixed == "" {
		return "." + sep
	}

	if (isAbsolutePath(fixed) && !strings.HasPrefix(fixed, sep)) || strings.HasPrefix(fixed, ".") {
		return fixed
	}
	if strings.HasPrefix(fixed, sep) {
		return "." + fixed
	}
	return "." + sep + fixed
}

func isAbsolutePath(p string) bool {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return true
	}
	// Drive letter: C:\ or C:/
	return len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') &&
		(p[0] >= 'a' && p[0] <= 'z' || p[0] >= 'A' && p[0] <= 'Z')
}
