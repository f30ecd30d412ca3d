package parsers

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// sourceExtensions are tried in order when a specifier has no extension.
var sourceExtensions = []string{".ts", ".tsx", ".d.ts", ".mts", ".d.mts", ".cts", ".d.cts"}

// jsExtensions map compiled output extensions back to their sources.
var jsExtensions = map[string][]string{
	".js":  {".ts", ".tsx", ".d.ts"},
	".jsx": {".tsx"},
	".mjs": {".mts", ".d.mts"},
	".cjs": {".cts", ".d.cts"},
}

// packageManifest is the subset of package.json that locates typings.
type packageManifest struct {
	Types   string `json:"types"`
	Typings string `json:"typings"`
	Main    string `json:"main"`
}

// ModuleResolver maps module specifiers to TypeScript files on disk,
// following relative paths, node_modules directories, package.json typings
// and @types packages. Results, including misses, are cached per importing
// directory. A ModuleResolver is not safe for concurrent use.
type ModuleResolver struct {
	cache map[string]string
}

// NewModuleResolver creates a resolver with an empty cache.
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{cache: make(map[string]string)}
}

// Resolve returns the absolute slash path of the file specifier refers to
// when imported from fromFile.
func (r *ModuleResolver) Resolve(fromFile, specifier string) (string, bool) {
	dir := path.Dir(fromFile)
	key := dir + "\x00" + specifier

	if cached, ok := r.cache[key]; ok {
		return cached, cached != ""
	}

	var resolved string
	if isRelativeSpecifier(specifier) {
		target := specifier
		if !path.IsAbs(specifier) {
			target = path.Join(dir, specifier)
		}
		resolved = resolveFileOrDirectory(target)
	} else {
		resolved = resolvePackage(dir, specifier)
	}

	r.cache[key] = resolved
	return resolved, resolved != ""
}

func isRelativeSpecifier(spec string) bool {
	return spec == "." || spec == ".." || strings.HasPrefix(spec, "./") ||
		strings.HasPrefix(spec, "../") || strings.HasPrefix(spec, "/")
}

func resolveFileOrDirectory(target string) string {
	if f := resolveFile(target); f != "" {
		return f
	}
	return resolveDirectory(target)
}

func resolveFile(target string) string {
	if isTypeScriptFile(target) && isFile(target) {
		return target
	}
	if sources, ok := jsExtensions[path.Ext(target)]; ok {
		base := strings.TrimSuffix(target, path.Ext(target))
		for _, ext := range sources {
			if isFile(base + ext) {
				return base + ext
			}
		}
	}
	for _, ext := range sourceExtensions {
		if isFile(target + ext) {
			return target + ext
		}
	}
	return ""
}

func resolveDirectory(dir string) string {
	if !isDir(dir) {
		return ""
	}
	if m, ok := readManifest(dir); ok {
		for _, entry := range []string{m.Types, m.Typings, m.Main} {
			if entry == "" {
				continue
			}
			if f := resolveFile(path.Join(dir, entry)); f != "" {
				return f
			}
		}
	}
	return resolveFile(path.Join(dir, "index"))
}

// resolvePackage walks up from dir looking for the package in node_modules,
// then in node_modules/@types.
func resolvePackage(dir, specifier string) string {
	name, subpath := splitPackageSpecifier(specifier)
	if name == "" {
		return ""
	}
	typesName := "@types/" + strings.ReplaceAll(strings.TrimPrefix(name, "@"), "/", "__")

	for current := dir; ; current = path.Dir(current) {
		if path.Base(current) != "node_modules" {
			modules := path.Join(current, "node_modules")
			for _, pkg := range []string{name, typesName} {
				root := path.Join(modules, pkg)
				var f string
				if subpath != "" {
					f = resolveFileOrDirectory(path.Join(root, subpath))
				} else {
					f = resolveDirectory(root)
				}
				if f != "" {
					return f
				}
			}
		}
		if parent := path.Dir(current); parent == current {
			return ""
		}
	}
}

// splitPackageSpecifier splits "@scope/pkg/sub/path" into the package name
// and the path inside it.
func splitPackageSpecifier(spec string) (string, string) {
	parts := strings.Split(spec, "/")
	n := 1
	if strings.HasPrefix(spec, "@") {
		n = 2
	}
	if len(parts) < n || parts[0] == "" {
		return "", ""
	}
	return strings.Join(parts[:n], "/"), strings.Join(parts[n:], "/")
}

func readManifest(dir string) (packageManifest, bool) {
	var m packageManifest
	data, err := os.ReadFile(filepath.FromSlash(path.Join(dir, "package.json")))
	if err != nil {
		return m, false
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, false
	}
	return m, true
}

func isFile(name string) bool {
	info, err := os.Stat(filepath.FromSlash(name))
	return err == nil && !info.IsDir()
}

func isDir(name string) bool {
	info, err := os.Stat(filepath.FromSlash(name))
	return err == nil && info.IsDir()
}
