package parsers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/diag"
)

// Loader parses entry files and every module they import into a bound
// program.
type Loader struct {
	projectDir string
	parser     *TypeScriptParser
	resolver   *ModuleResolver
	sink       diag.Sink
	progress   ProgressReporter
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSink sets the sink that receives parse and module warnings.
func WithSink(sink diag.Sink) LoaderOption {
	return func(l *Loader) {
		if sink != nil {
			l.sink = sink
		}
	}
}

// WithProgress sets the progress reporter.
func WithProgress(progress ProgressReporter) LoaderOption {
	return func(l *Loader) {
		if progress != nil {
			l.progress = progress
		}
	}
}

// NewLoader creates a loader for the project rooted at projectDir.
func NewLoader(projectDir string, opts ...LoaderOption) *Loader {
	l := &Loader{
		projectDir: toAbsSlash(projectDir),
		parser:     NewTypeScriptParser(),
		resolver:   NewModuleResolver(),
		sink:       diag.Discard,
		progress:   &NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses entries breadth-first along their imports and binds the
// result. Relative entry paths are resolved against the project directory.
// An unreadable entry file is an error; an unreadable or unresolved import
// is reported as a warning and left out of the program.
func (l *Loader) Load(ctx context.Context, entries []string) (*ast.Program, error) {
	program := ast.NewProgram(l.projectDir)

	queued := make(map[string]bool)
	roots := make(map[string]bool)
	var queue []string
	for _, entry := range entries {
		name := entry
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.FromSlash(l.projectDir), name)
		}
		name = toAbsSlash(name)
		if queued[name] {
			continue
		}
		queued[name] = true
		roots[name] = true
		queue = append(queue, name)
		program.RootNames = append(program.RootNames, name)
	}
	l.progress.OnLoadStart(len(program.RootNames))

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := queue[0]
		queue = queue[1:]

		source, err := os.ReadFile(filepath.FromSlash(name))
		if err != nil {
			if roots[name] {
				return nil, fmt.Errorf("failed to read entry file %s: %w", name, err)
			}
			l.warn(diag.CodeUnresolvedModule, name, 0, 0, fmt.Sprintf("Cannot read module %q: %v", name, err))
			continue
		}

		result, err := l.parser.ParseFile(ctx, name, source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		if se := result.SyntaxError; se != nil {
			l.warn(diag.CodeParseError, name, se.Line, se.Character, fmt.Sprintf("Syntax error near %q.", se.Text))
		}

		for _, spec := range result.ModuleSpecifiers {
			target, ok := l.resolver.Resolve(name, spec)
			if !ok {
				l.warn(diag.CodeUnresolvedModule, name, 0, 0, fmt.Sprintf("Cannot find module %q.", spec))
				continue
			}
			result.File.ResolvedModules[spec] = target
			if !queued[target] {
				queued[target] = true
				queue = append(queue, target)
				l.progress.OnFileDiscovered(target)
			}
		}

		program.AddFile(result.File)
		l.progress.OnFileParsed(name)
	}

	program.Bind()
	l.progress.OnLoadComplete(len(program.Files()))
	return program, nil
}

func (l *Loader) warn(code, file string, line, char int, msg string) {
	l.sink.Report(diag.Diagnostic{
		Severity:  diag.SeverityWarning,
		Code:      code,
		File:      file,
		Line:      line,
		Character: char,
		Message:   msg,
	})
}

func toAbsSlash(name string) string {
	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}
	return filepath.ToSlash(filepath.Clean(name))
}
