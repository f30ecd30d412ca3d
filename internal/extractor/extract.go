package extractor

import (
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/diag"
	"github.com/mvp-joe/ts-extractor/internal/document"
)

// Extract resolves every entry file of fe and returns the resulting
// document. When entryFiles is empty the frontend's root files are used.
// Unresolvable or unsupported declarations only produce warnings on sink.
func Extract(fe Frontend, entryFiles []string, opts Options, sink diag.Sink) (*document.Document, error) {
	if fe == nil {
		return nil, ErrNoProgram
	}
	r, err := NewResolver(fe, opts, sink)
	if err != nil {
		return nil, err
	}

	var files []*ast.SourceFile
	if len(entryFiles) == 0 {
		files = fe.RootFiles()
	} else {
		for _, name := range entryFiles {
			f := fe.SourceFile(filepath.ToSlash(name))
			if f == nil {
				r.sink.Report(diag.Diagnostic{
					Severity: diag.SeverityWarning,
					Code:     diag.CodeUnresolvedEntry,
					Message:  fmt.Sprintf("Entry file %q is not part of the program.", name),
				})
				continue
			}
			files = append(files, f)
		}
	}

	doc := document.New()
	for _, f := range files {
		if ref, ok := r.ResolveSymbol(fe.ModuleSymbol(f)); ok {
			doc.EntryFiles = append(doc.EntryFiles, ref)
		}
	}
	doc.Registry = r.Registry().Items()
	return doc, nil
}
