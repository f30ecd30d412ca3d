package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/diag"
	"github.com/mvp-joe/ts-extractor/internal/document"
)

const testProjectDir = "/project"

// sourceFile creates a file under the test project. The text is only used for
// positions; declarations are attached by hand.
func sourceFile(name, text string) *ast.SourceFile {
	if !strings.HasPrefix(name, "/") {
		name = testProjectDir + "/" + name
	}
	return ast.NewSourceFile(name, []byte(text))
}

// declAt creates a declaration positioned at the first occurrence of marker
// in the file text.
func declAt(f *ast.SourceFile, shape ast.Shape, name, marker string) *ast.Declaration {
	pos := strings.Index(string(f.Text), marker)
	if pos < 0 {
		pos = 0
	}
	return ast.NewDeclaration(shape, name, pos, pos+len(marker))
}

func decl(shape ast.Shape, name string) *ast.Declaration {
	return ast.NewDeclaration(shape, name, 0, 0)
}

func exported(d *ast.Declaration) *ast.Declaration {
	d.Modifiers |= ast.ModifierExport
	return d
}

func basic(text string) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.TypeBasic, Text: text}
}

func ref(name string) *ast.TypeNode {
	return &ast.TypeNode{Kind: ast.TypeReference, Text: name, Name: name}
}

func buildProgram(files ...*ast.SourceFile) *ast.Program {
	p := ast.NewProgram(testProjectDir)
	for _, f := range files {
		p.AddFile(f)
		p.RootNames = append(p.RootNames, f.FileName)
	}
	p.Bind()
	return p
}

func testOptions() Options {
	return Options{ProjectDirectory: testProjectDir}
}

func newTestResolver(t *testing.T, fe Frontend, opts Options) (*Resolver, *diag.Collector) {
	t.Helper()
	sink := diag.NewCollector()
	r, err := NewResolver(fe, opts, sink)
	require.NoError(t, err)
	return r, sink
}

func extractProgram(t *testing.T, p *ast.Program, opts Options) (*document.Document, *diag.Collector) {
	t.Helper()
	sink := diag.NewCollector()
	doc, err := Extract(p, nil, opts, sink)
	require.NoError(t, err)
	return doc, sink
}

func mustGet[T contracts.ItemDto](t *testing.T, doc *document.Document, id string) T {
	t.Helper()
	dto, ok := doc.Get(id)
	require.True(t, ok, "missing item %s", id)
	typed, ok := dto.(T)
	require.True(t, ok, "item %s has type %T", id, dto)
	return typed
}

func itemsOfKind(doc *document.Document, kind contracts.ApiKind) []string {
	var ids []string
	for _, id := range doc.IDs() {
		if doc.Registry[id].Base().ApiKind == kind {
			ids = append(ids, id)
		}
	}
	return ids
}

func findMember(refs []contracts.ItemReference, alias string) (contracts.ItemReference, bool) {
	for _, r := range refs {
		if r.Alias == alias {
			return r, true
		}
	}
	return contracts.ItemReference{}, false
}

func messagesOf(sink *diag.Collector, code string) []string {
	var out []string
	for _, d := range sink.Diagnostics() {
		if d.Code == code {
			out = append(out, d.Message)
		}
	}
	return out
}
