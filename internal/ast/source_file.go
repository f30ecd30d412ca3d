package ast

import (
	"sort"
	"unicode/utf8"
)

// SourceFile is one parsed module.
type SourceFile struct {
	// FileName is the absolute, slash-separated path of the file.
	FileName string
	Text     []byte

	// Root is the SourceFile declaration; its Members are the top-level
	// statements of the module.
	Root *Declaration

	// ResolvedModules maps module specifiers used in this file to the file
	// names they resolve to. Unresolved specifiers are absent.
	ResolvedModules map[string]string

	// IsDeclarationFile reports a .d.ts file.
	IsDeclarationFile bool

	lineStarts []int
}

// NewSourceFile creates a file with an empty root declaration.
func NewSourceFile(fileName string, text []byte) *SourceFile {
	f := &SourceFile{
		FileName:        fileName,
		Text:            text,
		ResolvedModules: make(map[string]string),
	}
	f.Root = &Declaration{Shape: ShapeSourceFile, Name: fileName, File: f, End: len(text)}
	f.lineStarts = computeLineStarts(text)
	return f
}

// AddStatement appends a top-level declaration.
func (f *SourceFile) AddStatement(d *Declaration) *Declaration {
	return f.Root.AddMember(d)
}

// Locals returns the module scope, populated by binding.
func (f *SourceFile) Locals() *SymbolTable {
	return f.Root.locals
}

// LineAndCharacter converts a byte offset to a 0-based line and a 0-based
// character column counted in runes.
func (f *SourceFile) LineAndCharacter(pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(f.Text) {
		pos = len(f.Text)
	}
	line := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > pos
	}) - 1
	if line < 0 {
		line = 0
	}
	start := f.lineStarts[line]
	return line, utf8.RuneCount(f.Text[start:pos])
}

// computeLineStarts treats \n, \r\n, a lone \r, U+2028 and U+2029 as line
// terminators.
func computeLineStarts(text []byte) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		case 0xE2:
			// U+2028 and U+2029 encode as E2 80 A8 and E2 80 A9.
			if i+2 < len(text) && text[i+1] == 0x80 && (text[i+2] == 0xA8 || text[i+2] == 0xA9) {
				i += 2
				starts = append(starts, i+1)
			}
		}
	}
	return starts
}
