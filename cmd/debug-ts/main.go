// Command debug-ts prints the declarations the TypeScript parser produces
// for one file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/parsers"
)

func main() {
	path := "testdata/code/typescript/simple/index.ts"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	result, err := parsers.NewTypeScriptParser().ParseFile(context.Background(), path, source)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== MODULES ===")
	for _, spec := range result.ModuleSpecifiers {
		fmt.Printf("  %s\n", spec)
	}

	if se := result.SyntaxError; se != nil {
		fmt.Printf("\n=== SYNTAX ERROR ===\n  line %d, char %d near %q\n", se.Line+1, se.Character+1, se.Text)
	}

	fmt.Println("\n=== DECLARATIONS ===")
	for _, d := range result.File.Root.Members {
		dump(result.File, d, 1)
	}
}

func dump(f *ast.SourceFile, d *ast.Declaration, depth int) {
	line, char := f.LineAndCharacter(d.Pos)
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s (line %d, char %d)", indent, d, line+1, char+1)
	if d.Type != nil {
		fmt.Printf(": %s", d.Type.Text)
	}
	if d.ModuleSpecifier != "" {
		fmt.Printf(" from %q", d.ModuleSpecifier)
	}
	fmt.Println()

	for _, p := range d.TypeParameters {
		dump(f, p, depth+1)
	}
	for _, p := range d.Parameters {
		dump(f, p, depth+1)
	}
	for _, m := range d.Members {
		dump(f, m, depth+1)
	}
	if d.Value != nil {
		dump(f, d.Value, depth+1)
	}
}
