package main

import "github.com/mvp-joe/ts-extractor/internal/cli"

func main() {
	cli.Execute()
}
