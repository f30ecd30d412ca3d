package extractor

import (
	"strings"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// Metadata returns the documentation and decorators of a declaration.
func (r *Resolver) Metadata(d *ast.Declaration) contracts.MetadataDto {
	meta := contracts.MetadataDto{JSDocTags: []contracts.JSDocTagDto{}}
	if d == nil {
		return meta
	}
	meta.DocumentationComment, meta.JSDocTags = ParseJSDoc(d.Doc)
	for _, dec := range d.Decorators {
		meta.Decorators = append(meta.Decorators, contracts.DecoratorDto{Name: dec.Name, Arguments: dec.Arguments})
	}
	return meta
}

// ParseJSDoc splits a /** */ comment into its description and block tags.
func ParseJSDoc(raw string) (string, []contracts.JSDocTagDto) {
	tags := []contracts.JSDocTagDto{}
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/**") || !strings.HasSuffix(raw, "*/") || len(raw) < 5 {
		return "", tags
	}
	body := raw[3 : len(raw)-2]

	var description []string
	var current *contracts.JSDocTagDto
	var text []string
	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(text, "\n"))
			tags = append(tags, *current)
		}
		current, text = nil, nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		if strings.HasPrefix(line, " ") {
			line = line[1:]
		}
		line = strings.TrimRight(line, " \t\r")

		if strings.HasPrefix(line, "@") {
			flush()
			name, rest, _ := strings.Cut(line[1:], " ")
			current = &contracts.JSDocTagDto{Name: name}
			text = []string{strings.TrimSpace(rest)}
			continue
		}
		if current != nil {
			text = append(text, line)
		} else {
			description = append(description, line)
		}
	}
	flush()

	return strings.TrimSpace(strings.Join(description, "\n")), tags
}
