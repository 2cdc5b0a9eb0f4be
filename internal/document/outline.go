package document

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// extractOutline walks the markdown AST and nests headings by level
func extractOutline(source []byte) []Section {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var sections []Section
	var stack []*Section

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		line := 1
		if heading.Lines().Len() > 0 {
			seg := heading.Lines().At(0)
			line = bytes.Count(source[:seg.Start], []byte("\n")) + 1
		}

		section := Section{
			Title: string(heading.Text(source)),
			Level: heading.Level,
			Line:  line,
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= section.Level {
			stack = stack[:len(stack)-1]
		}

		var current *Section
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Subsections = append(parent.Subsections, section)
			current = &parent.Subsections[len(parent.Subsections)-1]
		} else {
			sections = append(sections, section)
			current = &sections[len(sections)-1]
		}
		stack = append(stack, current)

		return ast.WalkSkipChildren, nil
	})

	return sections
}

// Headings flattens the outline in document order
func (d *Document) Headings() []Section {
	var out []Section
	var walk func([]Section)
	walk = func(secs []Section) {
		for _, s := range secs {
			out = append(out, Section{Title: s.Title, Level: s.Level, Line: s.Line})
			walk(s.Subsections)
		}
	}
	walk(d.Outline)
	return out
}
