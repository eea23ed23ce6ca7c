//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkGoldmarkToHTML measures conversion across document shapes.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"readme_small", generateReadme(5)},
		{"readme_large", generateReadme(100)},
		{"crlf", strings.ReplaceAll(generateReadme(20), "\n", "\r\n")},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := converter.ToHTML(ctx, input.content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHighlightCSS measures stylesheet generation without the cache.
func BenchmarkHighlightCSS(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		if _, err := buildHighlightCSS(LightCodeStyle, DarkCodeStyle); err != nil {
			b.Fatal(err)
		}
	}
}

func generateReadme(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Project\n\nA short description with **bold** and `code`.\n\n")
	for i := range sections {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("- [x] done\n- [ ] todo\n\n")
		sb.WriteString("| A | B |\n|---|---|\n| 1 | 2 |\n\n")
		sb.WriteString("```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```\n\n")
		sb.WriteString("See the note[^n" + fmt.Sprint(i) + "].\n\n[^n" + fmt.Sprint(i) + "]: A footnote.\n\n")
	}
	return sb.String()
}
