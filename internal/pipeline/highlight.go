package pipeline

import (
	"fmt"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Chroma styles used for light and dark pages.
const (
	LightCodeStyle = "github"
	DarkCodeStyle  = "monokai"
)

var (
	highlightOnce sync.Once
	highlightCSS  string
	highlightErr  error
)

// HighlightCSS returns the stylesheet for highlighted code blocks: the light
// style unconditionally, then the dark style under
// prefers-color-scheme: dark. Unknown style names fall back to chroma's
// default style. The result is computed once.
func HighlightCSS() (string, error) {
	highlightOnce.Do(func() {
		highlightCSS, highlightErr = buildHighlightCSS(LightCodeStyle, DarkCodeStyle)
	})
	return highlightCSS, highlightErr
}

func buildHighlightCSS(light, dark string) (string, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var b strings.Builder
	if err := formatter.WriteCSS(&b, styles.Get(light)); err != nil {
		return "", fmt.Errorf("%w: light code style: %v", ErrHTMLConversion, err)
	}

	b.WriteString("\n@media (prefers-color-scheme: dark) {\n")
	if err := formatter.WriteCSS(&b, styles.Get(dark)); err != nil {
		return "", fmt.Errorf("%w: dark code style: %v", ErrHTMLConversion, err)
	}
	b.WriteString("}\n")

	return b.String(), nil
}
