package mdview

import (
	"html"
	"strings"

	"github.com/alnah/go-mdview/internal/fileutil"
)

// Template placeholders.
const (
	placeholderBaseTag = "{{BASE_TAG}}"
	placeholderCSS     = "{{CSS}}"
	placeholderContent = "{{CONTENT}}"
)

// BuildPage fills the page template with a <base> tag, the stylesheet and
// the converted body. Substitution is a single pass: placeholder text that
// appears inside css or body is left alone. body is inserted verbatim.
//
// The <base> points at the canonical parent directory of sourcePath and is
// omitted when sourcePath is empty or cannot be canonicalized.
func BuildPage(tmpl, css, body, sourcePath string) RenderedPage {
	baseDir := baseDirOf(sourcePath)

	var baseTag string
	if baseDir != "" {
		baseTag = `<base href="` + html.EscapeString(strings.TrimSuffix(fileutil.ToFileURL(baseDir), "/")+"/") + `">`
	}

	r := strings.NewReplacer(
		placeholderBaseTag, baseTag,
		placeholderCSS, css,
		placeholderContent, body,
	)
	return RenderedPage{HTML: r.Replace(tmpl), BaseDir: baseDir}
}

func baseDirOf(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	dir, err := fileutil.CanonicalDir(sourcePath)
	if err != nil {
		return ""
	}
	return dir
}
