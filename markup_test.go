package mdview

// Notes:
// - BuildPage is tested with the embedded page template so the structural
//   checks match what the browser actually loads.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdview/internal/assets"
	"github.com/alnah/go-mdview/internal/fileutil"
)

func pageTemplate(t *testing.T) string {
	t.Helper()
	tmpl, err := assets.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	return tmpl
}

// articleBody extracts the content between <article> and </article>.
func articleBody(t *testing.T, page string) string {
	t.Helper()
	_, rest, ok := strings.Cut(page, "<article>")
	if !ok {
		t.Fatal("page has no <article>")
	}
	body, _, ok := strings.Cut(rest, "</article>")
	if !ok {
		t.Fatal("page has no </article>")
	}
	return strings.TrimSpace(body)
}

// ---------------------------------------------------------------------------
// TestBuildPage - Placeholder substitution
// ---------------------------------------------------------------------------

func TestBuildPage(t *testing.T) {
	t.Parallel()

	tmpl := pageTemplate(t)

	bodies := []string{
		"<h1 id=\"hello\">Hello</h1>",
		"<p>a &amp; b</p>\n<pre><code>x := 1\n</code></pre>",
		"<p>literal {{CSS}} and {{CONTENT}} and {{BASE_TAG}}</p>",
		"<script>window.x = '<b>';</script>",
		"",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			t.Parallel()

			const css = "body { color: #0a0b0c; }"
			page := BuildPage(tmpl, css, body, "").HTML

			if got := articleBody(t, page); got != body {
				t.Errorf("article body = %q, want %q", got, body)
			}
			if n := strings.Count(page, css); n != 1 {
				t.Errorf("stylesheet appears %d times, want 1", n)
			}
			for _, tag := range []string{"<html>", "</html>", "<head>", "</head>", "<body", "</body>"} {
				if n := strings.Count(page, tag); n != 1 {
					t.Errorf("%s appears %d times, want 1", tag, n)
				}
			}
		})
	}
}

func TestBuildPage_NoPlaceholdersLeft(t *testing.T) {
	t.Parallel()

	page := BuildPage(pageTemplate(t), "p {}", "<p>x</p>", "").HTML
	for _, ph := range []string{placeholderBaseTag, placeholderCSS, placeholderContent} {
		if strings.Contains(page, ph) {
			t.Errorf("page still contains %s", ph)
		}
	}
}

func TestBuildPage_PlaceholderTextNotReexpanded(t *testing.T) {
	t.Parallel()

	tmpl := "{{BASE_TAG}}|{{CSS}}|{{CONTENT}}"
	got := BuildPage(tmpl, "/* {{CONTENT}} */", "{{CSS}}", "").HTML

	want := "|/* {{CONTENT}} */|{{CSS}}"
	if got != want {
		t.Errorf("BuildPage() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestBuildPage_BaseTag - Base reference for relative resources
// ---------------------------------------------------------------------------

func TestBuildPage_BaseTag(t *testing.T) {
	t.Parallel()

	tmpl := pageTemplate(t)

	t.Run("existing source gets one base at its canonical parent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "doc.md")
		if err := os.WriteFile(src, []byte("# x"), 0o600); err != nil {
			t.Fatal(err)
		}
		canonical, err := filepath.EvalSymlinks(dir)
		if err != nil {
			t.Fatal(err)
		}

		got := BuildPage(tmpl, "", "<p>x</p>", src)

		if got.BaseDir != canonical {
			t.Errorf("BaseDir = %q, want %q", got.BaseDir, canonical)
		}
		if n := strings.Count(got.HTML, "<base "); n != 1 {
			t.Fatalf("page has %d base tags, want 1", n)
		}
		wantHref := `<base href="` + fileutil.ToFileURL(canonical) + `/">`
		if !strings.Contains(got.HTML, wantHref) {
			t.Errorf("page missing %s", wantHref)
		}
	})

	t.Run("relative source path resolves", func(t *testing.T) {
		t.Parallel()

		got := BuildPage(tmpl, "", "<p>x</p>", "markup.go")
		if got.BaseDir == "" {
			t.Fatal("BaseDir empty for an existing relative path")
		}
		if !filepath.IsAbs(got.BaseDir) {
			t.Errorf("BaseDir = %q, want absolute", got.BaseDir)
		}
	})

	tests := []struct {
		name string
		src  string
	}{
		{"missing source", filepath.Join(t.TempDir(), "missing.md")},
		{"empty source", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name+" gets no base", func(t *testing.T) {
			t.Parallel()

			got := BuildPage(tmpl, "", "<p>x</p>", tt.src)
			if strings.Contains(got.HTML, "<base") {
				t.Error("page contains a base tag")
			}
			if got.BaseDir != "" {
				t.Errorf("BaseDir = %q, want empty", got.BaseDir)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderer_BuildPage - Markdown to full page
// ---------------------------------------------------------------------------

func TestRenderer_BuildPage(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(WithLauncher(&fakeLauncher{}))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	page, err := r.BuildPage(context.Background(), Input{Markdown: "# Hello"})
	if err != nil {
		t.Fatalf("BuildPage() error = %v", err)
	}

	body := articleBody(t, page.HTML)
	if n := strings.Count(body, "<h1"); n != 1 {
		t.Errorf("body has %d <h1> elements, want 1", n)
	}
	if !strings.Contains(body, "Hello</h1>") {
		t.Errorf("body %q missing heading text", body)
	}

	github, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(page.HTML, github); n != 1 {
		t.Errorf("embedded stylesheet appears %d times, want 1", n)
	}
}
