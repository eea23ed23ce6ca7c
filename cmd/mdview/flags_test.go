package main

// Notes:
// - parseRenderFlags: we test short and long forms, flags after the
//   positional file, and that unknown flags are rejected.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseRenderFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	t.Run("short forms", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseRenderFlags([]string{"-w", "900", "-t", "dark", "-o", "out.png", "-c", "work", "-q", "doc.md"}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}
		if f.width != 900 || f.theme != "dark" || f.out.output != "out.png" || f.common.config != "work" || !f.common.quiet {
			t.Errorf("flags = %+v", f)
		}
		if len(args) != 1 || args[0] != "doc.md" {
			t.Errorf("args = %v, want [doc.md]", args)
		}
	})

	t.Run("flags after file", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseRenderFlags([]string{"doc.md", "--browser", "--style", "./my.css", "--chrome", "/bin/chrome", "--timeout", "1m"}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}
		if !f.out.browser || f.style != "./my.css" || f.browser.chrome != "/bin/chrome" || f.browser.timeout != "1m" {
			t.Errorf("flags = %+v", f)
		}
		if len(args) != 1 {
			t.Errorf("args = %v, want one file", args)
		}
	})

	t.Run("html and protocol", func(t *testing.T) {
		t.Parallel()

		f, _, err := parseRenderFlags([]string{"--html", "--protocol", "kitty", "--asset-path", "/a", "-v", "doc.md"}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("parseRenderFlags() error = %v", err)
		}
		if !f.out.html || f.out.protocol != "kitty" || f.assetPath != "/a" || !f.common.verbose {
			t.Errorf("flags = %+v", f)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseRenderFlags([]string{"--page-size", "a4", "doc.md"}, &bytes.Buffer{})
		if err == nil {
			t.Fatal("expected error for unknown flag")
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		_, _, err := parseRenderFlags([]string{"-h"}, &stderr)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want ErrHelp", err)
		}
		if stderr.Len() == 0 {
			t.Error("help should print usage")
		}
	})
}
