//go:build integration

package browser

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func launchForTest(t *testing.T) Session {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	l := &RodLauncher{
		Bin:       os.Getenv("ROD_BROWSER_BIN"),
		NoSandbox: os.Getenv("ROD_NO_SANDBOX") == "1",
	}
	s, err := l.Launch(ctx, Viewport{Width: 640, Height: 800})
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRodSession_CaptureSequence(t *testing.T) {
	s := launchForTest(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	html := `<html><body style="margin:0"><div style="width:300px;height:200px;background:red"></div></body></html>`
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		t.Fatal(err)
	}

	page, err := s.OpenPage(ctx)
	if err != nil {
		t.Fatalf("OpenPage() error = %v", err)
	}
	defer page.Close()

	if err := page.EmulateColorScheme(ctx, ColorSchemeDark); err != nil {
		t.Fatalf("EmulateColorScheme() error = %v", err)
	}
	if err := page.Navigate(ctx, "file://"+path); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if err := page.WaitReady(ctx, "body"); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}

	dark, err := page.Evaluate(ctx, `matchMedia("(prefers-color-scheme: dark)").matches ? "dark" : "light"`)
	if err != nil || dark != "dark" {
		t.Errorf("color scheme = %q, %v, want dark", dark, err)
	}

	extent, err := page.Evaluate(ctx, "JSON.stringify([document.body.scrollWidth, document.body.scrollHeight])")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !strings.HasPrefix(extent, "[") {
		t.Errorf("extent = %q, want JSON array", extent)
	}

	data, err := page.CaptureScreenshot(ctx, Clip{Width: 300, Height: 200, Scale: 1})
	if err != nil {
		t.Fatalf("CaptureScreenshot() error = %v", err)
	}
	png, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Error("payload is not a PNG")
	}
}

func TestRodPage_NavigateMissingFile(t *testing.T) {
	s := launchForTest(t)
	ctx := context.Background()

	page, err := s.OpenPage(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer page.Close()

	err = page.Navigate(ctx, "file:///definitely/missing/page.html")
	if !errors.Is(err, ErrNavigation) {
		t.Errorf("error = %v, want ErrNavigation", err)
	}
}

func TestRodSession_CloseIdempotent(t *testing.T) {
	s := launchForTest(t)

	v, err := s.Version(context.Background())
	if err != nil || v == "" {
		t.Errorf("Version() = %q, %v", v, err)
	}

	first := s.Close()
	if second := s.Close(); second != first {
		t.Errorf("second Close() = %v, want %v", second, first)
	}
}
