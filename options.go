package mdview

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdview/internal/browser"
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	timeout       time.Duration
	readyTimeout  time.Duration
	viewportWidth int
	columns       int
	theme         Theme
	styleInput    string // name, file path, or CSS content
	resolvedStyle string
	assetPath     string
	scratchPath   string
	browserBin    string
	noSandbox     bool
	download      bool
}

// defaultTimeout bounds a whole render when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the deadline for one Render call, browser launch
// included. Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdview: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithReadyTimeout sets how long to wait for the page body after
// navigation. Default 5s. Panics if d <= 0.
func WithReadyTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdview: WithReadyTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.readyTimeout = d
	}
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithViewportWidth sets an explicit viewport width in pixels. Zero
// derives the width from the terminal columns.
func WithViewportWidth(px int) Option {
	return func(r *Renderer) {
		r.cfg.viewportWidth = px
	}
}

// WithTerminalColumns sets the column count used to derive the viewport
// width when no explicit width is given.
func WithTerminalColumns(cols int) Option {
	return func(r *Renderer) {
		r.cfg.columns = cols
	}
}

// WithTheme sets the emulated color scheme. Default ThemeLight.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.cfg.theme = t
	}
}

// WithStyle sets the page stylesheet.
// Accepts:
//   - Style name: "github", "plain" (loaded from assets)
//   - File path: "./custom.css", "/abs/path.css" (read from disk)
//   - CSS content: "body { ... }" (used directly)
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory that overrides embedded styles and
// templates. Files missing from it fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithScratchPath sets where the rendered page is written for the browser.
// Default $TMPDIR/mdview.html.
func WithScratchPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.scratchPath = path
	}
}

// WithBrowserBin sets the Chrome binary. Default searches the usual
// install locations.
func WithBrowserBin(bin string) Option {
	return func(r *Renderer) {
		r.cfg.browserBin = bin
	}
}

// WithNoSandbox disables the Chrome sandbox, which most containers need.
func WithNoSandbox(noSandbox bool) Option {
	return func(r *Renderer) {
		r.cfg.noSandbox = noSandbox
	}
}

// WithBrowserDownload lets rod download Chromium when none is installed.
func WithBrowserDownload(allow bool) Option {
	return func(r *Renderer) {
		r.cfg.download = allow
	}
}

// WithLauncher replaces the go-rod launcher. WithBrowserBin, WithNoSandbox
// and WithBrowserDownload do not apply to a custom launcher.
func WithLauncher(l browser.Launcher) Option {
	return func(r *Renderer) {
		r.launcher = l
	}
}
