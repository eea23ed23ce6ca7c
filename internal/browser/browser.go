// Package browser drives a headless Chrome instance over the DevTools
// protocol. The capture logic depends only on the Launcher, Session and
// Page interfaces; RodLauncher is the go-rod implementation.
package browser

import (
	"context"
	"errors"
)

// Sentinel errors for browser operations.
var (
	ErrLaunch          = errors.New("failed to launch browser")
	ErrBrowserNotFound = errors.New("no Chrome/Chromium binary found")
	ErrSession         = errors.New("failed to open browser page")

	// ErrNavigation reports a load failure raised by the page itself, such
	// as net::ERR_FILE_NOT_FOUND, as opposed to a rejected command.
	ErrNavigation = errors.New("page reported navigation error")
)

// Viewport is the browser window size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Clip is the screenshot region in CSS pixels.
type Clip struct {
	X, Y          float64
	Width, Height float64
	Scale         float64
}

// ColorScheme is the emulated prefers-color-scheme value.
type ColorScheme string

const (
	ColorSchemeLight ColorScheme = "light"
	ColorSchemeDark  ColorScheme = "dark"
)

// Launcher starts browser sessions.
type Launcher interface {
	// Launch starts Chrome with the given window size. Errors wrap ErrLaunch.
	Launch(ctx context.Context, vp Viewport) (Session, error)
}

// Session owns one browser process and one isolated browsing context.
type Session interface {
	// OpenPage creates a blank page sized to the session viewport at device
	// scale 1. Errors wrap ErrSession.
	OpenPage(ctx context.Context) (Page, error)

	// Version returns the browser product string, e.g. "HeadlessChrome/131.0".
	Version(ctx context.Context) (string, error)

	// Close tears down the page, the browser and its process tree. Only the
	// first call does work; later calls return the first result.
	Close() error
}

// Page is the set of DevTools operations the capture sequence needs.
type Page interface {
	EmulateColorScheme(ctx context.Context, scheme ColorScheme) error

	// Navigate loads url and waits for the navigation to commit. A failure
	// reported by the page wraps ErrNavigation.
	Navigate(ctx context.Context, url string) error

	// WaitReady blocks until an element matches selector.
	WaitReady(ctx context.Context, selector string) error

	// Evaluate runs a JavaScript expression and returns its string value.
	Evaluate(ctx context.Context, js string) (string, error)

	// CaptureScreenshot captures clip as PNG and returns the base64 payload
	// exactly as the browser sent it.
	CaptureScreenshot(ctx context.Context, clip Clip) (string, error)

	Close() error
}
