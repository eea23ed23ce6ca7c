package mdview

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/alnah/go-mdview/internal/browser"
)

// Theme is the emulated color scheme applied before the page loads.
type Theme string

// Theme constants.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name (case-insensitive). Empty means light.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ThemeLight, nil
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (must be light or dark)", ErrInvalidTheme, s)
	}
}

func (t Theme) colorScheme() browser.ColorScheme {
	if t == ThemeDark {
		return browser.ColorSchemeDark
	}
	return browser.ColorSchemeLight
}

// Viewport bounds in CSS pixels.
const (
	// DefaultViewportHeight is the initial window height. The real content
	// height is measured after load.
	DefaultViewportHeight = 800

	// MaxAutoViewportWidth caps the width derived from terminal columns.
	MaxAutoViewportWidth = 1200

	// MaxViewportWidth bounds an explicit width.
	MaxViewportWidth = 8192

	// PixelsPerColumn converts terminal columns to pixels.
	PixelsPerColumn = 8

	// DefaultColumns is assumed when the terminal width is unknown.
	DefaultColumns = 80
)

// Viewport is the browser window size for one render.
type Viewport struct {
	Width  int
	Height int
}

// NewViewport resolves the window size from an explicit width and the
// terminal column count. See ResolveViewportWidth.
func NewViewport(explicit, columns int) Viewport {
	return Viewport{
		Width:  ResolveViewportWidth(explicit, columns),
		Height: DefaultViewportHeight,
	}
}

// ResolveViewportWidth returns explicit when positive, otherwise
// min(columns*8, 1200). Non-positive columns count as DefaultColumns.
func ResolveViewportWidth(explicit, columns int) int {
	if explicit > 0 {
		return explicit
	}
	if columns <= 0 {
		columns = DefaultColumns
	}
	return min(columns*PixelsPerColumn, MaxAutoViewportWidth)
}

// validateViewportWidth rejects explicit widths outside [0, MaxViewportWidth].
// Zero means derive from the terminal.
func validateViewportWidth(w int) error {
	if w < 0 || w > MaxViewportWidth {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidViewport, w, MaxViewportWidth)
	}
	return nil
}

// Extent is the measured size of the rendered content in CSS pixels.
type Extent struct {
	Width  int
	Height int
}

// DefaultExtent is used when the content size cannot be measured.
var DefaultExtent = Extent{Width: 800, Height: 600}

// parseExtent parses the "[width,height]" JSON produced by the measurement
// script. Each dimension falls back to DefaultExtent on its own when it is
// missing, not a number, or not positive. ok is false when any fallback
// was used.
func parseExtent(raw string) (ext Extent, ok bool) {
	var dims []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &dims); err != nil {
		return DefaultExtent, false
	}

	ext = DefaultExtent
	w, wok := parseDimension(dims, 0)
	h, hok := parseDimension(dims, 1)
	if wok {
		ext.Width = w
	}
	if hok {
		ext.Height = h
	}
	return ext, wok && hok && len(dims) == 2
}

func parseDimension(dims []json.RawMessage, i int) (int, bool) {
	if i >= len(dims) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(dims[i], &f); err != nil {
		return 0, false
	}
	if f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(math.Ceil(f)), true
}

// Input contains the document to render.
type Input struct {
	Markdown string // Required: markdown content

	// SourcePath is the file the markdown came from. Its canonical parent
	// directory becomes the page's <base>, so relative links and images
	// resolve. Empty or missing on disk means no <base>.
	SourcePath string

	HTMLOnly bool // Build the page but skip the browser
}

// RenderedPage is the complete HTML document the browser loads.
type RenderedPage struct {
	HTML    string
	BaseDir string // Canonical directory used for <base>; empty when omitted
}

// Result is the output of Render.
type Result struct {
	HTML   []byte // Rendered page, always set
	PNG    []byte // Screenshot clipped to Extent; nil with Input.HTMLOnly
	Extent Extent // Measured (or fallback) content size

	// ScratchPath is where the rendered page was written for the browser.
	ScratchPath string
}
