package mdview

import (
	"errors"

	"github.com/alnah/go-mdview/internal/browser"
	"github.com/alnah/go-mdview/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrReadFile       = errors.New("failed to read file")
	ErrWriteFile      = errors.New("failed to write file")

	// Browser errors. ErrBrowserLaunch means Chrome never started; the
	// others mean it started and a later protocol call failed.
	ErrBrowserLaunch = browser.ErrLaunch
	ErrSession       = browser.ErrSession
	ErrBrowser       = errors.New("browser error")
	ErrRenderTimeout = errors.New("browser unresponsive: render timed out")

	ErrDecode  = errors.New("failed to decode screenshot")
	ErrDisplay = errors.New("failed to display image")

	// Option validation errors.
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidViewport = errors.New("invalid viewport width")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
