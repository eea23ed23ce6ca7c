package main

import (
	"errors"
	"os"

	mdview "github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/config"
)

// Exit codes for the mdview CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Image displayed, saved, or opened
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Chrome could not start or failed mid-capture
	ExitDisplay = 5 // Terminal rejected the image
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdview.ErrBrowserLaunch) ||
		errors.Is(err, mdview.ErrSession) ||
		errors.Is(err, mdview.ErrBrowser) ||
		errors.Is(err, mdview.ErrRenderTimeout) ||
		errors.Is(err, mdview.ErrDecode) {
		return ExitBrowser
	}

	// Display errors (exit 5)
	if errors.Is(err, mdview.ErrDisplay) {
		return ExitDisplay
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdview.ErrReadFile) ||
		errors.Is(err, mdview.ErrWriteFile) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdview.ErrEmptyMarkdown) ||
		errors.Is(err, mdview.ErrInvalidTheme) ||
		errors.Is(err, mdview.ErrInvalidViewport) ||
		errors.Is(err, mdview.ErrStyleNotFound) ||
		errors.Is(err, mdview.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
