// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-mdview/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is the target platform for install hints. Variable for tests.
var GOOS = runtime.GOOS

// InCI reports whether a common CI environment variable is set.
func InCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// installCommands maps GOOS to the Chromium install commands shown when no
// browser binary is found.
var installCommands = map[string][]string{
	"linux": {
		"Debian/Ubuntu: sudo apt install chromium-browser",
		"Arch: sudo pacman -S chromium",
		"Fedora: sudo dnf install chromium",
	},
	"darwin": {
		"macOS: brew install --cask chromium",
	},
	"windows": {
		"Windows: winget install Google.Chrome",
	},
}

// ForBrowserLaunch returns hints for a browser that could not be started:
// install commands for the current platform, then the environment hints of
// ForBrowserConnect.
func ForBrowserLaunch() string {
	hints := []string{"ensure Chrome/Chromium is installed"}
	hints = append(hints, installCommands[GOOS]...)
	hints = append(hints, "or pass --chrome /path/to/chrome")
	return formatHints(hints) + ForBrowserConnect()
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound suggests --config and the per-user config location.
func ForConfigNotFound(userConfigPath string) string {
	hint := "use --config /path/to/file.yaml"
	if userConfigPath != "" {
		hint += " or create " + userConfigPath
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForDisplay returns hints for terminal display errors.
func ForDisplay() string {
	return format("use --protocol blocks, or -o file.png to save instead")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints renders each hint on its own line.
func formatHints(hints []string) string {
	var b strings.Builder
	for _, h := range hints {
		b.WriteString(format(h))
	}
	return b.String()
}
