package main

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdview/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // MDVIEW_CONFIG: config file name or path
	Theme       string // MDVIEW_THEME: light or dark
	Width       int    // MDVIEW_WIDTH: viewport width in pixels
	Style       string // MDVIEW_STYLE: style name, CSS path, or CSS
	Timeout     string // MDVIEW_TIMEOUT: whole-render timeout
	Protocol    string // MDVIEW_PROTOCOL: terminal graphics protocol
	PreviewPath string // MDVIEW_PREVIEW_PATH: browser-open sink page
	ScratchPath string // MDVIEW_SCRATCH_PATH: page loaded by headless Chrome

	// Shared with rod-based tools.
	BrowserBin string // ROD_BROWSER_BIN: Chrome binary
	NoSandbox  bool   // ROD_NO_SANDBOX=1, CI=true, or ROD_BROWSER_BIN set
}

// envPrefix marks variables owned by mdview.
const envPrefix = "MDVIEW_"

// knownEnvVars lists valid MDVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDVIEW_CONFIG":       true,
	"MDVIEW_THEME":        true,
	"MDVIEW_WIDTH":        true,
	"MDVIEW_STYLE":        true,
	"MDVIEW_TIMEOUT":      true,
	"MDVIEW_PROTOCOL":     true,
	"MDVIEW_PREVIEW_PATH": true,
	"MDVIEW_SCRATCH_PATH": true,
	"MDVIEW_CONTAINER":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored, like unset variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("MDVIEW_CONFIG"),
		Theme:       getenv("MDVIEW_THEME"),
		Style:       getenv("MDVIEW_STYLE"),
		Timeout:     getenv("MDVIEW_TIMEOUT"),
		Protocol:    getenv("MDVIEW_PROTOCOL"),
		PreviewPath: getenv("MDVIEW_PREVIEW_PATH"),
		ScratchPath: getenv("MDVIEW_SCRATCH_PATH"),
		BrowserBin:  getenv("ROD_BROWSER_BIN"),
	}

	if width := getenv("MDVIEW_WIDTH"); width != "" {
		if w, err := strconv.Atoi(width); err == nil && w > 0 {
			cfg.Width = w
		}
	}

	// Pre-installed browsers in containers and CI runners need no sandbox.
	cfg.NoSandbox = getenv("ROD_NO_SANDBOX") == "1" ||
		getenv("CI") == "true" ||
		cfg.BrowserBin != ""

	return cfg
}

// unknownEnvVars returns unrecognized MDVIEW_* variable names, sorted.
// Helps catch typos like MDVIEW_THEM instead of MDVIEW_THEME.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvVars logs a warning per unknown MDVIEW_* variable.
func warnUnknownEnvVars(environ []string, logger *zap.Logger) {
	for _, name := range unknownEnvVars(environ) {
		logger.Warn("unknown environment variable (typo?)", zap.String("name", name))
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later
// via mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.Width > 0 {
		cfg.Width = env.Width
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Timeout != "" {
		cfg.Browser.Timeout = env.Timeout
	}
	if env.Protocol != "" {
		cfg.Terminal.Protocol = env.Protocol
	}
	if env.PreviewPath != "" {
		cfg.Paths.Preview = env.PreviewPath
	}
	if env.ScratchPath != "" {
		cfg.Paths.Scratch = env.ScratchPath
	}
	if env.BrowserBin != "" && cfg.Browser.Bin == "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.NoSandbox {
		cfg.Browser.NoSandbox = true
	}
}
