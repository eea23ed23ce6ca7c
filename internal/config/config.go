// Package config loads and validates mdview YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the per-user config and data directories.
const AppName = "mdview"

// DefaultConfigName is the config looked up when no --config is given.
const DefaultConfigName = "config"

// Field limits.
const (
	MaxPathLength      = 4096
	MaxStyleNameLength = 100
	MaxViewportWidth   = 8192
	MaxDisplayColumns  = 150
)

// Config holds all configuration for a render.
type Config struct {
	Theme    string         `yaml:"theme"` // "light" (default) or "dark"
	Width    int            `yaml:"width"` // Viewport width in pixels (0 = from terminal)
	Style    string         `yaml:"style"` // Style name, CSS file path, or inline CSS
	Assets   AssetsConfig   `yaml:"assets"`
	Browser  BrowserConfig  `yaml:"browser"`
	Terminal TerminalConfig `yaml:"terminal"`
	Paths    PathsConfig    `yaml:"paths"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// BrowserConfig defines headless Chrome options.
type BrowserConfig struct {
	Bin          string `yaml:"bin"`          // Chrome binary (empty = auto-detect)
	NoSandbox    bool   `yaml:"noSandbox"`    // Required in most containers
	Download     bool   `yaml:"download"`     // Allow rod to download Chromium when none is found
	Timeout      string `yaml:"timeout"`      // Whole-capture timeout, e.g. "30s"
	ReadyTimeout string `yaml:"readyTimeout"` // Wait for the page body, e.g. "5s"
}

// TerminalConfig defines terminal display options.
type TerminalConfig struct {
	Protocol   string `yaml:"protocol"`   // "auto", "kitty", "iterm", "blocks"
	MaxColumns int    `yaml:"maxColumns"` // Display width cap (0 = 150)
}

// PathsConfig overrides the fixed scratch and preview locations.
type PathsConfig struct {
	Scratch string `yaml:"scratch"` // Rendered page read by the browser
	Preview string `yaml:"preview"` // Page written for the browser-open sink
}

// DefaultConfig returns a configuration where every field falls back to
// built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme:    "",
		Terminal: TerminalConfig{Protocol: ""},
	}
}

// DefaultScratchPath returns the scratch page location, overwritten on
// every invocation.
func DefaultScratchPath() string {
	return filepath.Join(os.TempDir(), AppName+".html")
}

// DefaultPreviewPath returns the per-user page location used by the
// browser-open sink.
func DefaultPreviewPath() string {
	return filepath.Join(xdg.DataHome, AppName, "preview.html")
}

// Validate checks enum values, ranges, and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Theme) {
	case "", "light", "dark":
	default:
		return fmt.Errorf("%w: theme %q (must be light or dark)", ErrInvalidValue, c.Theme)
	}

	if c.Width < 0 || c.Width > MaxViewportWidth {
		return fmt.Errorf("%w: width %d (must be between 0 and %d)", ErrInvalidValue, c.Width, MaxViewportWidth)
	}

	if !fileutil.IsFilePath(c.Style) && !fileutil.IsCSS(c.Style) {
		if err := validateFieldLength("style", c.Style, MaxStyleNameLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}
	if _, err := c.Browser.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Browser.ReadyTimeoutDuration(); err != nil {
		return err
	}

	switch strings.ToLower(c.Terminal.Protocol) {
	case "", "auto", "kitty", "iterm", "blocks":
	default:
		return fmt.Errorf("%w: terminal.protocol %q (must be auto, kitty, iterm, or blocks)", ErrInvalidValue, c.Terminal.Protocol)
	}
	if c.Terminal.MaxColumns < 0 || c.Terminal.MaxColumns > MaxDisplayColumns {
		return fmt.Errorf("%w: terminal.maxColumns %d (must be between 0 and %d)", ErrInvalidValue, c.Terminal.MaxColumns, MaxDisplayColumns)
	}

	if err := validateFieldLength("paths.scratch", c.Paths.Scratch, MaxPathLength); err != nil {
		return err
	}
	return validateFieldLength("paths.preview", c.Paths.Preview, MaxPathLength)
}

// TimeoutDuration parses Timeout. Empty means zero (use the default).
func (b BrowserConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("browser.timeout", b.Timeout)
}

// ReadyTimeoutDuration parses ReadyTimeout. Empty means zero (use the default).
func (b BrowserConfig) ReadyTimeoutDuration() (time.Duration, error) {
	return parseDuration("browser.readyTimeout", b.ReadyTimeout)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, field, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	return loadFile(configPath)
}

// LoadDefault loads the default config from the user config directory.
// A missing file is not an error: DefaultConfig is returned.
func LoadDefault() (*Config, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(xdg.ConfigHome, AppName, DefaultConfigName+ext)
		if fileutil.FileExists(path) {
			return loadFile(path)
		}
	}
	return DefaultConfig(), nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, $XDG_CONFIG_HOME/mdview/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	for _, ext := range extensions {
		userPath := filepath.Join(xdg.ConfigHome, AppName, name+ext)
		if fileutil.FileExists(userPath) {
			return userPath, nil
		}
		triedPaths = append(triedPaths, userPath)
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
