package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	mdview "github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/config"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// runRender renders one markdown file and delivers it to the selected sink.
func runRender(ctx context.Context, args []string, flags *renderFlags, env *Environment, logger *zap.Logger) error {
	inputPath, err := resolveInputPath(args)
	if err != nil {
		return err
	}
	if flags.out.browser && flags.out.output != "" {
		return fmt.Errorf("%w: --browser and --output cannot be combined", ErrUsage)
	}

	cfg, err := effectiveConfig(flags.common.config, env, logger)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %s: %v", mdview.ErrReadFile, inputPath, err)
	}

	opts, err := rendererOptions(cfg, env, logger)
	if err != nil {
		return err
	}
	renderer, err := mdview.NewRenderer(opts...)
	if err != nil {
		return err
	}

	sink, htmlOnly := selectSink(inputPath, flags, cfg, env, logger)
	logger.Debug("rendering",
		zap.String("input", inputPath),
		zap.String("sink", fmt.Sprintf("%T", sink)),
		zap.Int("viewportWidth", renderer.Viewport().Width),
	)

	res, err := renderer.Render(ctx, mdview.Input{
		Markdown:   string(content),
		SourcePath: inputPath,
		HTMLOnly:   htmlOnly,
	})
	if err != nil {
		return err
	}

	return sink.Deliver(ctx, res)
}

// resolveInputPath returns the single markdown file argument.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%w: missing markdown file", ErrUsage)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one markdown file, got %d", ErrUsage, len(args))
	}
}

// effectiveConfig loads the config file and applies environment overrides.
// The result is not validated: flags may still change it.
func effectiveConfig(configName string, env *Environment, logger *zap.Logger) (*config.Config, error) {
	envCfg := loadEnvConfig(env.getenv())
	if env.Environ != nil {
		warnUnknownEnvVars(env.Environ(), logger)
	}

	cfg, err := loadConfig(configName, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// loadConfig loads the config named by --config, then MDVIEW_CONFIG. With
// neither, the per-user default is used if present.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}

	var (
		cfg *config.Config
		err error
	)
	if name != "" {
		cfg, err = config.LoadConfig(name)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Set flags override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.width != 0 {
		cfg.Width = flags.width
	}
	if flags.style != "" {
		cfg.Style = flags.style
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.browser.chrome != "" {
		cfg.Browser.Bin = flags.browser.chrome
	}
	if flags.browser.timeout != "" {
		cfg.Browser.Timeout = flags.browser.timeout
	}
	if flags.out.protocol != "" {
		cfg.Terminal.Protocol = flags.out.protocol
	}
}

// rendererOptions translates a validated config into renderer options.
func rendererOptions(cfg *config.Config, env *Environment, logger *zap.Logger) ([]mdview.Option, error) {
	theme, err := mdview.ParseTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}

	opts := []mdview.Option{
		mdview.WithLogger(logger),
		mdview.WithTheme(theme),
		mdview.WithViewportWidth(cfg.Width),
		mdview.WithTerminalColumns(env.columns()),
		mdview.WithStyle(cfg.Style),
		mdview.WithAssetPath(cfg.Assets.BasePath),
		mdview.WithScratchPath(cfg.Paths.Scratch),
		mdview.WithBrowserBin(cfg.Browser.Bin),
		mdview.WithNoSandbox(cfg.Browser.NoSandbox),
		mdview.WithBrowserDownload(cfg.Browser.Download),
	}

	timeout, err := cfg.Browser.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, mdview.WithTimeout(timeout))
	}

	ready, err := cfg.Browser.ReadyTimeoutDuration()
	if err != nil {
		return nil, err
	}
	if ready > 0 {
		opts = append(opts, mdview.WithReadyTimeout(ready))
	}

	if env.Launcher != nil {
		opts = append(opts, mdview.WithLauncher(env.Launcher))
	}
	return opts, nil
}

// selectSink picks the destination. htmlOnly reports whether the sink
// needs only the page, so the browser capture can be skipped.
func selectSink(inputPath string, flags *renderFlags, cfg *config.Config, env *Environment, logger *zap.Logger) (sink mdview.Sink, htmlOnly bool) {
	var messages io.Writer
	if !flags.common.quiet {
		messages = env.Stdout
	}

	switch {
	case flags.out.browser:
		preview := cfg.Paths.Preview
		if preview == "" {
			preview = config.DefaultPreviewPath()
		}
		return &mdview.BrowserSink{
			PreviewPath: preview,
			Opener:      env.Opener,
			Stdout:      messages,
			Logger:      logger,
		}, true

	case flags.out.html:
		path := flags.out.output
		if path == "" {
			path = htmlOutputPath(inputPath)
		}
		return &mdview.FileSink{Path: path, HTML: true, Stdout: messages}, true

	case flags.out.output != "":
		return &mdview.FileSink{Path: flags.out.output, Stdout: messages}, false

	default:
		if env.IsTerminal != nil && !env.IsTerminal() {
			logger.Warn("stdout is not a terminal, writing image escape sequences anyway")
		}
		return &mdview.TerminalSink{
			Out:        env.Stdout,
			Columns:    env.columns(),
			MaxColumns: cfg.Terminal.MaxColumns,
			Protocol:   cfg.Terminal.Protocol,
			Getenv:     env.getenv(),
			Logger:     logger,
		}, false
	}
}

// htmlOutputPath derives the page path from the markdown path:
// notes/doc.md -> notes/doc.html.
func htmlOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	if strings.EqualFold(ext, ".html") {
		return inputPath + ".html"
	}
	return strings.TrimSuffix(inputPath, ext) + ".html"
}
